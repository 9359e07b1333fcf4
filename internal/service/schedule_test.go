package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/mocks"
)

func newScheduleService(t *testing.T) (*ScheduleService, *mocks.MockSettingsRepository) {
	t.Helper()
	settings := mocks.NewMockSettingsRepository(gomock.NewController(t))
	svc, err := NewScheduleService(ScheduleServiceOptions{
		Settings:        settings,
		DefaultScanTime: "03:00",
	})
	require.NoError(t, err)
	return svc, settings
}

func TestValidScanTime(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "03:00", "23:59", "9:05", " 12:30 "}
	for _, v := range valid {
		assert.True(t, ValidScanTime(v), v)
	}

	invalid := []string{"", "24:00", "12:60", "noon", "12", "12:3x", "-1:00"}
	for _, v := range invalid {
		assert.False(t, ValidScanTime(v), v)
	}
}

func TestNewScheduleService_RejectsBadDefault(t *testing.T) {
	t.Parallel()

	settings := mocks.NewMockSettingsRepository(gomock.NewController(t))
	_, err := NewScheduleService(ScheduleServiceOptions{
		Settings:        settings,
		DefaultScanTime: "25:00",
	})
	assert.Error(t, err)
}

func TestScheduleService_ScanTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stored value", func(t *testing.T) {
		t.Parallel()
		svc, settings := newScheduleService(t)
		settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("14:30", nil)

		value, err := svc.ScanTime(ctx)
		require.NoError(t, err)
		assert.Equal(t, "14:30", value)
	})

	t.Run("garbage falls back to default", func(t *testing.T) {
		t.Parallel()
		svc, settings := newScheduleService(t)
		settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("half past nine", nil)

		value, err := svc.ScanTime(ctx)
		require.NoError(t, err)
		assert.Equal(t, "03:00", value)
	})
}

func TestScheduleService_DailyScanDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Reference "now": 10:00 on the 15th; fire time 03:00 means the most
	// recent fire was 03:00 today.
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		lastScan string
		want     bool
	}{
		{name: "never scanned", lastScan: "", want: true},
		{name: "unparseable last scan", lastScan: "not-a-time", want: true},
		{name: "scanned before today's fire", lastScan: "2026-08-15T01:00:00Z", want: true},
		{name: "scanned yesterday", lastScan: "2026-08-14T03:00:05Z", want: true},
		{name: "scanned after today's fire", lastScan: "2026-08-15T03:00:05Z", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, settings := newScheduleService(t)
			settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
			settings.EXPECT().Get(ctx, core.SettingLastScan, "").Return(tc.lastScan, nil)

			due, err := svc.DailyScanDue(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, due)
		})
	}

	t.Run("fire time still ahead today", func(t *testing.T) {
		t.Parallel()
		// 02:00 on the 15th: the most recent 03:00 fire was yesterday.
		early := time.Date(2026, 8, 15, 2, 0, 0, 0, time.UTC)
		svc, settings := newScheduleService(t)
		settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
		settings.EXPECT().Get(ctx, core.SettingLastScan, "").Return("2026-08-14T03:00:05Z", nil)

		due, err := svc.DailyScanDue(ctx, early)
		require.NoError(t, err)
		assert.False(t, due)
	})
}

func TestScheduleService_NextFire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("after today's fire", func(t *testing.T) {
		t.Parallel()
		svc, settings := newScheduleService(t)
		settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)

		now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
		next, err := svc.NextFire(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 16, 3, 0, 0, 0, time.UTC), next)
	})

	t.Run("before today's fire", func(t *testing.T) {
		t.Parallel()
		svc, settings := newScheduleService(t)
		settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)

		now := time.Date(2026, 8, 15, 2, 0, 0, 0, time.UTC)
		next, err := svc.NextFire(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC), next)
	})
}
