package scanrunner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sitewatch/sitewatch/config"
	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/domain/model"
	"github.com/sitewatch/sitewatch/internal/inspect"
	"github.com/sitewatch/sitewatch/internal/mocks"
	"github.com/sitewatch/sitewatch/internal/service"
)

type runnerFixture struct {
	results  *mocks.MockResultRepository
	logs     *mocks.MockScanLogRepository
	state    *mocks.MockScanStateRepository
	ticks    *mocks.MockTickScheduler
	settings *mocks.MockSettingsRepository
	resolver *mocks.MockSitemapResolver
	checker  *mocks.MockPageChecker

	runner *Runner
}

func newRunnerFixture(t *testing.T) *runnerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &runnerFixture{
		results:  mocks.NewMockResultRepository(ctrl),
		logs:     mocks.NewMockScanLogRepository(ctrl),
		state:    mocks.NewMockScanStateRepository(ctrl),
		ticks:    mocks.NewMockTickScheduler(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
		resolver: mocks.NewMockSitemapResolver(ctrl),
		checker:  mocks.NewMockPageChecker(ctrl),
	}

	cfg := config.ScanConfig{TickDelay: time.Second, PollInterval: 10 * time.Millisecond, LogEvery: 100}

	scans, err := service.NewScanService(service.ScanServiceOptions{
		Repos: service.ScanRepos{
			Results:  f.results,
			Logs:     f.logs,
			State:    f.state,
			Ticks:    f.ticks,
			Settings: f.settings,
		},
		Resolver: f.resolver,
		Checker:  f.checker,
		Config:   cfg,
		SiteURL:  "https://example.com",
	})
	require.NoError(t, err)

	schedule, err := service.NewScheduleService(service.ScheduleServiceOptions{
		Settings:        f.settings,
		DefaultScanTime: "03:00",
	})
	require.NoError(t, err)

	runner, err := NewRunner(RunnerOptions{
		Scans:    scans,
		Schedule: schedule,
		State:    f.state,
		Ticks:    f.ticks,
		Config:   cfg,
	})
	require.NoError(t, err)
	f.runner = runner
	return f
}

func TestRunner_PollProcessesClaimedTick(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	job := &model.ScanJob{ScanID: "s1", Queue: []string{"https://example.com/a", "https://example.com/b"}}

	// One Load for the poll, one inside the tick processing.
	f.state.EXPECT().Load(ctx).Return(job, nil).Times(2)
	f.ticks.EXPECT().ScheduleTick(ctx, "s1", time.Second).Return(true, nil)
	f.checker.EXPECT().Check(ctx, "https://example.com/a").
		Return(inspect.CheckResult{HTTPCode: 200})
	f.results.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	f.state.EXPECT().Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, saved *model.ScanJob) error {
			assert.Equal(t, 1, saved.Cursor)
			return nil
		})

	f.runner.poll(ctx)
}

func TestRunner_PollSkipsWhenTickPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	job := &model.ScanJob{ScanID: "s1", Queue: []string{"https://example.com/a"}}
	f.state.EXPECT().Load(ctx).Return(job, nil)
	f.ticks.EXPECT().ScheduleTick(ctx, "s1", time.Second).Return(false, nil)

	// No check, no write: losing the claim means waiting for the next poll.
	f.runner.poll(ctx)
}

func TestRunner_PollStartsDailyScanWhenDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(ctx).Return(nil, nil)
	f.settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
	f.settings.EXPECT().Get(ctx, core.SettingLastScan, "").Return("", nil)

	// Start path inside the scan service.
	f.settings.EXPECT().Get(ctx, core.SettingSitemaps, "").Return("", nil)
	f.resolver.EXPECT().Resolve(ctx, "https://example.com/sitemap.xml").
		Return([]string{"https://example.com/a"})
	f.state.EXPECT().Create(ctx, gomock.Any()).Return(true, nil)
	f.logs.EXPECT().Append(ctx, gomock.Any()).Return(nil)
	f.settings.EXPECT().Set(ctx, core.SettingLastScan, gomock.Any()).Return(nil)

	f.runner.poll(ctx)
}

func TestRunner_PollToleratesStartConflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(ctx).Return(nil, nil)
	f.settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
	f.settings.EXPECT().Get(ctx, core.SettingLastScan, "").Return("", nil)
	f.settings.EXPECT().Get(ctx, core.SettingSitemaps, "").Return("", nil)
	f.resolver.EXPECT().Resolve(ctx, "https://example.com/sitemap.xml").
		Return([]string{"https://example.com/a"})
	// Another instance won the start race.
	f.state.EXPECT().Create(ctx, gomock.Any()).Return(false, nil)

	f.runner.poll(ctx)
	// A conflict is not a failure; no backoff is armed.
	assert.True(t, f.runner.lastFailedStart.IsZero())
}

func TestRunner_FailedStartArmsBackoff(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(ctx).Return(nil, nil)
	f.settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
	f.settings.EXPECT().Get(ctx, core.SettingLastScan, "").Return("", nil)
	f.settings.EXPECT().Get(ctx, core.SettingSitemaps, "").Return("", nil)
	// An unreachable sitemap resolves to nothing, failing the start.
	f.resolver.EXPECT().Resolve(ctx, "https://example.com/sitemap.xml").Return(nil)

	f.runner.poll(ctx)
	require.False(t, f.runner.lastFailedStart.IsZero())

	// The next poll inside the backoff window does not retry: only the
	// state load is expected.
	f.state.EXPECT().Load(ctx).Return(nil, nil)
	f.runner.poll(ctx)
}

func TestRunner_PollSkipsDailyScanWhenNotDue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(ctx).Return(nil, nil)
	f.settings.EXPECT().Get(ctx, core.SettingScanTime, "03:00").Return("03:00", nil)
	f.settings.EXPECT().Get(ctx, core.SettingLastScan, "").
		Return(time.Now().UTC().Format(time.RFC3339), nil)

	f.runner.poll(ctx)
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(gomock.Any()).Return(nil, nil).AnyTimes()
	f.settings.EXPECT().Get(gomock.Any(), core.SettingScanTime, "03:00").Return("03:00", nil).AnyTimes()
	f.settings.EXPECT().Get(gomock.Any(), core.SettingLastScan, "").
		Return(time.Now().UTC().Format(time.RFC3339), nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.runner.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunner_PollLoadFailureIsTolerated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newRunnerFixture(t)

	f.state.EXPECT().Load(ctx).Return(nil, errors.New("redis down"))
	f.runner.poll(ctx)
}
