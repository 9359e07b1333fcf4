package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    map[ServiceMode]bool
		wantErr bool
	}{
		{
			name:  "both services",
			input: "http,scanner",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeScanner: true},
		},
		{
			name:  "http only",
			input: "http",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:  "whitespace and empty parts tolerated",
			input: " scanner , ,http ",
			want:  map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeScanner: true},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unknown service",
			input:   "http,worker",
			wantErr: true,
		},
		{
			name:    "only separators",
			input:   ", ,",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseServices(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScanConfigSanitize(t *testing.T) {
	t.Parallel()

	t.Run("zero values get defaults", func(t *testing.T) {
		t.Parallel()
		var c ScanConfig
		c.Sanitize()
		assert.Equal(t, 15*time.Second, c.RequestTimeout)
		assert.Equal(t, time.Second, c.TickDelay)
		assert.Equal(t, 250*time.Millisecond, c.PollInterval)
		assert.Equal(t, "03:00", c.DailyScanTime)
		assert.Equal(t, 5, c.MaxSitemapDepth)
		assert.GreaterOrEqual(t, c.LogEvery, 1)
	})

	t.Run("valid values untouched", func(t *testing.T) {
		t.Parallel()
		c := ScanConfig{
			RequestTimeout:  30 * time.Second,
			TickDelay:       2 * time.Second,
			PollInterval:    time.Second,
			DailyScanTime:   "23:59",
			MaxSitemapDepth: 3,
			LogEvery:        25,
		}
		c.Sanitize()
		assert.Equal(t, "23:59", c.DailyScanTime)
		assert.Equal(t, 2*time.Second, c.TickDelay)
		assert.Equal(t, 25, c.LogEvery)
	})

	t.Run("malformed scan time falls back", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"24:00", "3:00", "noon", "12:5", ""} {
			c := ScanConfig{DailyScanTime: bad}
			c.Sanitize()
			assert.Equal(t, "03:00", c.DailyScanTime, bad)
		}
	})
}

func TestRetentionConfigSanitize(t *testing.T) {
	t.Parallel()

	var c RetentionConfig
	c.Sanitize()
	assert.Equal(t, 30, c.Days)
	assert.Equal(t, 24*time.Hour, c.SweepInterval)

	c = RetentionConfig{Days: 90, SweepInterval: time.Hour}
	c.Sanitize()
	assert.Equal(t, 90, c.Days)
	assert.Equal(t, time.Hour, c.SweepInterval)
}

func TestDefaultSitemapURL(t *testing.T) {
	t.Parallel()

	c := AppConfig{SiteURL: "https://example.com/"}
	assert.Equal(t, "https://example.com/sitemap.xml", c.DefaultSitemapURL())

	c.SiteURL = "https://example.com"
	assert.Equal(t, "https://example.com/sitemap.xml", c.DefaultSitemapURL())
}

func TestServiceModeHelpers(t *testing.T) {
	t.Parallel()

	c := AppConfig{Services: "http"}
	assert.True(t, c.IsHTTPServerEnabled())
	assert.False(t, c.IsScannerEnabled())

	c.Services = "bogus"
	assert.False(t, c.IsHTTPServerEnabled())
	assert.False(t, c.IsScannerEnabled())
}

func TestDetectDevMode(t *testing.T) {
	c := AppConfig{}
	t.Setenv("NODE_ENV", "development")
	c.Sanitize()
	assert.True(t, c.IsDev)
}
