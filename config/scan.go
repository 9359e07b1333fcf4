package config

import (
	"regexp"
	"time"
)

// scanTimeRe validates the daily scan time-of-day ("HH:MM", 24h clock).
var scanTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ScanConfig contains scan engine configuration.
type ScanConfig struct {
	// UserAgent is sent on every sitemap fetch and page check.
	UserAgent string `env:"SCAN_USER_AGENT" envDefault:"Mozilla/5.0 (compatible; YandexWebmaster/2.0; +http://yandex.com/bots)"`

	// RequestTimeout bounds each outbound HTTP request.
	RequestTimeout time.Duration `env:"SCAN_REQUEST_TIMEOUT" envDefault:"15s"`

	// TickDelay is the spacing between consecutive per-URL checks. Together
	// with one-request-per-tick processing this bounds load on the target
	// site to roughly one request per TickDelay.
	TickDelay time.Duration `env:"SCAN_TICK_DELAY" envDefault:"1s"`

	// PollInterval is how often the scan runner polls for due work.
	PollInterval time.Duration `env:"SCAN_POLL_INTERVAL" envDefault:"250ms"`

	// DailyScanTime is the time of day ("HH:MM") for the recurring full scan.
	DailyScanTime string `env:"SCAN_DAILY_TIME" envDefault:"03:00"`

	// MaxSitemapDepth bounds recursive sitemap-index resolution.
	MaxSitemapDepth int `env:"SCAN_MAX_SITEMAP_DEPTH" envDefault:"5"`

	// InsecureTLS disables certificate verification on outbound requests.
	// The monitored site is the operator's own and may carry a self-signed
	// or misconfigured chain.
	InsecureTLS bool `env:"SCAN_INSECURE_TLS" envDefault:"true"`

	// LogEvery controls how often a "processing" audit row is appended
	// (every N processed URLs; the final URL always logs).
	LogEvery int `env:"SCAN_LOG_EVERY" envDefault:"10"`
}

// Sanitize applies guardrails to scan configuration values.
func (s *ScanConfig) Sanitize() {
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 15 * time.Second
	}
	if s.TickDelay <= 0 {
		s.TickDelay = time.Second
	}
	if s.PollInterval <= 0 {
		s.PollInterval = 250 * time.Millisecond
	}
	if !scanTimeRe.MatchString(s.DailyScanTime) {
		s.DailyScanTime = "03:00"
	}
	if s.MaxSitemapDepth < 1 {
		s.MaxSitemapDepth = 5
	}
	if s.LogEvery < 1 {
		s.LogEvery = 10
	}
}

// RetentionConfig contains result/log retention configuration.
type RetentionConfig struct {
	// Days is the retention window; rows strictly older are deleted.
	Days int `env:"RETENTION_DAYS" envDefault:"30"`

	// SweepInterval is how often the retention sweep runs.
	SweepInterval time.Duration `env:"RETENTION_SWEEP_INTERVAL" envDefault:"24h"`
}

// Sanitize applies guardrails to retention configuration values.
func (r *RetentionConfig) Sanitize() {
	if r.Days < 1 {
		r.Days = 30
	}
	if r.SweepInterval <= 0 {
		r.SweepInterval = 24 * time.Hour
	}
}

// NotifyConfig contains completion notification configuration.
// A scan that finishes with noindex findings produces one notification;
// delivery is fire-and-forget.
type NotifyConfig struct {
	// WebhookURL, when set, enables the webhook notification sink.
	WebhookURL string `env:"NOTIFY_WEBHOOK_URL" envDefault:""`

	// SMTP mail sink settings. MailTo empty disables the mail sink.
	SMTPAddr string `env:"NOTIFY_SMTP_ADDR" envDefault:"localhost:25"`
	MailFrom string `env:"NOTIFY_MAIL_FROM" envDefault:"sitewatch@localhost"`
	MailTo   string `env:"NOTIFY_MAIL_TO"   envDefault:""`

	// Timeout bounds a single delivery attempt.
	Timeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}
