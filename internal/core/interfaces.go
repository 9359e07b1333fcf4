// Package core defines the contracts between the scan service layer and its
// collaborators (ports in hexagonal architecture). Service implementations
// depend on these interfaces, not on concrete repositories.
package core

import (
	"context"
	"time"

	"github.com/sitewatch/sitewatch/internal/domain/model"
	"github.com/sitewatch/sitewatch/internal/inspect"
)

// ResultRepository defines the interface for persisted page results.
type ResultRepository interface {
	// Upsert inserts or replaces the result row for its URL.
	Upsert(ctx context.Context, result *model.PageResult) error
	// List returns one page of results plus a total count matching the filter.
	List(ctx context.Context, opts model.ResultListOptions) (*model.ResultPage, error)
	// Stats aggregates counts over the trailing windowDays.
	Stats(ctx context.Context, windowDays int) (*model.Stats, error)
	// ExtendedStats returns the dashboard's secondary statistics.
	ExtendedStats(ctx context.Context) (*model.ExtendedStats, error)
	// Export returns flat rows matching the filter, newest first.
	Export(ctx context.Context, opts model.ExportOptions) ([]model.ExportRow, error)
	// CompareScanDates summarizes the last two distinct scan dates,
	// newest first. Fewer than two dates yields a shorter slice.
	CompareScanDates(ctx context.Context) ([]model.ScanDaySummary, error)
	// DeleteOlderThan removes rows checked strictly before the cutoff and
	// returns the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScanLogRepository defines the interface for the append-only scan audit log.
type ScanLogRepository interface {
	Append(ctx context.Context, entry *model.ScanLogEntry) error
	// Latest returns the most recent entry for a scan, or a NotFound error.
	Latest(ctx context.Context, scanID string) (*model.ScanLogEntry, error)
	// DeleteOlderThan removes entries started strictly before the cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScanStateRepository is the durable store for the single in-flight scan.
// The whole ScanJob record is read and written as a unit so a crash between
// ticks never leaves partial state behind.
type ScanStateRepository interface {
	// Load returns the current scan job, or nil when no scan is running.
	Load(ctx context.Context) (*model.ScanJob, error)
	// Create persists a new scan job only when none exists. Returns false
	// when a scan is already in progress.
	Create(ctx context.Context, job *model.ScanJob) (bool, error)
	// Save replaces the current scan job record.
	Save(ctx context.Context, job *model.ScanJob) error
	// Clear removes the scan job record; clearing an absent record is not
	// an error.
	Clear(ctx context.Context) error
}

// TickScheduler schedules the per-URL processing ticks and the recurring
// daily scan. Implementations must make ScheduleTick atomic: two concurrent
// callers for the same scan must end up with exactly one pending tick.
type TickScheduler interface {
	// ScheduleTick arms one future tick for scanID after delay. It is a
	// no-op (returning false) when an equivalent tick is already pending.
	ScheduleTick(ctx context.Context, scanID string, delay time.Duration) (bool, error)
	// HasPendingTick reports whether a tick is pending for scanID.
	HasPendingTick(ctx context.Context, scanID string) (bool, error)
	// ClearTick drops any pending tick for scanID.
	ClearTick(ctx context.Context, scanID string) error
}

// PageChecker issues one noindex check against a single URL.
type PageChecker interface {
	Check(ctx context.Context, url string) inspect.CheckResult
}

// SitemapResolver resolves a sitemap URL (possibly an index) into page URLs.
type SitemapResolver interface {
	Resolve(ctx context.Context, sitemapURL string) []string
}

// SettingsRepository is a key-value options store with get/set/delete
// semantics, used for operator-editable settings.
type SettingsRepository interface {
	// Get returns the stored value, or defaultValue when the key is absent.
	Get(ctx context.Context, key, defaultValue string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Settings keys.
const (
	// SettingSitemaps holds the newline-separated sitemap URL list.
	SettingSitemaps = "sitemaps"
	// SettingScanTime holds the daily scan time of day ("HH:MM").
	SettingScanTime = "scan_time"
	// SettingLastScan holds the RFC3339 timestamp of the last scan start.
	SettingLastScan = "last_scan"
)
