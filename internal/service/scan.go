package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitewatch/sitewatch/config"
	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/domain/model"
	apperrors "github.com/sitewatch/sitewatch/internal/errors"
	"github.com/sitewatch/sitewatch/internal/observability/notify"
)

// ScanRepos groups the repositories ScanService depends on.
type ScanRepos struct {
	Results  core.ResultRepository
	Logs     core.ScanLogRepository
	State    core.ScanStateRepository
	Ticks    core.TickScheduler
	Settings core.SettingsRepository
}

// ScanServiceOptions groups dependencies for ScanService.
type ScanServiceOptions struct {
	Repos    ScanRepos            // Required: persistence and coordination
	Resolver core.SitemapResolver // Required: sitemap resolution
	Checker  core.PageChecker     // Required: per-URL noindex checks
	Config   config.ScanConfig    // Required: scan tuning
	SiteURL  string               // Required: monitored site base URL
	Notifier notify.Sink          // Optional: completion notifications
	Logger   *slog.Logger         // Optional: structured logger
}

// ScanService drives the incremental sitemap scan.
//
// A scan run resolves the configured sitemaps into an ordered URL queue,
// persists the queue as a single durable job record, and then checks one
// URL per tick. The job record is the only scan state; a restart resumes
// exactly where the last saved cursor left off.
type ScanService struct {
	repos    ScanRepos
	resolver core.SitemapResolver
	checker  core.PageChecker
	config   config.ScanConfig
	siteURL  string
	notifier notify.Sink
	logger   *slog.Logger
}

// NewScanService constructs a new ScanService.
func NewScanService(opts ScanServiceOptions) (*ScanService, error) {
	if opts.Repos.Results == nil || opts.Repos.Logs == nil || opts.Repos.State == nil ||
		opts.Repos.Ticks == nil || opts.Repos.Settings == nil {
		return nil, errors.New("scan repositories are required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("SitemapResolver is required")
	}
	if opts.Checker == nil {
		return nil, errors.New("PageChecker is required")
	}

	if opts.Config.LogEvery < 1 {
		opts.Config.LogEvery = 10
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "scan_service")
	}

	return &ScanService{
		repos:    opts.Repos,
		resolver: opts.Resolver,
		checker:  opts.Checker,
		config:   opts.Config,
		siteURL:  opts.SiteURL,
		notifier: opts.Notifier,
		logger:   logger,
	}, nil
}

// Sitemaps returns the sitemap URLs to scan: the operator-configured list
// when set, otherwise the site's default /sitemap.xml.
func (s *ScanService) Sitemaps(ctx context.Context) ([]string, error) {
	raw, err := s.repos.Settings.Get(ctx, core.SettingSitemaps, "")
	if err != nil {
		return nil, fmt.Errorf("load sitemap setting: %w", err)
	}

	var sitemaps []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sitemaps = append(sitemaps, line)
		}
	}
	if len(sitemaps) == 0 {
		sitemaps = []string{strings.TrimRight(s.siteURL, "/") + "/sitemap.xml"}
	}
	return sitemaps, nil
}

// Start begins a new scan run. When sitemapURL is non-empty it is scanned
// instead of the configured list. Returns a Conflict error when a scan is
// already in progress and a Validation error when resolution yields no URLs.
func (s *ScanService) Start(ctx context.Context, sitemapURL string) (*model.StartResult, error) {
	sitemaps := []string{sitemapURL}
	if sitemapURL == "" {
		var err error
		if sitemaps, err = s.Sitemaps(ctx); err != nil {
			return nil, err
		}
	}

	// Resolution happens before the job record exists, so a slow sitemap
	// fetch never blocks concurrent status queries. Dedup across sitemaps
	// preserves first-seen order.
	seen := make(map[string]struct{})
	var queue []string
	for _, sm := range sitemaps {
		for _, u := range s.resolver.Resolve(ctx, sm) {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			queue = append(queue, u)
		}
	}
	if len(queue) == 0 {
		return nil, apperrors.Validation("sitemap resolution yielded no URLs")
	}

	job := &model.ScanJob{
		ScanID:    uuid.NewString(),
		Queue:     queue,
		StartedAt: time.Now().UTC(),
	}
	created, err := s.repos.State.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create scan job: %w", err)
	}
	if !created {
		return nil, apperrors.Conflict("a scan is already in progress")
	}

	// The job record is live from here on and the runner will drive it, so
	// audit and bookkeeping failures are logged, never returned: the caller
	// must not be told a running scan failed to start.
	s.appendProgressLog(ctx, job, model.ScanStatusStarted, nil)
	if err := s.repos.Settings.Set(ctx, core.SettingLastScan, job.StartedAt.Format(time.RFC3339)); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "record last scan failed",
			"scan_id", job.ScanID, "error", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "scan started",
			"scan_id", job.ScanID,
			"sitemaps", len(sitemaps),
			"total_urls", len(queue),
		)
	}
	return &model.StartResult{ScanID: job.ScanID, TotalURLs: len(queue)}, nil
}

// Stop cancels the in-flight scan, if any. Partial results already written
// stay in place; stopping when no scan is running is a no-op.
func (s *ScanService) Stop(ctx context.Context) error {
	job, err := s.repos.State.Load(ctx)
	if err != nil {
		return fmt.Errorf("load scan job: %w", err)
	}
	if job == nil {
		return nil
	}

	if err := s.repos.State.Clear(ctx); err != nil {
		return fmt.Errorf("clear scan job: %w", err)
	}
	if err := s.repos.Ticks.ClearTick(ctx, job.ScanID); err != nil {
		return fmt.Errorf("clear pending tick: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "scan stopped",
			"scan_id", job.ScanID,
			"processed", job.Cursor,
			"total", len(job.Queue),
		)
	}
	return nil
}

// Progress reports the state of the in-flight scan for the dashboard.
func (s *ScanService) Progress(ctx context.Context) (model.Progress, error) {
	job, err := s.repos.State.Load(ctx)
	if err != nil {
		return model.Progress{}, fmt.Errorf("load scan job: %w", err)
	}
	return model.ProgressOf(job), nil
}

// LastScan returns when the most recent scan started; ok is false when no
// scan has ever run.
func (s *ScanService) LastScan(ctx context.Context) (time.Time, bool, error) {
	raw, err := s.repos.Settings.Get(ctx, core.SettingLastScan, "")
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load last scan: %w", err)
	}
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last scan %q: %w", raw, err)
	}
	return t, true, nil
}

// ProcessNext checks the URL at the cursor and advances the scan by exactly
// one step. Returns model.ErrScanNotRunning when no scan is in flight.
// Callers provide the spacing between invocations; ProcessNext itself never
// sleeps.
func (s *ScanService) ProcessNext(ctx context.Context) error {
	job, err := s.repos.State.Load(ctx)
	if err != nil {
		return fmt.Errorf("load scan job: %w", err)
	}
	if job == nil {
		return model.ErrScanNotRunning
	}
	if job.Done() {
		// A crash after the final Save but before cleanup lands here.
		return s.complete(ctx, job)
	}

	url := job.Next()
	res := s.checker.Check(ctx, url)

	result := &model.PageResult{
		URL:          url,
		HTTPCode:     res.HTTPCode,
		IsNoindex:    res.IsNoindex,
		Reasons:      res.JoinedReasons(),
		ResponseTime: res.ResponseTime,
		CheckedAt:    time.Now().UTC(),
	}
	if err := s.repos.Results.Upsert(ctx, result); err != nil {
		return fmt.Errorf("persist result for %s: %w", url, err)
	}

	// The cursor only advances after the result is durably written, so a
	// crash between the two re-checks the same URL instead of skipping it.
	job.Cursor++
	if res.IsNoindex {
		job.NoindexCount++
	}
	if err := s.repos.State.Save(ctx, job); err != nil {
		return fmt.Errorf("save scan job: %w", err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "url checked",
			"scan_id", job.ScanID,
			"url", url,
			"http_code", res.HTTPCode,
			"noindex", res.IsNoindex,
			"cursor", job.Cursor,
		)
	}

	if job.Done() {
		// The final URL also gets a "processing" row carrying the final
		// totals, ahead of the "completed" row.
		s.appendProgressLog(ctx, job, model.ScanStatusProcessing, nil)
		return s.complete(ctx, job)
	}
	if job.Cursor%s.config.LogEvery == 0 {
		s.appendProgressLog(ctx, job, model.ScanStatusProcessing, nil)
	}
	return nil
}

// complete finishes a scan run: final audit row, state cleanup and, when
// noindex pages were found, one notification.
func (s *ScanService) complete(ctx context.Context, job *model.ScanJob) error {
	now := time.Now().UTC()
	s.appendProgressLog(ctx, job, model.ScanStatusCompleted, &now)

	if err := s.repos.State.Clear(ctx); err != nil {
		return fmt.Errorf("clear scan job: %w", err)
	}
	if err := s.repos.Ticks.ClearTick(ctx, job.ScanID); err != nil {
		return fmt.Errorf("clear pending tick: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "scan completed",
			"scan_id", job.ScanID,
			"total_urls", len(job.Queue),
			"noindex_count", job.NoindexCount,
			"duration", now.Sub(job.StartedAt).Round(time.Second).String(),
		)
	}

	if job.NoindexCount > 0 && s.notifier != nil {
		payload := notify.ScanSummaryPayload{
			ScanID:       job.ScanID,
			SiteURL:      s.siteURL,
			TotalURLs:    len(job.Queue),
			NoindexCount: job.NoindexCount,
			StartedAt:    job.StartedAt,
			FinishedAt:   now,
		}
		// Delivery is fire-and-forget: a sink failure never fails the scan.
		if err := s.notifier.SendScanSummary(ctx, payload); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "scan summary notification failed",
				"scan_id", job.ScanID, "error", err)
		}
	}
	return nil
}

// appendProgressLog writes an audit row; audit failures are logged, never
// propagated, so a broken log table cannot stall the scan.
func (s *ScanService) appendProgressLog(ctx context.Context, job *model.ScanJob, status model.ScanStatus, endTime *time.Time) {
	entry := &model.ScanLogEntry{
		ScanID:        job.ScanID,
		TotalURLs:     len(job.Queue),
		ProcessedURLs: job.Cursor,
		NoindexCount:  job.NoindexCount,
		StartTime:     job.StartedAt,
		EndTime:       endTime,
		Status:        status,
	}
	if err := s.repos.Logs.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "scan audit append failed",
			"scan_id", job.ScanID, "status", string(status), "error", err)
	}
}
