// Package scanrunner provides the polling loop that drives in-flight scans
// and starts the recurring daily scan.
package scanrunner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sitewatch/sitewatch/config"
	"github.com/sitewatch/sitewatch/internal/core"
	apperrors "github.com/sitewatch/sitewatch/internal/errors"
	"github.com/sitewatch/sitewatch/internal/domain/model"
	"github.com/sitewatch/sitewatch/internal/service"
)

// RunnerOptions configures the scan runner adapter.
type RunnerOptions struct {
	Scans    *service.ScanService     // Required: scan engine
	Schedule *service.ScheduleService // Required: daily scan schedule
	State    core.ScanStateRepository // Required: scan job store
	Ticks    core.TickScheduler       // Required: tick claims
	Config   config.ScanConfig
	Logger   *slog.Logger // Optional: structured logger
}

// Runner polls for due scan work. Each poll does at most two things: start
// the daily scan when its fire time has passed, and claim the next tick of
// an in-flight scan. The tick claim is an atomic set-if-absent whose expiry
// equals the tick delay, so several runner instances sharing one Redis still
// process at most one URL per delay.
type Runner struct {
	scans    *service.ScanService
	schedule *service.ScheduleService
	state    core.ScanStateRepository
	ticks    core.TickScheduler
	config   config.ScanConfig
	logger   *slog.Logger

	// lastFailedStart backs off daily-scan retries after a failed start,
	// so an unreachable sitemap is not hammered every poll.
	lastFailedStart time.Time
}

// failedStartBackoff is how long the runner waits before retrying a daily
// scan whose start failed.
const failedStartBackoff = 15 * time.Minute

// NewRunner creates a new scan runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Scans == nil {
		return nil, errors.New("ScanService is required")
	}
	if opts.Schedule == nil {
		return nil, errors.New("ScheduleService is required")
	}
	if opts.State == nil {
		return nil, errors.New("ScanStateRepository is required")
	}
	if opts.Ticks == nil {
		return nil, errors.New("TickScheduler is required")
	}
	if opts.Config.PollInterval <= 0 {
		opts.Config.PollInterval = 250 * time.Millisecond
	}
	if opts.Config.TickDelay <= 0 {
		opts.Config.TickDelay = time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scans:    opts.Scans,
		schedule: opts.Schedule,
		state:    opts.State,
		ticks:    opts.Ticks,
		config:   opts.Config,
		logger:   logger.With("component", "scan_runner"),
	}, nil
}

// Run polls until the context is cancelled. Returns nil on graceful
// shutdown.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting scan runner",
		"poll_interval", r.config.PollInterval.String(),
		"tick_delay", r.config.TickDelay.String(),
	)

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

// poll runs one iteration. Failures are logged and retried on the next
// poll; a transient Redis or database error never stops the loop.
func (r *Runner) poll(ctx context.Context) {
	job, err := r.state.Load(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "load scan job failed", "error", err)
		return
	}

	if job == nil {
		r.maybeStartDailyScan(ctx)
		return
	}

	// Winning the claim both paces and serializes the work: the claim key
	// lives for one tick delay, and only its absence lets the next claim
	// succeed.
	claimed, err := r.ticks.ScheduleTick(ctx, job.ScanID, r.config.TickDelay)
	if err != nil {
		r.logger.WarnContext(ctx, "tick claim failed", "scan_id", job.ScanID, "error", err)
		return
	}
	if !claimed {
		return
	}

	if err := r.scans.ProcessNext(ctx); err != nil && !errors.Is(err, model.ErrScanNotRunning) {
		r.logger.ErrorContext(ctx, "scan tick failed", "scan_id", job.ScanID, "error", err)
	}
}

// maybeStartDailyScan starts the recurring scan when its fire time has
// passed and nothing has run since.
func (r *Runner) maybeStartDailyScan(ctx context.Context) {
	now := time.Now()
	if !r.lastFailedStart.IsZero() && now.Sub(r.lastFailedStart) < failedStartBackoff {
		return
	}

	due, err := r.schedule.DailyScanDue(ctx, now)
	if err != nil {
		r.logger.WarnContext(ctx, "daily scan due check failed", "error", err)
		return
	}
	if !due {
		return
	}

	result, err := r.scans.Start(ctx, "")
	if err != nil {
		// Another instance winning the start race surfaces as a conflict.
		if apperrors.IsConflict(err) {
			return
		}
		r.lastFailedStart = now
		r.logger.ErrorContext(ctx, "daily scan start failed", "error", err)
		return
	}
	r.lastFailedStart = time.Time{}
	r.logger.InfoContext(ctx, "daily scan started",
		"scan_id", result.ScanID, "total_urls", result.TotalURLs)
}
