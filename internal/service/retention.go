package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitewatch/sitewatch/config"
	"github.com/sitewatch/sitewatch/internal/core"
)

// RetentionServiceOptions groups dependencies for RetentionService.
type RetentionServiceOptions struct {
	Results core.ResultRepository  // Required: result repository
	Logs    core.ScanLogRepository // Required: scan log repository
	Config  config.RetentionConfig
	Logger  *slog.Logger // Optional: structured logger
}

// RetentionService deletes results and audit rows older than the retention
// window. The cutoff comparison is strict: a row aged exactly the window is
// retained.
type RetentionService struct {
	results core.ResultRepository
	logs    core.ScanLogRepository
	config  config.RetentionConfig
	logger  *slog.Logger
}

// NewRetentionService constructs a new RetentionService.
func NewRetentionService(opts RetentionServiceOptions) (*RetentionService, error) {
	if opts.Results == nil {
		return nil, errors.New("ResultRepository is required")
	}
	if opts.Logs == nil {
		return nil, errors.New("ScanLogRepository is required")
	}
	if opts.Config.Days < 1 {
		opts.Config.Days = 30
	}
	if opts.Config.SweepInterval <= 0 {
		opts.Config.SweepInterval = 24 * time.Hour
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "retention_service")
	}
	return &RetentionService{
		results: opts.Results,
		logs:    opts.Logs,
		config:  opts.Config,
		logger:  logger,
	}, nil
}

// Sweep runs one cleanup pass with the configured retention window and
// returns the number of result rows removed.
func (s *RetentionService) Sweep(ctx context.Context) (int64, error) {
	return s.SweepOlderThan(ctx, s.config.Days)
}

// SweepOlderThan runs one cleanup pass with an explicit window in days.
func (s *RetentionService) SweepOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		days = s.config.Days
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	removed, err := s.results.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep results: %w", err)
	}
	logsRemoved, err := s.logs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return removed, fmt.Errorf("sweep scan logs: %w", err)
	}

	if s.logger != nil && (removed > 0 || logsRemoved > 0) {
		s.logger.InfoContext(ctx, "retention sweep",
			"cutoff", cutoff.Format(time.RFC3339),
			"results_removed", removed,
			"logs_removed", logsRemoved,
		)
	}
	return removed, nil
}

// Run sweeps at the configured interval until the context is cancelled.
// Returns nil on graceful shutdown.
func (s *RetentionService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting retention service",
			"days", s.config.Days, "interval", s.config.SweepInterval.String())
	}

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	if _, err := s.Sweep(ctx); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "retention sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && s.logger != nil {
				s.logger.ErrorContext(ctx, "retention sweep failed", "error", err)
			}
		}
	}
}
