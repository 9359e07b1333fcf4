package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch/internal/core"
)

// ScheduleServiceOptions groups dependencies for ScheduleService.
type ScheduleServiceOptions struct {
	Settings core.SettingsRepository // Required: settings store
	// DefaultScanTime is the fallback daily time of day ("HH:MM").
	DefaultScanTime string
}

// ScheduleService decides when the recurring daily scan is due. The time of
// day is an operator setting; the due check compares the most recent fire
// time against the last scan start, so a missed window (daemon down at
// HH:MM) fires as soon as the runner is back.
type ScheduleService struct {
	settings        core.SettingsRepository
	defaultScanTime string
}

// NewScheduleService constructs a new ScheduleService.
func NewScheduleService(opts ScheduleServiceOptions) (*ScheduleService, error) {
	if opts.Settings == nil {
		return nil, errors.New("SettingsRepository is required")
	}
	if opts.DefaultScanTime == "" {
		opts.DefaultScanTime = "03:00"
	}
	if _, _, err := parseClock(opts.DefaultScanTime); err != nil {
		return nil, fmt.Errorf("invalid default scan time: %w", err)
	}
	return &ScheduleService{
		settings:        opts.Settings,
		defaultScanTime: opts.DefaultScanTime,
	}, nil
}

// ValidScanTime reports whether value is a valid "HH:MM" time of day.
func ValidScanTime(value string) bool {
	_, _, err := parseClock(value)
	return err == nil
}

// parseClock parses "HH:MM" on a 24h clock.
func parseClock(value string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	if hour, err = strconv.Atoi(parts[0]); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

// ScanTime returns the configured daily scan time of day ("HH:MM").
// An unparseable stored value falls back to the default.
func (s *ScheduleService) ScanTime(ctx context.Context) (string, error) {
	value, err := s.settings.Get(ctx, core.SettingScanTime, s.defaultScanTime)
	if err != nil {
		return "", fmt.Errorf("load scan time: %w", err)
	}
	if _, _, err := parseClock(value); err != nil {
		return s.defaultScanTime, nil
	}
	return value, nil
}

// lastFire returns the most recent daily fire time at or before now.
func lastFire(now time.Time, hour, minute int) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if fire.After(now) {
		fire = fire.AddDate(0, 0, -1)
	}
	return fire
}

// NextFire returns the next daily fire time strictly after now.
func (s *ScheduleService) NextFire(ctx context.Context, now time.Time) (time.Time, error) {
	value, err := s.ScanTime(ctx)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, _ := parseClock(value)
	return lastFire(now, hour, minute).AddDate(0, 0, 1), nil
}

// DailyScanDue reports whether a daily scan should start: the most recent
// fire time has passed and no scan has started since it.
func (s *ScheduleService) DailyScanDue(ctx context.Context, now time.Time) (bool, error) {
	value, err := s.ScanTime(ctx)
	if err != nil {
		return false, err
	}
	hour, minute, _ := parseClock(value)
	fire := lastFire(now, hour, minute)

	raw, err := s.settings.Get(ctx, core.SettingLastScan, "")
	if err != nil {
		return false, fmt.Errorf("load last scan: %w", err)
	}
	if raw == "" {
		return true, nil
	}
	lastScan, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true, nil
	}
	return lastScan.Before(fire), nil
}
