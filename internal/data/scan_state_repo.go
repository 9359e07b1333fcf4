package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sitewatch/sitewatch/internal/domain/model"
)

// Redis keys for scan coordination. The job record is persistent (no TTL) so
// an interrupted scan survives restarts; tick keys expire on their own.
const (
	scanJobKey    = "sitewatch:scan:job"
	tickKeyPrefix = "sitewatch:scan:tick:"
)

// RedisScanStateRepo stores the single in-flight scan job in Redis. The job
// is serialized as one JSON record so the queue, cursor and counters are
// always read and written together.
type RedisScanStateRepo struct {
	client redis.UniversalClient
}

// NewRedisScanStateRepo creates a new RedisScanStateRepo with the given client.
func NewRedisScanStateRepo(client redis.UniversalClient) *RedisScanStateRepo {
	return &RedisScanStateRepo{client: client}
}

// Load returns the current scan job, or nil when no scan is running.
func (r *RedisScanStateRepo) Load(ctx context.Context) (*model.ScanJob, error) {
	raw, err := r.client.Get(ctx, scanJobKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get scan job: %w", err)
	}

	var job model.ScanJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("decode scan job: %w", err)
	}
	return &job, nil
}

// Create persists a new scan job only when none exists. Uses SET NX so two
// concurrent start requests cannot both win.
func (r *RedisScanStateRepo) Create(ctx context.Context, job *model.ScanJob) (bool, error) {
	if job == nil || job.ScanID == "" {
		return false, errors.New("scan job with scan_id is required")
	}

	raw, err := json.Marshal(job)
	if err != nil {
		return false, fmt.Errorf("encode scan job: %w", err)
	}

	cmd := r.client.SetArgs(ctx, scanJobKey, raw, redis.SetArgs{Mode: "NX"})
	if _, err := cmd.Result(); err != nil {
		// NX not met: a job record already exists.
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis SET NX scan job: %w", err)
	}
	return true, nil
}

// Save replaces the current scan job record.
func (r *RedisScanStateRepo) Save(ctx context.Context, job *model.ScanJob) error {
	if job == nil || job.ScanID == "" {
		return errors.New("scan job with scan_id is required")
	}

	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode scan job: %w", err)
	}
	if err := r.client.Set(ctx, scanJobKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set scan job: %w", err)
	}
	return nil
}

// Clear removes the scan job record; clearing an absent record is not an error.
func (r *RedisScanStateRepo) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, scanJobKey).Err(); err != nil {
		return fmt.Errorf("redis del scan job: %w", err)
	}
	return nil
}

// RedisTickScheduler arms per-URL processing ticks. A tick is a SET NX key
// whose TTL is the tick delay: winning the set claims the next tick, and
// the key expiring is what makes the following tick available. Two pollers
// racing on the same scan therefore process at most one URL per delay.
type RedisTickScheduler struct {
	client redis.UniversalClient
}

// NewRedisTickScheduler creates a new RedisTickScheduler with the given client.
func NewRedisTickScheduler(client redis.UniversalClient) *RedisTickScheduler {
	return &RedisTickScheduler{client: client}
}

func tickKey(scanID string) string {
	return tickKeyPrefix + scanID
}

// ScheduleTick arms one tick for scanID after delay. Returns false when an
// equivalent tick is already pending.
func (s *RedisTickScheduler) ScheduleTick(ctx context.Context, scanID string, delay time.Duration) (bool, error) {
	if scanID == "" {
		return false, errors.New("scan id cannot be empty")
	}
	if delay <= 0 {
		delay = time.Second
	}

	cmd := s.client.SetArgs(ctx, tickKey(scanID), "1", redis.SetArgs{Mode: "NX", TTL: delay})
	if _, err := cmd.Result(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis SET NX tick: %w", err)
	}
	return true, nil
}

// HasPendingTick reports whether a tick is pending for scanID.
func (s *RedisTickScheduler) HasPendingTick(ctx context.Context, scanID string) (bool, error) {
	n, err := s.client.Exists(ctx, tickKey(scanID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists tick: %w", err)
	}
	return n > 0, nil
}

// ClearTick drops any pending tick for scanID.
func (s *RedisTickScheduler) ClearTick(ctx context.Context, scanID string) error {
	if err := s.client.Del(ctx, tickKey(scanID)).Err(); err != nil {
		return fmt.Errorf("redis del tick: %w", err)
	}
	return nil
}
