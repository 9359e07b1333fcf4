package model

import (
	"errors"
	"time"
)

// ScanStatus is the audit status recorded in scan log rows.
type ScanStatus string

const (
	// ScanStatusStarted is appended once when a scan begins.
	ScanStatusStarted ScanStatus = "started"
	// ScanStatusProcessing is appended periodically while URLs are checked.
	ScanStatusProcessing ScanStatus = "processing"
	// ScanStatusCompleted is appended once when the queue is exhausted.
	ScanStatusCompleted ScanStatus = "completed"
)

// ErrScanNotRunning is returned when an operation requires an active scan.
var ErrScanNotRunning = errors.New("no scan in progress")

// ScanJob is the durable state of one scan run. It is persisted as a single
// serialized record so that the flag, queue, cursor and counters always
// change together; a crash between ticks can never leave them torn.
type ScanJob struct {
	// ScanID identifies one run across ticks. Ticks carrying a stale ID
	// are ignored.
	ScanID string `json:"scan_id"`
	// Queue is the ordered URL list, fixed once built.
	Queue []string `json:"queue"`
	// Cursor indexes the next URL to check; Cursor == len(Queue) marks
	// completion. It only ever advances, by exactly one per tick.
	Cursor int `json:"cursor"`
	// NoindexCount counts flagged pages so far.
	NoindexCount int `json:"noindex_count"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
}

// Done reports whether the queue is exhausted.
func (j *ScanJob) Done() bool {
	return j.Cursor >= len(j.Queue)
}

// Next returns the URL at the cursor. Callers must check Done first.
func (j *ScanJob) Next() string {
	return j.Queue[j.Cursor]
}

// Progress describes a scan for the dashboard.
type Progress struct {
	InProgress bool `json:"in_progress"`
	Total      int  `json:"total"`
	Processed  int  `json:"processed"`
	// Percent is 0-100, rounded to the nearest integer.
	Percent int `json:"progress_percent"`
}

// ProgressOf computes dashboard progress from a scan job; a nil job means
// no scan is running.
func ProgressOf(job *ScanJob) Progress {
	if job == nil {
		return Progress{}
	}
	p := Progress{
		InProgress: true,
		Total:      len(job.Queue),
		Processed:  job.Cursor,
	}
	if p.Total > 0 {
		p.Percent = int(float64(p.Processed)/float64(p.Total)*100 + 0.5)
	}
	return p
}

// ScanLogEntry is one append-only audit row for a scan run.
type ScanLogEntry struct {
	ID            int64      `json:"id"             db:"id"`
	ScanID        string     `json:"scan_id"        db:"scan_id"`
	TotalURLs     int        `json:"total_urls"     db:"total_urls"`
	ProcessedURLs int        `json:"processed_urls" db:"processed_urls"`
	NoindexCount  int        `json:"noindex_count"  db:"noindex_count"`
	StartTime     time.Time  `json:"start_time"     db:"start_time"`
	EndTime       *time.Time `json:"end_time"       db:"end_time"`
	Status        ScanStatus `json:"status"         db:"status"`
}

// StartResult is returned to the caller of Start; crawling continues
// asynchronously, one URL per tick.
type StartResult struct {
	ScanID    string `json:"scan_id"`
	TotalURLs int    `json:"total_urls"`
}
