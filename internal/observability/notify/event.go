// Package notify defines the scan notification contract and payloads.
package notify

import (
	"context"
	"time"
)

// ScanSummaryPayload captures the canonical data emitted when a completed
// scan found noindex pages.
type ScanSummaryPayload struct {
	ScanID       string
	SiteURL      string
	TotalURLs    int
	NoindexCount int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Sink describes a destination capable of consuming scan summaries.
type Sink interface {
	SendScanSummary(ctx context.Context, payload ScanSummaryPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload ScanSummaryPayload) error

// SendScanSummary implements the Sink interface.
func (f SinkFunc) SendScanSummary(ctx context.Context, payload ScanSummaryPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}

// Multi fans a summary out to several sinks. Delivery is best effort: every
// sink is attempted and the first error is returned.
type Multi []Sink

// SendScanSummary implements the Sink interface.
func (m Multi) SendScanSummary(ctx context.Context, payload ScanSummaryPayload) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.SendScanSummary(ctx, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
