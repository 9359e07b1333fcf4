// Package webhook delivers scan summaries to a JSON webhook endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch/internal/observability/notify"
)

// Config captures the webhook delivery settings.
type Config struct {
	URL        string
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// Client posts scan summaries to a webhook URL.
type Client struct {
	url        string
	retryLimit int
	client     *http.Client
}

// NewClient builds a webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{url: url, retryLimit: retries, client: hc}, nil
}

// summaryMessage is the wire shape posted to the webhook.
type summaryMessage struct {
	Event        string    `json:"event"`
	ScanID       string    `json:"scan_id"`
	SiteURL      string    `json:"site_url"`
	TotalURLs    int       `json:"total_urls"`
	NoindexCount int       `json:"noindex_count"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Text         string    `json:"text"`
}

// SendScanSummary posts a formatted summary, retrying with linear backoff.
func (c *Client) SendScanSummary(ctx context.Context, payload notify.ScanSummaryPayload) error {
	msg := summaryMessage{
		Event:        "scan.noindex_found",
		ScanID:       payload.ScanID,
		SiteURL:      payload.SiteURL,
		TotalURLs:    payload.TotalURLs,
		NoindexCount: payload.NoindexCount,
		StartedAt:    payload.StartedAt,
		FinishedAt:   payload.FinishedAt,
		Text: fmt.Sprintf("Scan of %s found %d noindex pages out of %d checked",
			payload.SiteURL, payload.NoindexCount, payload.TotalURLs),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
