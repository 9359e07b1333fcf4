// Package model defines the core data types used throughout the sitewatch
// scan service.
package model

import (
	"fmt"
	"strings"
	"time"
)

// PageStatus is the derived indexability status of a checked page.
type PageStatus string

const (
	// PageStatusNoindex indicates a noindex signal fired for the page.
	PageStatusNoindex PageStatus = "NOINDEX"
	// PageStatusError indicates the check failed or returned an error code.
	PageStatusError PageStatus = "ERROR"
	// PageStatusOK indicates the page is indexable as far as we can tell.
	PageStatusOK PageStatus = "OK"
)

// Noindex detection reason labels. These exact strings are persisted and
// shown on the dashboard.
const (
	ReasonHeaderXRobotsTag = "Header: X-Robots-Tag"
	ReasonMetaRobots       = "Meta: robots noindex"
)

// PageResult is the persisted outcome of checking one URL. Results are
// keyed by URL with upsert semantics: a new check replaces the prior row,
// no history is retained.
type PageResult struct {
	ID int64 `json:"id" db:"id"`
	// URL is the checked address, effectively unique.
	URL string `json:"url" db:"url"`
	// HTTPCode is the raw response status. 0 means the request failed
	// before receiving a response.
	HTTPCode int `json:"http_code" db:"http_code"`
	// IsNoindex is true when any detection signal fired.
	IsNoindex bool `json:"is_noindex" db:"is_noindex"`
	// Reasons holds the joined detection-signal labels (or the transport
	// error message when HTTPCode is 0).
	Reasons string `json:"reasons" db:"reasons"`
	// ResponseTime is the check duration in seconds, rounded to 2 decimals.
	ResponseTime float64 `json:"response_time" db:"response_time"`
	CheckedAt    time.Time `json:"checked_at" db:"checked_at"`
}

// Status derives the page status. Precedence: noindex wins over everything;
// transport failures and 4xx/5xx classify as errors; anything else
// (including redirects) is OK.
func (r *PageResult) Status() PageStatus {
	return DeriveStatus(r.HTTPCode, r.IsNoindex)
}

// DeriveStatus is the pure status derivation shared by results, exports and
// dashboard rows.
func DeriveStatus(httpCode int, isNoindex bool) PageStatus {
	switch {
	case isNoindex:
		return PageStatusNoindex
	case httpCode >= 400 || httpCode == 0:
		return PageStatusError
	default:
		return PageStatusOK
	}
}

// StatusFilter selects a subset of results in listings, stats and exports.
type StatusFilter string

const (
	// FilterAll selects every result.
	FilterAll StatusFilter = "all"
	// FilterNoindex selects results with a noindex signal.
	FilterNoindex StatusFilter = "noindex"
	// FilterIndexable selects clean 200 responses without noindex.
	FilterIndexable StatusFilter = "indexable"
	// FilterErrors selects failed checks and 4xx/5xx responses.
	FilterErrors StatusFilter = "errors"
)

// ParseStatusFilter normalizes a raw filter string; empty means "all".
func ParseStatusFilter(raw string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterAll, nil
	}
	switch f {
	case FilterAll, FilterNoindex, FilterIndexable, FilterErrors:
		return f, nil
	default:
		return "", fmt.Errorf("invalid status filter: %q", raw)
	}
}

// ResultPage is one page of results plus paging metadata.
type ResultPage struct {
	Results     []PageResult `json:"results"`
	Total       int          `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
}

// ResultListOptions selects a page of results.
type ResultListOptions struct {
	Page    int
	PerPage int
	Status  StatusFilter
}

// Normalize applies paging defaults.
func (o *ResultListOptions) Normalize(defaultPerPage, maxPerPage int) {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = defaultPerPage
	}
	if o.PerPage > maxPerPage {
		o.PerPage = maxPerPage
	}
	if o.Status == "" {
		o.Status = FilterAll
	}
}

// Stats aggregates result counts over a trailing window.
type Stats struct {
	Total          int `json:"total"`
	NoindexCount   int `json:"noindex_count"`
	IndexableCount int `json:"indexable_count"`
	ErrorCount     int `json:"error_count"`
}

// TrendPoint is one day of noindex findings for the trend chart.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// SlowPage is a page whose last check exceeded the slow threshold.
type SlowPage struct {
	URL          string  `json:"url"           db:"url"`
	ResponseTime float64 `json:"response_time" db:"response_time"`
	HTTPCode     int     `json:"http_code"     db:"http_code"`
}

// ExtendedStats carries the dashboard's secondary statistics.
type ExtendedStats struct {
	Today        int          `json:"today"`
	Yesterday    int          `json:"yesterday"`
	LastWeek     int          `json:"last_week"`
	NoindexTrend []TrendPoint `json:"noindex_trend"`
	SlowPages    []SlowPage   `json:"slow_pages"`
}

// ExportRow is one flat row of a results export.
type ExportRow struct {
	URL          string
	HTTPCode     int
	Status       PageStatus
	Reasons      string
	ResponseTime float64
	CheckedAt    time.Time
}

// ExportOptions filters an export.
type ExportOptions struct {
	Status   StatusFilter
	DateFrom *time.Time
	DateTo   *time.Time
}

// ScanDaySummary aggregates one scan date for day-over-day comparison.
type ScanDaySummary struct {
	ScanDate        time.Time `json:"scan_date"         db:"scan_date"`
	TotalURLs       int       `json:"total_urls"        db:"total_urls"`
	NoindexCount    int       `json:"noindex_count"     db:"noindex_count"`
	AvgResponseTime float64   `json:"avg_response_time" db:"avg_response_time"`
}

// ScanComparison contrasts the two most recent distinct scan dates.
type ScanComparison struct {
	Latest   ScanDaySummary `json:"latest"`
	Previous ScanDaySummary `json:"previous"`
	Diff     ScanDiff       `json:"difference"`
}

// ScanDiff holds latest-minus-previous deltas.
type ScanDiff struct {
	TotalURLs       int     `json:"total_urls"`
	NoindexCount    int     `json:"noindex_count"`
	AvgResponseTime float64 `json:"avg_response_time"`
}
