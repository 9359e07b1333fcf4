// Package inspect performs per-URL noindex checks.
package inspect

import (
	"context"
	"crypto/tls"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sitewatch/sitewatch/internal/domain/model"
)

// acceptHeader mirrors what a browser would send; some sites vary their
// robots headers on content negotiation.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// CheckResult is the outcome of one page check.
type CheckResult struct {
	// HTTPCode is the raw response status; 0 means the request failed
	// before receiving a response.
	HTTPCode int
	// IsNoindex is true when any detection signal fired.
	IsNoindex bool
	// Reasons holds detection-signal labels, or the transport error message
	// when the request failed.
	Reasons []string
	// ResponseTime is the wall-clock duration in seconds, rounded to
	// 2 decimals.
	ResponseTime float64
}

// JoinedReasons returns the reasons joined for storage and display.
func (r CheckResult) JoinedReasons() string {
	return strings.Join(r.Reasons, ", ")
}

// Options configures an Inspector.
type Options struct {
	// Client is the HTTP client used for checks. If nil, a default client
	// with Timeout and TLS verification disabled is built.
	Client *http.Client
	// UserAgent is sent on every check.
	UserAgent string
	// Timeout bounds each check when Client is nil.
	Timeout time.Duration
	// InsecureTLS disables certificate verification when Client is nil.
	InsecureTLS bool
	// Limiter, when set, paces outbound checks. The tick cadence already
	// spaces requests; the limiter is a hard bound shared with any other
	// caller of the same Inspector.
	Limiter *rate.Limiter
}

// Inspector issues single-page GET checks and classifies noindex signals.
type Inspector struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewInspector constructs an Inspector.
func NewInspector(opts Options) *Inspector {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.InsecureTLS}, // #nosec G402 -- operator's own site, possibly self-signed
			},
		}
	}

	return &Inspector{
		client:    client,
		userAgent: opts.UserAgent,
		limiter:   opts.Limiter,
	}
}

// Check fetches url once and reports its noindex classification. Transport
// failures are data, not errors: the result carries HTTPCode 0 and the
// error message as the reason.
func (i *Inspector) Check(ctx context.Context, url string) CheckResult {
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return CheckResult{Reasons: []string{err.Error()}}
		}
	}

	start := time.Now()
	resp, err := i.get(ctx, url)
	elapsed := roundSeconds(time.Since(start))

	if err != nil {
		return CheckResult{
			HTTPCode:     0,
			Reasons:      []string{err.Error()},
			ResponseTime: elapsed,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result := CheckResult{
		HTTPCode:     resp.StatusCode,
		ResponseTime: elapsed,
	}

	// Header check wins and short-circuits the body inspection.
	if headerHasNoindex(resp.Header) {
		result.IsNoindex = true
		result.Reasons = append(result.Reasons, model.ReasonHeaderXRobotsTag)
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return result
	}

	if metaRobotsNoindex(body) {
		result.IsNoindex = true
		result.Reasons = append(result.Reasons, model.ReasonMetaRobots)
	}
	return result
}

func (i *Inspector) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", i.userAgent)
	req.Header.Set("Accept", acceptHeader)
	return i.client.Do(req)
}

// headerHasNoindex reports whether any X-Robots-Tag value contains
// "noindex" (case-insensitive substring, matching how crawlers read it).
func headerHasNoindex(h http.Header) bool {
	for _, v := range h.Values("X-Robots-Tag") {
		if strings.Contains(strings.ToLower(v), "noindex") {
			return true
		}
	}
	return false
}

// roundSeconds converts a duration to seconds rounded to 2 decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
