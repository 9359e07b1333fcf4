// Package sitemap resolves sitemap and sitemap-index files into the set of
// page URLs they reference.
package sitemap

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// reLoc extracts <loc> entries from sitemap bodies. Sitemaps in the wild are
// often sloppy XML, so a tolerant pattern beats a strict parser here.
var reLoc = regexp.MustCompile(`(?is)<loc>(.*?)</loc>`)

// sitemapIndexMarker distinguishes an index document from a leaf sitemap.
const sitemapIndexMarker = "<sitemapindex"

// Options configures a Resolver.
type Options struct {
	// Client is the HTTP client used for fetches. If nil, a default client
	// with Timeout and TLS verification disabled is built.
	Client *http.Client
	// UserAgent is sent on every fetch.
	UserAgent string
	// Timeout bounds each fetch when Client is nil.
	Timeout time.Duration
	// MaxDepth bounds recursive index resolution. A sitemap index that
	// references itself would otherwise recurse forever.
	MaxDepth int
	// InsecureTLS disables certificate verification when Client is nil.
	InsecureTLS bool
	// Logger is optional.
	Logger *slog.Logger
}

// Resolver fetches sitemaps and collects the page URLs they reference,
// following nested sitemap indexes.
type Resolver struct {
	client    *http.Client
	userAgent string
	maxDepth  int
	logger    *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(opts Options) *Resolver {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 5
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
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

	return &Resolver{
		client:    client,
		userAgent: opts.UserAgent,
		maxDepth:  opts.MaxDepth,
		logger:    opts.Logger,
	}
}

// Resolve fetches sitemapURL and returns the deduplicated page URLs across
// the whole sitemap tree, in first-seen order. Transport failures and
// non-200 responses contribute zero URLs and no error: a broken sitemap
// must not abort a whole scan.
func (r *Resolver) Resolve(ctx context.Context, sitemapURL string) []string {
	state := &resolveState{
		visited: make(map[string]struct{}),
		seen:    make(map[string]struct{}),
	}
	r.resolve(ctx, strings.TrimSpace(sitemapURL), state, 0)
	return state.urls
}

// resolveState tracks visited sitemaps (cycle guard) and collected page
// URLs across one Resolve call tree.
type resolveState struct {
	visited map[string]struct{}
	seen    map[string]struct{}
	urls    []string
}

func (r *Resolver) resolve(ctx context.Context, sitemapURL string, state *resolveState, depth int) {
	if sitemapURL == "" || depth > r.maxDepth {
		return
	}
	if _, ok := state.visited[sitemapURL]; ok {
		r.logger.WarnContext(ctx, "sitemap cycle detected", "url", sitemapURL)
		return
	}
	state.visited[sitemapURL] = struct{}{}

	body, ok := r.fetch(ctx, sitemapURL)
	if !ok {
		return
	}

	locs := extractLocs(body)
	if strings.Contains(body, sitemapIndexMarker) {
		for _, loc := range locs {
			r.resolve(ctx, loc, state, depth+1)
		}
		return
	}

	for _, loc := range locs {
		if _, ok := state.seen[loc]; ok {
			continue
		}
		state.seen[loc] = struct{}{}
		state.urls = append(state.urls, loc)
	}
}

// fetch returns the sitemap body, or ok=false on any transport failure or
// non-200 status (silent skip).
func (r *Resolver) fetch(ctx context.Context, sitemapURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		r.logger.WarnContext(ctx, "invalid sitemap url", "url", sitemapURL, "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.WarnContext(ctx, "sitemap fetch failed", "url", sitemapURL, "error", err)
		return "", false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "sitemap fetch non-200", "url", sitemapURL, "status", resp.StatusCode)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.WarnContext(ctx, "sitemap body read failed", "url", sitemapURL, "error", err)
		return "", false
	}
	return string(body), true
}

// extractLocs returns the trimmed <loc> values in document order.
func extractLocs(body string) []string {
	matches := reLoc.FindAllStringSubmatch(body, -1)
	locs := make([]string, 0, len(matches))
	for _, m := range matches {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs
}
