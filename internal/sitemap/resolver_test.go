package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(maxDepth int) *Resolver {
	return NewResolver(Options{UserAgent: "sitewatch-test", MaxDepth: maxDepth})
}

func TestResolver_FlatSitemap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sitewatch-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `<?xml version="1.0"?>
			<urlset>
				<url><loc>https://example.com/</loc></url>
				<url><loc> https://example.com/about </loc></url>
				<url><loc>https://example.com/</loc></url>
			</urlset>`)
	}))
	defer srv.Close()

	urls := newTestResolver(5).Resolve(context.Background(), srv.URL+"/sitemap.xml")
	// Duplicates collapse, whitespace trims, order is first-seen.
	assert.Equal(t, []string{"https://example.com/", "https://example.com/about"}, urls)
}

func TestResolver_NestedIndex(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
			<sitemap><loc>%s/posts.xml</loc></sitemap>
			<sitemap><loc>%s/pages.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/posts.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/post-1</loc></url></urlset>`)
	})
	mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<urlset>
			<url><loc>https://example.com/page-1</loc></url>
			<url><loc>https://example.com/post-1</loc></url>
		</urlset>`)
	})

	urls := newTestResolver(5).Resolve(context.Background(), srv.URL+"/sitemap.xml")
	assert.Equal(t, []string{"https://example.com/post-1", "https://example.com/page-1"}, urls)
}

func TestResolver_CycleTerminates(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// a -> b -> a, with one real URL along the way.
	mux.HandleFunc("/a.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s/b.xml</loc></sitemap></sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/b.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
			<sitemap><loc>%s/a.xml</loc></sitemap>
			<sitemap><loc>%s/leaf.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/leaf.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/only</loc></url></urlset>`)
	})

	urls := newTestResolver(5).Resolve(context.Background(), srv.URL+"/a.xml")
	assert.Equal(t, []string{"https://example.com/only"}, urls)
}

func TestResolver_DepthLimit(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// A chain of indexes deeper than the limit; the leaf is unreachable.
	for i := 0; i < 10; i++ {
		next := fmt.Sprintf("%s/level-%d.xml", srv.URL, i+1)
		mux.HandleFunc(fmt.Sprintf("/level-%d.xml", i), func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s</loc></sitemap></sitemapindex>`, next)
		})
	}
	mux.HandleFunc("/level-10.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/deep</loc></url></urlset>`)
	})

	urls := newTestResolver(3).Resolve(context.Background(), srv.URL+"/level-0.xml")
	assert.Empty(t, urls)
}

func TestResolver_BrokenSitemapsSkipSilently(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
			<sitemap><loc>%s/missing.xml</loc></sitemap>
			<sitemap><loc>%s/good.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/missing.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/good.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/ok</loc></url></urlset>`)
	})

	urls := newTestResolver(5).Resolve(context.Background(), srv.URL+"/sitemap.xml")
	assert.Equal(t, []string{"https://example.com/ok"}, urls)
}

func TestResolver_UnreachableHostYieldsNothing(t *testing.T) {
	t.Parallel()

	urls := newTestResolver(5).Resolve(context.Background(), "http://127.0.0.1:1/sitemap.xml")
	assert.Empty(t, urls)
}

func TestExtractLocs(t *testing.T) {
	t.Parallel()

	body := `<URLSET><URL><LOC>https://example.com/upper</LOC></URL>
		<url><loc></loc></url>
		<url><loc>https://example.com/multi
		</loc></url></URLSET>`

	locs := extractLocs(body)
	require.Len(t, locs, 2)
	assert.Equal(t, "https://example.com/upper", locs[0])
	assert.Equal(t, "https://example.com/multi", locs[1])
}
