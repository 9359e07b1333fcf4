package inspect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewatch/sitewatch/internal/domain/model"
)

func newTestInspector() *Inspector {
	return NewInspector(Options{UserAgent: "sitewatch-test"})
}

func TestInspector_CleanPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sitewatch-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `<html><head><title>ok</title></head><body>hello</body></html>`)
	}))
	defer srv.Close()

	res := newTestInspector().Check(context.Background(), srv.URL)
	assert.Equal(t, http.StatusOK, res.HTTPCode)
	assert.False(t, res.IsNoindex)
	assert.Empty(t, res.Reasons)
	assert.GreaterOrEqual(t, res.ResponseTime, 0.0)
}

func TestInspector_HeaderNoindexShortCircuits(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Robots-Tag", "NOINDEX, nofollow")
		// Body also carries the meta tag; the header reason must win alone.
		fmt.Fprint(w, `<html><head><meta name="robots" content="noindex"></head></html>`)
	}))
	defer srv.Close()

	res := newTestInspector().Check(context.Background(), srv.URL)
	assert.True(t, res.IsNoindex)
	assert.Equal(t, []string{model.ReasonHeaderXRobotsTag}, res.Reasons)
}

func TestInspector_MetaRobotsNoindex(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><META CONTENT="NOINDEX,FOLLOW" NAME="Robots"></head><body></body></html>`)
	}))
	defer srv.Close()

	res := newTestInspector().Check(context.Background(), srv.URL)
	assert.True(t, res.IsNoindex)
	assert.Equal(t, []string{model.ReasonMetaRobots}, res.Reasons)
	assert.Equal(t, model.ReasonMetaRobots, res.JoinedReasons())
}

func TestInspector_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	res := newTestInspector().Check(context.Background(), srv.URL+"/gone")
	assert.Equal(t, http.StatusNotFound, res.HTTPCode)
	assert.False(t, res.IsNoindex)
}

func TestInspector_TransportFailure(t *testing.T) {
	t.Parallel()

	res := newTestInspector().Check(context.Background(), "http://127.0.0.1:1/")
	assert.Equal(t, 0, res.HTTPCode)
	assert.False(t, res.IsNoindex)
	require.Len(t, res.Reasons, 1)
	assert.NotEmpty(t, res.Reasons[0])
}

func TestInspector_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestInspector().Check(ctx, srv.URL)
	assert.Equal(t, 0, res.HTTPCode)
	require.NotEmpty(t, res.Reasons)
}

func TestHeaderHasNoindex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []string
		want   bool
	}{
		{name: "absent", values: nil, want: false},
		{name: "plain", values: []string{"noindex"}, want: true},
		{name: "mixed case with directives", values: []string{"NoIndex, nofollow"}, want: true},
		{name: "second value", values: []string{"noarchive", "noindex"}, want: true},
		{name: "unrelated", values: []string{"nofollow"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := http.Header{}
			for _, v := range tc.values {
				h.Add("X-Robots-Tag", v)
			}
			assert.Equal(t, tc.want, headerHasNoindex(h))
		})
	}
}

func TestMetaRobotsNoindex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "standard tag",
			body: `<html><head><meta name="robots" content="noindex"></head></html>`,
			want: true,
		},
		{
			name: "attribute order and case",
			body: `<meta CONTENT="noindex,follow" NAME="ROBOTS">`,
			want: true,
		},
		{
			name: "unquoted attributes",
			body: `<meta name=robots content=noindex>`,
			want: true,
		},
		{
			name: "other meta",
			body: `<meta name="description" content="noindex is a word here">`,
			want: false,
		},
		{
			name: "robots without noindex",
			body: `<meta name="robots" content="index, follow">`,
			want: false,
		},
		{
			name: "empty body",
			body: "",
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, metaRobotsNoindex([]byte(tc.body)))
		})
	}
}

func TestRoundSeconds(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.23, roundSeconds(1234*time.Millisecond), 0.001)
	assert.InDelta(t, 0.0, roundSeconds(3*time.Millisecond), 0.001)
	assert.InDelta(t, 2.0, roundSeconds(2*time.Second), 0.001)
}
