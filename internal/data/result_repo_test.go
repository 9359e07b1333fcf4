package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewatch/sitewatch/internal/domain/model"
	apperrors "github.com/sitewatch/sitewatch/internal/errors"
	"github.com/sitewatch/sitewatch/internal/testutil"
)

func seedResult(t *testing.T, repo *ResultRepo, url string, code int, noindex bool, checkedAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &model.PageResult{
		URL:          url,
		HTTPCode:     code,
		IsNoindex:    noindex,
		ResponseTime: 0.5,
		CheckedAt:    checkedAt,
	}))
}

func TestResultRepo_UpsertReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedResult(t, repo, "https://example.com/a", 200, false, now.Add(-time.Hour))
	// Re-checking the same URL overwrites the row, not appends.
	require.NoError(t, repo.Upsert(ctx, &model.PageResult{
		URL:       "https://example.com/a",
		HTTPCode:  200,
		IsNoindex: true,
		Reasons:   model.ReasonMetaRobots,
		CheckedAt: now,
	}))

	page, err := repo.List(ctx, model.ResultListOptions{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Len(t, page.Results, 1)
	assert.True(t, page.Results[0].IsNoindex)
	assert.Equal(t, model.ReasonMetaRobots, page.Results[0].Reasons)
}

func TestResultRepo_UpsertValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)

	assert.True(t, apperrors.IsValidation(repo.Upsert(context.Background(), nil)))
	assert.True(t, apperrors.IsValidation(repo.Upsert(context.Background(), &model.PageResult{})))
}

func TestResultRepo_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedResult(t, repo, "https://example.com/ok", 200, false, now)
	seedResult(t, repo, "https://example.com/flagged", 200, true, now)
	seedResult(t, repo, "https://example.com/missing", 404, false, now)
	seedResult(t, repo, "https://example.com/down", 0, false, now)
	seedResult(t, repo, "https://example.com/moved", 301, false, now)

	cases := []struct {
		filter model.StatusFilter
		want   int
	}{
		{filter: model.FilterAll, want: 5},
		{filter: model.FilterNoindex, want: 1},
		{filter: model.FilterIndexable, want: 1},
		{filter: model.FilterErrors, want: 2},
	}
	for _, tc := range cases {
		page, err := repo.List(ctx, model.ResultListOptions{Page: 1, PerPage: 10, Status: tc.filter})
		require.NoError(t, err)
		assert.Equal(t, tc.want, page.Total, string(tc.filter))
	}
}

func TestResultRepo_ListPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		seedResult(t, repo, "https://example.com/p"+string(rune('a'+i)), 200, false,
			base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.List(ctx, model.ResultListOptions{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Results, 2)
	// Newest first: page 2 starts at the third-newest row.
	assert.Equal(t, "https://example.com/pc", page.Results[0].URL)
}

func TestResultRepo_Stats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedResult(t, repo, "https://example.com/ok", 200, false, now)
	seedResult(t, repo, "https://example.com/flagged", 200, true, now)
	seedResult(t, repo, "https://example.com/missing", 404, false, now)
	// Outside the window; ignored by the aggregate.
	seedResult(t, repo, "https://example.com/stale", 200, true, now.AddDate(0, 0, -10))

	stats, err := repo.Stats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.NoindexCount)
	assert.Equal(t, 1, stats.IndexableCount)
	assert.Equal(t, 1, stats.ErrorCount)
}

func TestResultRepo_Export(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seedResult(t, repo, "https://example.com/flagged", 200, true, now)
	seedResult(t, repo, "https://example.com/older", 200, false, now.AddDate(0, 0, -5))

	rows, err := repo.Export(ctx, model.ExportOptions{Status: model.FilterNoindex})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "https://example.com/flagged", rows[0].URL)
	assert.Equal(t, model.PageStatusNoindex, rows[0].Status)

	from := now.AddDate(0, 0, -1)
	rows, err = repo.Export(ctx, model.ExportOptions{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "https://example.com/flagged", rows[0].URL)
}

func TestResultRepo_DeleteOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewResultRepo(db)
	ctx := context.Background()

	cutoff := time.Now().UTC().AddDate(0, 0, -30).Truncate(time.Second)
	seedResult(t, repo, "https://example.com/ancient", 200, false, cutoff.Add(-time.Hour))
	seedResult(t, repo, "https://example.com/boundary", 200, false, cutoff)
	seedResult(t, repo, "https://example.com/fresh", 200, false, time.Now().UTC())

	removed, err := repo.DeleteOlderThan(ctx, cutoff)
	require.NoError(t, err)
	// Strictly older than the cutoff: the boundary row survives.
	assert.Equal(t, int64(1), removed)

	page, err := repo.List(ctx, model.ResultListOptions{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}
