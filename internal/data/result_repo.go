package data

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/sitewatch/sitewatch/internal/errors"

	"github.com/sitewatch/sitewatch/internal/data/pgxutil"
	"github.com/sitewatch/sitewatch/internal/domain/model"
)

// ResultRepo provides database operations for page check results.
type ResultRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewResultRepo creates a new ResultRepo with real time provider.
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewResultRepoWithTimeProvider creates a new ResultRepo with a custom time provider (useful for tests).
func NewResultRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ResultRepo {
	return &ResultRepo{DB: db, timeProvider: tp}
}

const resultColumns = `id, url, http_code, is_noindex, reasons, response_time, checked_at`

// Upsert inserts or replaces the result row for the given URL. Re-checking
// a URL overwrites the previous row; no history is retained.
func (r *ResultRepo) Upsert(ctx context.Context, result *model.PageResult) error {
	if result == nil {
		return apperrors.Validation("page result is required")
	}
	if result.URL == "" {
		return apperrors.ValidationField("url", "url is required")
	}

	checkedAt := result.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = r.timeProvider.Now().UTC()
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO scan_results (url, http_code, is_noindex, reasons, response_time, checked_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (url) DO UPDATE SET
				http_code     = EXCLUDED.http_code,
				is_noindex    = EXCLUDED.is_noindex,
				reasons       = EXCLUDED.reasons,
				response_time = EXCLUDED.response_time,
				checked_at    = EXCLUDED.checked_at
		`,
			result.URL,
			result.HTTPCode,
			result.IsNoindex,
			result.Reasons,
			result.ResponseTime,
			checkedAt,
		)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// filterClause returns the WHERE fragment (without the keyword) for a
// status filter, or "" for all. Indexable means a clean 200 without a
// noindex signal; errors cover transport failures (code 0) and 4xx/5xx.
func filterClause(filter model.StatusFilter) string {
	switch filter {
	case model.FilterNoindex:
		return "is_noindex = TRUE"
	case model.FilterIndexable:
		return "is_noindex = FALSE AND http_code = 200"
	case model.FilterErrors:
		return "http_code >= 400 OR http_code = 0"
	default:
		return ""
	}
}

// List returns one page of results plus the total count matching the filter,
// newest first.
func (r *ResultRepo) List(ctx context.Context, opts model.ResultListOptions) (*model.ResultPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = 20
	}
	offset := (opts.Page - 1) * opts.PerPage

	where := ""
	if clause := filterClause(opts.Status); clause != "" {
		where = "WHERE " + clause
	}

	var (
		rowsOut []model.PageResult
		total   int
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM scan_results
			%s
			ORDER BY checked_at DESC
			LIMIT $1 OFFSET $2`, resultColumns, where)
		rows, queryErr := conn.Query(ctx, query, opts.PerPage, offset)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		rowsOut, queryErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.PageResult])
		if queryErr != nil {
			return queryErr
		}

		countQuery := "SELECT COUNT(*) FROM scan_results " + where
		return conn.QueryRow(ctx, countQuery).Scan(&total)
	})
	if err != nil {
		return nil, fmt.Errorf("list results: %w", apperrors.MapDBError(err))
	}

	pages := 0
	if total > 0 {
		pages = (total + opts.PerPage - 1) / opts.PerPage
	}
	return &model.ResultPage{
		Results:     rowsOut,
		Total:       total,
		Pages:       pages,
		CurrentPage: opts.Page,
	}, nil
}

// Stats aggregates counts over the trailing windowDays.
func (r *ResultRepo) Stats(ctx context.Context, windowDays int) (*model.Stats, error) {
	if windowDays < 1 {
		windowDays = 7
	}
	cutoff := r.timeProvider.Now().UTC().AddDate(0, 0, -windowDays)

	var stats model.Stats
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT
				COUNT(*),
				COUNT(*) FILTER (WHERE is_noindex),
				COUNT(*) FILTER (WHERE NOT is_noindex AND http_code = 200),
				COUNT(*) FILTER (WHERE http_code >= 400 OR http_code = 0)
			FROM scan_results
			WHERE checked_at > $1
		`, cutoff).Scan(&stats.Total, &stats.NoindexCount, &stats.IndexableCount, &stats.ErrorCount)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", apperrors.MapDBError(err))
	}
	return &stats, nil
}

// slowPageThresholdSeconds marks a page as slow on the dashboard.
const slowPageThresholdSeconds = 2.0

// ExtendedStats returns the dashboard's secondary statistics: daily check
// counts, the 30-day noindex trend and the slowest pages.
func (r *ResultRepo) ExtendedStats(ctx context.Context) (*model.ExtendedStats, error) {
	now := r.timeProvider.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	out := &model.ExtendedStats{}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if scanErr := conn.QueryRow(ctx, `
			SELECT
				COUNT(*) FILTER (WHERE checked_at >= $1),
				COUNT(*) FILTER (WHERE checked_at >= $2 AND checked_at < $1),
				COUNT(*) FILTER (WHERE checked_at > $3)
			FROM scan_results
		`, today, yesterday, weekAgo).Scan(&out.Today, &out.Yesterday, &out.LastWeek); scanErr != nil {
			return scanErr
		}

		trendRows, queryErr := conn.Query(ctx, `
			SELECT DATE(checked_at) AS date, COUNT(*) AS count
			FROM scan_results
			WHERE is_noindex AND checked_at > $1
			GROUP BY DATE(checked_at)
			ORDER BY date DESC
		`, monthAgo)
		if queryErr != nil {
			return queryErr
		}
		defer trendRows.Close()
		for trendRows.Next() {
			var p model.TrendPoint
			if scanErr := trendRows.Scan(&p.Date, &p.Count); scanErr != nil {
				return scanErr
			}
			out.NoindexTrend = append(out.NoindexTrend, p)
		}
		if rowsErr := trendRows.Err(); rowsErr != nil {
			return rowsErr
		}

		slowRows, queryErr := conn.Query(ctx, `
			SELECT url, response_time, http_code
			FROM scan_results
			WHERE response_time > $1
			ORDER BY response_time DESC
			LIMIT 10
		`, slowPageThresholdSeconds)
		if queryErr != nil {
			return queryErr
		}
		defer slowRows.Close()
		var slowErr error
		out.SlowPages, slowErr = pgx.CollectRows(slowRows, pgx.RowToStructByName[model.SlowPage])
		return slowErr
	})
	if err != nil {
		return nil, fmt.Errorf("extended stats: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Export returns flat result rows matching the filter, newest first. Status
// is derived per row with the same precedence the dashboard uses.
func (r *ResultRepo) Export(ctx context.Context, opts model.ExportOptions) ([]model.ExportRow, error) {
	where, args := exportWhere(opts)

	var results []model.PageResult
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		query := fmt.Sprintf(`
			SELECT %s FROM scan_results
			%s
			ORDER BY checked_at DESC`, resultColumns, where)
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		results, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.PageResult])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("export results: %w", apperrors.MapDBError(err))
	}

	out := make([]model.ExportRow, 0, len(results))
	for i := range results {
		res := &results[i]
		out = append(out, model.ExportRow{
			URL:          res.URL,
			HTTPCode:     res.HTTPCode,
			Status:       res.Status(),
			Reasons:      res.Reasons,
			ResponseTime: res.ResponseTime,
			CheckedAt:    res.CheckedAt,
		})
	}
	return out, nil
}

// exportWhere builds the WHERE clause and args for an export query.
func exportWhere(opts model.ExportOptions) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 2)

	if clause := filterClause(opts.Status); clause != "" {
		conds = append(conds, "("+clause+")")
	}
	if opts.DateFrom != nil {
		args = append(args, opts.DateFrom.UTC())
		conds = append(conds, fmt.Sprintf("checked_at >= $%d", len(args)))
	}
	if opts.DateTo != nil {
		args = append(args, opts.DateTo.UTC())
		conds = append(conds, fmt.Sprintf("checked_at <= $%d", len(args)))
	}

	where := ""
	for i, cond := range conds {
		if i == 0 {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	return where, args
}

// CompareScanDates summarizes the last two distinct scan dates within the
// trailing week, newest first.
func (r *ResultRepo) CompareScanDates(ctx context.Context) ([]model.ScanDaySummary, error) {
	weekAgo := r.timeProvider.Now().UTC().AddDate(0, 0, -7)

	var summaries []model.ScanDaySummary
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT
				DATE(checked_at)                        AS scan_date,
				COUNT(*)::int                           AS total_urls,
				COUNT(*) FILTER (WHERE is_noindex)::int AS noindex_count,
				COALESCE(AVG(response_time), 0)         AS avg_response_time
			FROM scan_results
			WHERE checked_at > $1
			GROUP BY DATE(checked_at)
			ORDER BY scan_date DESC
			LIMIT 2
		`, weekAgo)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		summaries, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.ScanDaySummary])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("compare scan dates: %w", apperrors.MapDBError(err))
	}

	for i := range summaries {
		summaries[i].AvgResponseTime = math.Round(summaries[i].AvgResponseTime*100) / 100
	}
	return summaries, nil
}

// DeleteOlderThan removes rows checked strictly before the cutoff and
// returns the number removed. A row at exactly the cutoff is retained.
func (r *ResultRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM scan_results WHERE checked_at < $1`, cutoff.UTC())
		if execErr != nil {
			return execErr
		}
		removed = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete old results: %w", apperrors.MapDBError(err))
	}
	return removed, nil
}
