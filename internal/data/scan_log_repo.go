package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/sitewatch/sitewatch/internal/errors"

	"github.com/sitewatch/sitewatch/internal/data/pgxutil"
	"github.com/sitewatch/sitewatch/internal/domain/model"
)

// ScanLogRepo provides database operations for the append-only scan audit log.
type ScanLogRepo struct {
	DB *sql.DB
}

// NewScanLogRepo creates a new ScanLogRepo.
func NewScanLogRepo(db *sql.DB) *ScanLogRepo {
	return &ScanLogRepo{DB: db}
}

// Append inserts one audit row. Rows are never updated in place; progress is
// recorded as a sequence of entries per scan.
func (r *ScanLogRepo) Append(ctx context.Context, entry *model.ScanLogEntry) error {
	if entry == nil {
		return apperrors.Validation("scan log entry is required")
	}
	if entry.ScanID == "" {
		return apperrors.ValidationField("scan_id", "scan_id is required")
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			INSERT INTO scan_logs (scan_id, total_urls, processed_urls, noindex_count, start_time, end_time, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			entry.ScanID,
			entry.TotalURLs,
			entry.ProcessedURLs,
			entry.NoindexCount,
			entry.StartTime,
			entry.EndTime,
			entry.Status,
		).Scan(&entry.ID)
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// Latest returns the most recent audit row for a scan.
func (r *ScanLogRepo) Latest(ctx context.Context, scanID string) (*model.ScanLogEntry, error) {
	var entry model.ScanLogEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			SELECT id, scan_id, total_urls, processed_urls, noindex_count, start_time, end_time, status
			FROM scan_logs
			WHERE scan_id = $1
			ORDER BY id DESC
			LIMIT 1
		`, scanID)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		entry, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ScanLogEntry])
		return collectErr
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &entry, nil
}

// DeleteOlderThan removes audit rows whose scan started strictly before the
// cutoff and returns the number removed.
func (r *ScanLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM scan_logs WHERE start_time < $1`, cutoff.UTC())
		if execErr != nil {
			return execErr
		}
		removed = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete old scan logs: %w", apperrors.MapDBError(err))
	}
	return removed, nil
}
