package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/sitewatch/sitewatch/internal/errors"

	"github.com/sitewatch/sitewatch/internal/data/pgxutil"
)

// SettingsRepo is a Postgres-backed key-value store for operator settings.
type SettingsRepo struct {
	DB *sql.DB
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db}
}

// Get returns the stored value for key, or defaultValue when absent.
func (r *SettingsRepo) Get(ctx context.Context, key, defaultValue string) (string, error) {
	var value string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultValue, nil
		}
		return "", apperrors.MapDBError(err)
	}
	return value, nil
}

// Set stores value under key, replacing any prior value.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return apperrors.ValidationField("key", "key is required")
	}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET
				value      = EXCLUDED.value,
				updated_at = EXCLUDED.updated_at
		`, key, value)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
		return execErr
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}
