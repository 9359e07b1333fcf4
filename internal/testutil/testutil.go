// Package testutil provides database and Redis helpers for integration
// tests. Tests are skipped when the backing services are unavailable.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/sitewatch/sitewatch/internal/migrate"
)

// TestingTB covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Cleanup(func())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("TEST_DB_HOST", "localhost")
	port := envOr("TEST_DB_PORT", "5432")
	user := envOr("TEST_DB_USER", "sitewatch")
	pass := envOr("TEST_DB_PASSWORD", "sitewatch")
	name := envOr("TEST_DB_NAME", "sitewatch_test")
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		user, pass, net.JoinHostPort(host, port), name)
}

// SetupTestDB opens the test database, runs migrations and truncates the
// scan tables. Tests are skipped when the database is unreachable.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		t.Skipf("test database unavailable: %v", pingErr)
		return nil
	}

	if migrateErr := migrate.Run(ctx, db); migrateErr != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", migrateErr)
		return nil
	}

	cleanup := func() {
		_, _ = db.Exec(`TRUNCATE scan_results, scan_logs, settings RESTART IDENTITY`)
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		_ = db.Close()
	})
	return db
}

// SetupTestRedis connects to the test Redis instance and flushes the test
// database. Tests are skipped when Redis is unreachable.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: envOr("TEST_REDIS_URI", "localhost:6379"),
		DB:   15, // dedicated test database
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("test redis unavailable: %v", err)
		return nil
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush test redis: %v", err)
		return nil
	}
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return client
}
