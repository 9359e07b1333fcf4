package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sitewatch/sitewatch/internal/bootstrap"
	"github.com/sitewatch/sitewatch/internal/migrate"
)

const defaultCommandTimeout = 5 * time.Minute

// connect opens the database and Redis handles the admin commands share.
//
//nolint:ireturn // redis.UniversalClient is what the repositories accept.
func connect(ctx *commandContext) (*sql.DB, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    ctx.Config.Postgres,
		RedisConfig: ctx.Config.Redis,
		Logger:      ctx.Logger,
	}
	db, err := bootstrap.ConnectDB(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	redisClient, err := bootstrap.ConnectRedis(dbCfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, redisClient, nil
}

func runMigrate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultCommandTimeout, "migration timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    ctx.Config.Postgres,
		RedisConfig: ctx.Config.Redis,
		Logger:      ctx.Logger,
	}
	db, err := bootstrap.ConnectDB(dbCfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runCtx, cancel := context.WithTimeout(ctx.Ctx, *timeout)
	defer cancel()

	if err := migrate.Run(runCtx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	ctx.Logger.InfoContext(runCtx, "migrations applied")
	return nil
}

func runCleanup(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ContinueOnError)
	days := fs.Int("days", ctx.Config.Retention.Days, "delete rows older than this many days")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *days < 1 {
		return errors.New("days must be at least 1")
	}
	if !*yes {
		return errors.New("cleanup deletes data; re-run with -yes to confirm")
	}

	db, redisClient, err := connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	defer func() { _ = redisClient.Close() }()

	services, err := bootstrap.BuildServices(bootstrap.ServiceDeps{
		Config:      &ctx.Config,
		DB:          db,
		RedisClient: redisClient,
		Logger:      ctx.Logger,
	})
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx.Ctx, defaultCommandTimeout)
	defer cancel()

	removed, err := services.Retention.SweepOlderThan(runCtx, *days)
	if err != nil {
		return err
	}
	ctx.Logger.InfoContext(runCtx, "cleanup finished", "days", *days, "results_removed", removed)
	return nil
}
