package main

import (
	"context"
	"flag"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sitewatch/sitewatch/internal/bootstrap"
)

// withServices wires the full service container for one admin command.
func withServices(ctx *commandContext, fn func(runCtx context.Context, services *bootstrap.ServiceContainer) error) error {
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
	return fn(runCtx, services)
}

func runScanStart(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("scan-start", flag.ContinueOnError)
	sitemap := fs.String("sitemap", "", "scan this sitemap instead of the configured list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withServices(ctx, func(runCtx context.Context, services *bootstrap.ServiceContainer) error {
		result, err := services.Scans.Start(runCtx, *sitemap)
		if err != nil {
			return err
		}
		ctx.Logger.InfoContext(runCtx, "scan started",
			"scan_id", result.ScanID, "total_urls", result.TotalURLs)
		return nil
	})
}

func runScanStop(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("scan-stop", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withServices(ctx, func(runCtx context.Context, services *bootstrap.ServiceContainer) error {
		if err := services.Scans.Stop(runCtx); err != nil {
			return err
		}
		ctx.Logger.InfoContext(runCtx, "scan stopped")
		return nil
	})
}

func runStatus(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	days := fs.Int("days", 7, "statistics window in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withServices(ctx, func(runCtx context.Context, services *bootstrap.ServiceContainer) error {
		progress, err := services.Scans.Progress(runCtx)
		if err != nil {
			return err
		}
		stats, err := services.Reports.Stats(runCtx, *days)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(w, "scan in progress:\t%v\n", progress.InProgress); err != nil {
			return err
		}
		if progress.InProgress {
			if err := writef(w, "progress:\t%d/%d (%d%%)\n",
				progress.Processed, progress.Total, progress.Percent); err != nil {
				return err
			}
		}
		if last, ok, lastErr := services.Scans.LastScan(runCtx); lastErr == nil && ok {
			if err := writef(w, "last scan:\t%s\n", last.Format(time.RFC3339)); err != nil {
				return err
			}
		}
		if next, nextErr := services.Schedule.NextFire(runCtx, time.Now()); nextErr == nil {
			if err := writef(w, "next daily scan:\t%s\n", next.Format(time.RFC3339)); err != nil {
				return err
			}
		}
		if err := writef(w, "results (%dd):\t%d total, %d noindex, %d indexable, %d errors\n",
			*days, stats.Total, stats.NoindexCount, stats.IndexableCount, stats.ErrorCount); err != nil {
			return err
		}
		return w.Flush()
	})
}
