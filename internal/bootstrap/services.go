package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sitewatch/sitewatch/config"
	"github.com/sitewatch/sitewatch/internal/adapters/scanrunner"
	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/data"
	"github.com/sitewatch/sitewatch/internal/inspect"
	"github.com/sitewatch/sitewatch/internal/observability/notify"
	"github.com/sitewatch/sitewatch/internal/observability/notify/mail"
	"github.com/sitewatch/sitewatch/internal/observability/notify/webhook"
	"github.com/sitewatch/sitewatch/internal/service"
	"github.com/sitewatch/sitewatch/internal/sitemap"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Scans     *service.ScanService
	Reports   *service.ReportService
	Schedule  *service.ScheduleService
	Retention *service.RetentionService
	Settings  core.SettingsRepository
	Runner    *scanrunner.Runner
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires repositories, the scan engine and its collaborators.
func BuildServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, errors.New("database is required")
	}
	if deps.RedisClient == nil {
		return nil, errors.New("redis client is required")
	}
	cfg := deps.Config

	resultRepo := data.NewResultRepo(deps.DB)
	logRepo := data.NewScanLogRepo(deps.DB)
	settingsRepo := data.NewSettingsRepo(deps.DB)
	stateRepo := data.NewRedisScanStateRepo(deps.RedisClient)
	tickScheduler := data.NewRedisTickScheduler(deps.RedisClient)

	resolver := sitemap.NewResolver(sitemap.Options{
		UserAgent:   cfg.Scan.UserAgent,
		Timeout:     cfg.Scan.RequestTimeout,
		MaxDepth:    cfg.Scan.MaxSitemapDepth,
		InsecureTLS: cfg.Scan.InsecureTLS,
		Logger:      deps.Logger,
	})
	inspector := inspect.NewInspector(inspect.Options{
		UserAgent:   cfg.Scan.UserAgent,
		Timeout:     cfg.Scan.RequestTimeout,
		InsecureTLS: cfg.Scan.InsecureTLS,
		// Hard bound on outbound checks, shared across whatever drives
		// the inspector. The tick cadence normally dominates.
		Limiter: rate.NewLimiter(rate.Every(cfg.Scan.TickDelay), 1),
	})

	notifier, err := buildNotifier(cfg.Notify, deps.Logger)
	if err != nil {
		return nil, err
	}

	scans, err := service.NewScanService(service.ScanServiceOptions{
		Repos: service.ScanRepos{
			Results:  resultRepo,
			Logs:     logRepo,
			State:    stateRepo,
			Ticks:    tickScheduler,
			Settings: settingsRepo,
		},
		Resolver: resolver,
		Checker:  inspector,
		Config:   cfg.Scan,
		SiteURL:  cfg.SiteURL,
		Notifier: notifier,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create scan service: %w", err)
	}

	reports, err := service.NewReportService(service.ReportServiceOptions{
		Results: resultRepo,
		Logs:    logRepo,
	})
	if err != nil {
		return nil, fmt.Errorf("create report service: %w", err)
	}

	schedule, err := service.NewScheduleService(service.ScheduleServiceOptions{
		Settings:        settingsRepo,
		DefaultScanTime: cfg.Scan.DailyScanTime,
	})
	if err != nil {
		return nil, fmt.Errorf("create schedule service: %w", err)
	}

	retention, err := service.NewRetentionService(service.RetentionServiceOptions{
		Results: resultRepo,
		Logs:    logRepo,
		Config:  cfg.Retention,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create retention service: %w", err)
	}

	runner, err := scanrunner.NewRunner(scanrunner.RunnerOptions{
		Scans:    scans,
		Schedule: schedule,
		State:    stateRepo,
		Ticks:    tickScheduler,
		Config:   cfg.Scan,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create scan runner: %w", err)
	}

	return &ServiceContainer{
		Scans:     scans,
		Reports:   reports,
		Schedule:  schedule,
		Retention: retention,
		Settings:  settingsRepo,
		Runner:    runner,
	}, nil
}

// buildNotifier assembles the configured notification sinks; nil when
// nothing is configured.
//
//nolint:ireturn // the sink set is configuration-driven.
func buildNotifier(cfg config.NotifyConfig, logger *slog.Logger) (notify.Sink, error) {
	var sinks notify.Multi

	if cfg.WebhookURL != "" {
		client, err := webhook.NewClient(webhook.Config{
			URL:     cfg.WebhookURL,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create webhook sink: %w", err)
		}
		sinks = append(sinks, client)
	}

	if cfg.MailTo != "" {
		var recipients []string
		for _, addr := range strings.Split(cfg.MailTo, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				recipients = append(recipients, addr)
			}
		}
		client, err := mail.NewClient(mail.Config{
			Addr: cfg.SMTPAddr,
			From: cfg.MailFrom,
			To:   recipients,
		})
		if err != nil {
			return nil, fmt.Errorf("create mail sink: %w", err)
		}
		sinks = append(sinks, client)
	}

	if len(sinks) == 0 {
		if logger != nil {
			logger.Info("scan notifications disabled, no sinks configured")
		}
		return nil, nil
	}
	return sinks, nil
}

// shutdownWaitTimeout bounds graceful shutdown of each component.
const shutdownWaitTimeout = 10 * time.Second

// ServiceOrchestrationConfig groups everything RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and blocks until a
// shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	var server *http.Server
	if cfg.Config.IsHTTPServerEnabled() {
		server = StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: *cfg.Services,
			Logger:   logger,
		})
	}

	if cfg.Config.IsScannerEnabled() {
		group.Go(func() error { return cfg.Services.Runner.Run(gctx) })
		group.Go(func() error { return cfg.Services.Retention.Run(gctx) })
	}

	<-gctx.Done()
	logger.Info("shutting down services...")

	var shutdownErr error
	if server != nil {
		shutdownErr = ShutdownHTTPServer(ShutdownConfig{Server: server, Logger: logger})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Join(err, shutdownErr)
	}
	return shutdownErr
}
