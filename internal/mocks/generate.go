// Package mocks provides mock implementations for testing the scan service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the repository and collaborator interfaces in internal/core. To
// regenerate after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=result_repository_mock.go github.com/sitewatch/sitewatch/internal/core ResultRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=scan_log_repository_mock.go github.com/sitewatch/sitewatch/internal/core ScanLogRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=scan_state_repository_mock.go github.com/sitewatch/sitewatch/internal/core ScanStateRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tick_scheduler_mock.go github.com/sitewatch/sitewatch/internal/core TickScheduler
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=page_checker_mock.go github.com/sitewatch/sitewatch/internal/core PageChecker
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=sitemap_resolver_mock.go github.com/sitewatch/sitewatch/internal/core SitemapResolver
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=settings_repository_mock.go github.com/sitewatch/sitewatch/internal/core SettingsRepository
