package httpx

import (
	"log/slog"
	"net/http"

	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Scans    *service.ScanService     // Required
	Reports  *service.ReportService   // Required
	Schedule *service.ScheduleService // Required
	Settings core.SettingsRepository  // Required

	// Paging bounds for listings.
	DefaultPerPage int
	MaxPerPage     int

	Logger *slog.Logger // Optional: request logging and panic recovery
}

// NewRouter creates and configures the API router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	scanHandlers := &ScanHandlers{Svc: services.Scans}
	resultHandlers := &ResultHandlers{
		Svc:            services.Reports,
		DefaultPerPage: services.DefaultPerPage,
		MaxPerPage:     services.MaxPerPage,
	}
	settingsHandlers := &SettingsHandlers{
		Settings: services.Settings,
		Scans:    services.Scans,
		Schedule: services.Schedule,
	}

	mux.HandleFunc("POST /api/scan", scanHandlers.Start)
	mux.HandleFunc("DELETE /api/scan", scanHandlers.Stop)
	mux.HandleFunc("GET /api/scan/progress", scanHandlers.Progress)

	mux.HandleFunc("GET /api/results", resultHandlers.List)
	mux.HandleFunc("GET /api/stats", resultHandlers.Stats)
	mux.HandleFunc("GET /api/stats/extended", resultHandlers.ExtendedStats)
	mux.HandleFunc("GET /api/compare", resultHandlers.Compare)
	mux.HandleFunc("GET /api/export", resultHandlers.Export)

	mux.HandleFunc("GET /api/settings", settingsHandlers.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandlers.Update)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
