package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sitewatch/sitewatch/internal/domain/model"
	"github.com/sitewatch/sitewatch/internal/service"
)

// ResultHandlers serves result listings, statistics and exports.
type ResultHandlers struct {
	Svc *service.ReportService
	// DefaultPerPage and MaxPerPage bound the page size.
	DefaultPerPage int
	MaxPerPage     int
}

// queryInt parses an integer query parameter, returning fallback when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

const exportDateLayout = "2006-01-02"

// queryDate parses a "YYYY-MM-DD" query parameter; nil when absent.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(exportDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q", name, raw)
	}
	return &t, nil
}

// List handles GET /api/results.
func (h *ResultHandlers) List(w http.ResponseWriter, r *http.Request) {
	status, err := model.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_filter", Err: err})
		return
	}

	opts := model.ResultListOptions{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", h.DefaultPerPage),
		Status:  status,
	}
	opts.Normalize(h.DefaultPerPage, h.MaxPerPage)

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// Stats handles GET /api/stats.
func (h *ResultHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context(), queryInt(r, "days", 7))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// ExtendedStats handles GET /api/stats/extended.
func (h *ResultHandlers) ExtendedStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.ExtendedStats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// Compare handles GET /api/compare.
func (h *ResultHandlers) Compare(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.Svc.Compare(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cmp)
}

// Export handles GET /api/export. The format query parameter selects csv
// (default) or xlsx; status, from and to narrow the rows.
func (h *ResultHandlers) Export(w http.ResponseWriter, r *http.Request) {
	status, err := model.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_filter", Err: err})
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_date", Err: err})
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_date", Err: err})
		return
	}
	if to != nil {
		// Make the upper bound inclusive of the whole day.
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		to = &end
	}

	opts := model.ExportOptions{Status: status, DateFrom: from, DateTo: to}
	stamp := time.Now().UTC().Format("2006-01-02")

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scan-results-%s.csv", stamp))
		if err := h.Svc.ExportCSV(r.Context(), opts, w); err != nil {
			// Headers are gone; the truncated body is the best signal left.
			return
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scan-results-%s.xlsx", stamp))
		if err := h.Svc.ExportXLSX(r.Context(), opts, w); err != nil {
			return
		}
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_format",
			Err:     fmt.Errorf("unsupported export format %q", format),
		})
	}
}
