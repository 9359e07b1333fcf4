package httpx

import (
	"net/http"
	"time"

	"github.com/sitewatch/sitewatch/internal/domain/model"
	"github.com/sitewatch/sitewatch/internal/service"
)

// ScanHandlers serves the scan lifecycle endpoints.
type ScanHandlers struct {
	Svc *service.ScanService
}

// startScanRequest is the optional body of POST /api/scan.
type startScanRequest struct {
	// SitemapURL overrides the configured sitemap list for this run.
	SitemapURL string `json:"sitemap_url"`
}

// Start handles POST /api/scan. The scan runs asynchronously; the response
// carries the scan id and queue size.
func (h *ScanHandlers) Start(w http.ResponseWriter, r *http.Request) {
	var req startScanRequest
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	result, err := h.Svc.Start(r.Context(), req.SitemapURL)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, result)
}

// Stop handles DELETE /api/scan. Stopping when no scan is running is a
// no-op and still returns 204.
func (h *ScanHandlers) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Stop(r.Context()); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// progressResponse extends scan progress with the last scan start time.
type progressResponse struct {
	model.Progress
	LastScan *time.Time `json:"last_scan,omitempty"`
}

// Progress handles GET /api/scan/progress.
func (h *ScanHandlers) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.Svc.Progress(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	resp := progressResponse{Progress: progress}
	if last, ok, lastErr := h.Svc.LastScan(r.Context()); lastErr == nil && ok {
		resp.LastScan = &last
	}
	WriteJSON(w, http.StatusOK, resp)
}
