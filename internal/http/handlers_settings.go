package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/sitewatch/sitewatch/internal/core"
	apperrors "github.com/sitewatch/sitewatch/internal/errors"
	"github.com/sitewatch/sitewatch/internal/service"
)

// SettingsHandlers serves the operator settings endpoints.
type SettingsHandlers struct {
	Settings core.SettingsRepository
	Scans    *service.ScanService
	Schedule *service.ScheduleService
}

// settingsResponse is the body of GET /api/settings.
type settingsResponse struct {
	// Sitemaps is the effective sitemap list, including the default when
	// nothing is configured.
	Sitemaps []string `json:"sitemaps"`
	ScanTime string   `json:"scan_time"`
}

// updateSettingsRequest is the body of PUT /api/settings. Nil fields are
// left unchanged; an empty sitemap list reverts to the default.
type updateSettingsRequest struct {
	Sitemaps *[]string `json:"sitemaps"`
	ScanTime *string   `json:"scan_time"`
}

// Get handles GET /api/settings.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sitemaps, err := h.Scans.Sitemaps(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	scanTime, err := h.Schedule.ScanTime(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settingsResponse{Sitemaps: sitemaps, ScanTime: scanTime})
}

// Update handles PUT /api/settings.
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Sitemaps != nil {
		cleaned, err := validateSitemaps(*req.Sitemaps)
		if err != nil {
			WriteAppError(w, err)
			return
		}
		if len(cleaned) == 0 {
			if err := h.Settings.Delete(r.Context(), core.SettingSitemaps); err != nil {
				WriteAppError(w, err)
				return
			}
		} else if err := h.Settings.Set(r.Context(), core.SettingSitemaps, strings.Join(cleaned, "\n")); err != nil {
			WriteAppError(w, err)
			return
		}
	}

	if req.ScanTime != nil {
		value := strings.TrimSpace(*req.ScanTime)
		if !service.ValidScanTime(value) {
			WriteAppError(w, apperrors.ValidationField("scan_time", "scan time must be HH:MM on a 24h clock"))
			return
		}
		if err := h.Settings.Set(r.Context(), core.SettingScanTime, value); err != nil {
			WriteAppError(w, err)
			return
		}
	}

	h.Get(w, r)
}

// validateSitemaps trims the list and rejects entries that are not absolute
// http(s) URLs.
func validateSitemaps(raw []string) ([]string, error) {
	cleaned := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		u, err := url.Parse(entry)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, apperrors.ValidationField("sitemaps", "sitemap entries must be absolute http(s) URLs")
		}
		cleaned = append(cleaned, entry)
	}
	return cleaned, nil
}
