package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the dashboard (e.g., "https://admin.example.com").
	// Used for generating absolute report links in notifications.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// PageSize is the default page size for result listings.
	PageSize int `env:"HTTP_PAGE_SIZE" envDefault:"20"`

	// MaxPageSize caps the per_page query parameter.
	MaxPageSize int `env:"HTTP_MAX_PAGE_SIZE" envDefault:"200"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.PageSize < 1 {
		h.PageSize = 20
	}
	if h.MaxPageSize < h.PageSize {
		h.MaxPageSize = h.PageSize
	}
}
