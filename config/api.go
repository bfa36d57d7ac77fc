package config

import (
	"strings"
	"time"
)

const defaultAPIBaseURL = "http://localhost:8000"

// APIConfig describes the remote REST API the console fronts.
type APIConfig struct {
	// BaseURL is the single origin every endpoint is resolved against.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds each outbound request. The API itself applies no timeouts.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// PageSize is the fixed "limit" sent to list endpoints.
	PageSize int `env:"PAGE_SIZE" envDefault:"10"`
}

// Sanitize trims the base URL and enforces sane bounds.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		c.PageSize = 10
	}
}
