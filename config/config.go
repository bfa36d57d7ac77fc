// Package config declares the console's environment configuration. Values
// are read with caarlos0/env (see bootstrap.LoadConfig) and then clamped by
// Sanitize; each section lives in its own file.
package config

import (
	"os"
	"strings"
)

type AppConfig struct {
	// IsDev turns on template reloading and detailed error pages. NODE_ENV
	// set to development or dev also enables it.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	API           APIConfig `envPrefix:"API_"`
	Session       SessionConfig
	RateLimit     RateLimitConfig
	Redis         RedisConfig `envPrefix:"REDIS_"`
	HTTP          HTTPConfig
	Storage       StorageConfig `envPrefix:"S3_"`
	Observability ObservabilityConfig
}

type sanitizer interface{ Sanitize() }

// Sanitize trims and clamps every section in place. Call it once after
// parsing.
func (c *AppConfig) Sanitize() {
	for _, s := range []sanitizer{
		&c.HTTP, &c.API, &c.Session, &c.RateLimit,
		&c.Redis, &c.Storage, &c.Observability,
	} {
		s.Sanitize()
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !c.IsDev {
		switch strings.ToLower(os.Getenv("NODE_ENV")) {
		case "development", "dev":
			c.IsDev = true
		}
	}
}
