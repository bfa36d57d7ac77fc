package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseDefaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.PageSize != 10 {
		t.Errorf("API.PageSize = %d, want 10", cfg.API.PageSize)
	}
	if cfg.Session.Debounce != 300*time.Millisecond {
		t.Errorf("Session.Debounce = %v, want 300ms", cfg.Session.Debounce)
	}
	if cfg.Storage.PresignTTL != time.Hour {
		t.Errorf("Storage.PresignTTL = %v, want 1h", cfg.Storage.PresignTTL)
	}
	if cfg.Storage.Region != "us-east-1" || !cfg.Storage.UsePathStyle {
		t.Errorf("Storage region/path style = %q/%v", cfg.Storage.Region, cfg.Storage.UsePathStyle)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q", cfg.Redis.URI)
	}
	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
}

func TestAppConfig_ParsePrefixedEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", " https://api.example.com/ ")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("REDIS_URI", "redis:6380")
	t.Setenv("REDIS_USE_CLUSTER", "true")
	t.Setenv("REDIS_CLUSTER_NODES", "a:1,b:2")
	t.Setenv("S3_BUCKET", "images")
	t.Setenv("S3_ENDPOINT", "http://minio:9000/")
	t.Setenv("LOGIN_ATTEMPTS_PER_MINUTE", "3")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Redis.URI != "redis:6380" || !cfg.Redis.UseCluster || len(cfg.Redis.ClusterNodes) != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if !cfg.Storage.IsEnabled() || cfg.Storage.Endpoint != "http://minio:9000" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.RateLimit.LoginPerMinute != 3 {
		t.Errorf("RateLimit.LoginPerMinute = %d", cfg.RateLimit.LoginPerMinute)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		name    string
		nodeEnv string
		want    bool
	}{
		{name: "development", nodeEnv: "development", want: true},
		{name: "dev short", nodeEnv: "DEV", want: true},
		{name: "production", nodeEnv: "production", want: false},
		{name: "unset", nodeEnv: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			cfg := AppConfig{}
			cfg.Sanitize()
			if cfg.IsDev != tt.want {
				t.Errorf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name       string
		in         HTTPConfig
		wantLevel  int
		wantDomain string
	}{
		{name: "clamps low level", in: HTTPConfig{CompressionLevel: 0}, wantLevel: 1},
		{name: "clamps high level", in: HTTPConfig{CompressionLevel: 12}, wantLevel: 9},
		{
			name:       "keeps registrable domain",
			in:         HTTPConfig{CompressionLevel: 6, CookieDomain: " .Admin.Example.com "},
			wantLevel:  6,
			wantDomain: "admin.example.com",
		},
		{
			name:      "drops public suffix",
			in:        HTTPConfig{CompressionLevel: 6, CookieDomain: "co.uk"},
			wantLevel: 6,
		},
		{
			name:       "keeps localhost",
			in:         HTTPConfig{CompressionLevel: 6, CookieDomain: "localhost"},
			wantLevel:  6,
			wantDomain: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			if cfg.CompressionLevel != tt.wantLevel {
				t.Errorf("CompressionLevel = %d, want %d", cfg.CompressionLevel, tt.wantLevel)
			}
			if cfg.CookieDomain != tt.wantDomain {
				t.Errorf("CookieDomain = %q, want %q", cfg.CookieDomain, tt.wantDomain)
			}
		})
	}
}

func TestStorageConfig_Sanitize(t *testing.T) {
	cfg := StorageConfig{PartSize: 10, PresignTTL: 0, Region: " "}
	cfg.Sanitize()

	if cfg.PartSize != 5*1024*1024 {
		t.Fatalf("expected part size to be raised to the multipart minimum, got %d", cfg.PartSize)
	}
	if cfg.PresignTTL != time.Hour {
		t.Fatalf("expected presign ttl to fall back to 1h, got %v", cfg.PresignTTL)
	}
	if cfg.Region != "us-east-1" {
		t.Fatalf("expected default region, got %q", cfg.Region)
	}
	if cfg.IsEnabled() {
		t.Fatalf("expected storage disabled without a bucket")
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, Path: " metrics "}
	cfg.Sanitize()

	if cfg.Path != "/metrics" {
		t.Fatalf("expected path to be normalised, got %q", cfg.Path)
	}
	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}

	cfg = ObservabilityMetricsConfig{Enabled: true, Path: ""}
	cfg.Sanitize()
	if cfg.Path != "/metrics" {
		t.Fatalf("expected default path, got %q", cfg.Path)
	}
}

func TestSessionAndRateLimit_Sanitize(t *testing.T) {
	s := SessionConfig{}
	s.Sanitize()
	if s.TTL != 24*time.Hour || s.Debounce != 300*time.Millisecond {
		t.Fatalf("unexpected session defaults: %+v", s)
	}

	r := RateLimitConfig{LoginPerMinute: -1}
	r.Sanitize()
	if r.LoginPerMinute != 10 || r.LoginBurst != 1 {
		t.Fatalf("unexpected rate limit defaults: %+v", r)
	}
}
