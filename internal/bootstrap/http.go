package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Rushil0704/auth-client-1/config"
	httpx "github.com/Rushil0704/auth-client-1/internal/http"
	"github.com/Rushil0704/auth-client-1/internal/upload"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildRouterServices maps the service container onto the router's inputs.
func BuildRouterServices(cfg *HTTPServerConfig) httpx.RouterServices {
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	svc := cfg.Services

	rs := httpx.RouterServices{
		Sessions:   svc.Sessions,
		Accounts:   svc.Accounts,
		Users:      svc.Users,
		Categories: svc.Categories,
		Flashes:    svc.Flashes,
		Limiter:    svc.Limiter,
		Live:       svc.Live,
		Lists: httpx.ListSettings{
			PageSize: appCfg.API.PageSize,
			Debounce: appCfg.Session.Debounce,
		},
		Uploads: httpx.UploadSettings{
			Objects:   svc.Objects,
			Transient: svc.Transient,
			Config: upload.Config{
				SignedURLTTL: appCfg.Storage.PresignTTL,
				MaxBytes:     appCfg.Storage.MaxUploadBytes,
				PreviewTTL:   appCfg.Session.TransientTTL,
				Metrics:      svc.Observability.Metrics,
				Logger:       cfg.Logger,
			},
		},
		Theme: svc.Theme,
		Session: httpx.SessionConfig{
			CookieDomain: appCfg.HTTP.CookieDomain,
			TTL:          appCfg.Session.TTL,
		},
		Metrics:     svc.Observability.Metrics,
		Gatherer:    svc.Observability.Gatherer,
		MetricsPath: svc.Observability.MetricsConfig.Path,
		IsDev:       appCfg.IsDev,
		Logger:      cfg.Logger,
	}
	if appCfg.HTTP.CompressionEnabled {
		rs.Compression = httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel}
	}
	if cfg.RedisClient != nil {
		client := cfg.RedisClient
		rs.Health = map[string]httpx.HealthChecker{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
	}
	return rs
}

// NewHTTPServer builds the server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("http server config is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	handler, err := httpx.NewRouter(BuildRouterServices(cfg))
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Websocket list connections are long lived; writes are bounded by
		// the per-message deadline in the live handler instead.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}, nil
}

// RunHTTPServer serves until ctx is cancelled or the listener fails, then
// shuts the server down gracefully.
func RunHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
