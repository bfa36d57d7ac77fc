package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/Rushil0704/auth-client-1/config"
	redisstore "github.com/Rushil0704/auth-client-1/internal/adapters/redis"
	"github.com/Rushil0704/auth-client-1/internal/adapters/s3store"
	"github.com/Rushil0704/auth-client-1/internal/apiclient"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/ports"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
	"github.com/Rushil0704/auth-client-1/internal/theme"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	API        *apiclient.Client
	Sessions   *service.SessionService
	Accounts   *service.AccountService
	Users      *service.UserService
	Categories *service.CategoryService
	Flashes    *service.Flashes
	Limiter    *service.LoginLimiter
	Live       *sessioncache.Registry
	Theme      *theme.Store

	// Objects is nil when no bucket is configured; the upload screen then
	// reports itself as unavailable.
	Objects   ports.ObjectStore
	Transient ports.TransientStore

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability registers the console collectors plus the Go runtime and
// process collectors on a private registry.
func buildObservability(cfg config.ObservabilityConfig) ObservabilityContainer {
	obs := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if !cfg.Metrics.IsEnabled() {
		return obs
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	obs.Metrics = metrics.New(reg)
	obs.Gatherer = reg
	return obs
}

// NewServices wires stores, the API client and the domain services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	if deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("service deps require a redis client")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(cfg.Observability)
	sessionStore := redisstore.NewSessionStoreWithPrefix(deps.RedisClient, cfg.Redis.KeyPrefix+"session:")
	transient := redisstore.NewTransientStoreWithPrefix(deps.RedisClient, cfg.Redis.KeyPrefix+"transient:")

	api, err := apiclient.New(apiclient.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		PageSize: cfg.API.PageSize,
		Sessions: sessionStore,
		Metrics:  obs.Metrics,
		Logger:   logger.With("component", "apiclient"),
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build api client: %w", err)
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Stores: service.SessionStores{Sessions: sessionStore, Transient: transient},
		API:    api,
		Config: service.SessionConfig{
			TTL:     cfg.Session.TTL,
			Metrics: obs.Metrics,
			Logger:  logger,
		},
	})

	// Live controllers and upload flows die with the session.
	live := sessioncache.New(cfg.Session.LiveIdleTTL)
	sessions.OnClear(live.Evict)

	objects, err := newObjectStore(ctx, cfg.Storage, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		API:           api,
		Sessions:      sessions,
		Accounts:      service.NewAccountService(service.AccountServiceOptions{Sessions: sessions, Logger: logger}),
		Users:         service.NewUserService(sessions),
		Categories:    service.NewCategoryService(sessions),
		Flashes:       service.NewFlashes(transient, cfg.Session.TransientTTL, logger),
		Limiter:       service.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		Live:          live,
		Theme:         theme.NewStore(cfg.HTTP.CookieDomain, strings.HasPrefix(cfg.HTTP.BaseURL, "https://")),
		Objects:       objects,
		Transient:     transient,
		Observability: obs,
	}, nil
}

// newObjectStore returns nil without error when no bucket is configured.
//
//nolint:ireturn // nil interface signals "uploads disabled" to the router.
func newObjectStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (ports.ObjectStore, error) {
	if !cfg.IsEnabled() {
		logger.InfoContext(ctx, "object storage not configured; image upload disabled")
		return nil, nil
	}
	store, err := s3store.New(ctx, s3store.Options{Config: cfg, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build object store: %w", err)
	}
	logger.InfoContext(ctx, "object storage configured", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return store, nil
}
