package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Rushil0704/auth-client-1/config"
)

// RedisConnectConfig contains configuration for the Redis connection backing
// sessions and transient per-session data.
type RedisConnectConfig struct {
	Redis  config.RedisConfig
	Logger *slog.Logger
}

// ConnectRedis builds a client for the configured deployment (single node,
// sentinel or cluster) and pings it once.
//
//nolint:ireturn // the concrete client type depends on the deployment mode
func ConnectRedis(cfg RedisConnectConfig) (redis.UniversalClient, error) {
	opts, desc, err := universalOptions(cfg.Redis)
	if err != nil {
		return nil, err
	}
	var client redis.UniversalClient
	switch {
	case cfg.Redis.UseSentinel:
		client = redis.NewFailoverClient(opts.Failover())
	case cfg.Redis.UseCluster:
		client = redis.NewClusterClient(opts.Cluster())
	default:
		client = redis.NewClient(opts.Simple())
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis %s: %w", desc, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "target", desc, "db", opts.DB)
	}
	return client, nil
}

// universalOptions maps the config onto go-redis options. The returned
// description never contains credentials.
func universalOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	opts := &redis.UniversalOptions{
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = config.DefaultRedisDialTimeout
	}

	switch {
	case cfg.UseSentinel:
		if len(cfg.SentinelNodes) == 0 {
			return nil, "", errors.New("redis sentinel mode needs at least one sentinel node")
		}
		opts.Addrs = cfg.SentinelNodes
		opts.MasterName = cfg.SentinelMasterName
		opts.SentinelPassword = cfg.SentinelPassword
		return opts, "sentinel:" + cfg.SentinelMasterName, nil

	case cfg.UseCluster:
		opts.Addrs = cfg.ClusterNodes
		if len(opts.Addrs) == 0 {
			if err := applyURI(opts, cfg.URI); err != nil {
				return nil, "", err
			}
		}
		if len(opts.Addrs) == 0 {
			return nil, "", errors.New("redis cluster mode needs at least one node")
		}
		opts.DB = 0
		return opts, "cluster:" + strings.Join(opts.Addrs, ","), nil

	default:
		if cfg.URI == "" {
			return nil, "", errors.New("redis URI is required")
		}
		if err := applyURI(opts, cfg.URI); err != nil {
			return nil, "", err
		}
		return opts, opts.Addrs[0], nil
	}
}

// applyURI fills address, credentials, DB and TLS from a host:port or a
// redis:// / rediss:// URL.
func applyURI(opts *redis.UniversalOptions, uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}
	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		opts.Addrs = []string{uri}
		return nil
	}
	parsed, err := redis.ParseURL(uri)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	opts.Addrs = []string{parsed.Addr}
	opts.Username = parsed.Username
	if parsed.Password != "" {
		opts.Password = parsed.Password
	}
	if parsed.DB != 0 {
		opts.DB = parsed.DB
	}
	opts.TLSConfig = parsed.TLSConfig
	return nil
}
