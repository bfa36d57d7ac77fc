package config

import (
	"strings"
	"time"
)

// DefaultRedisDialTimeout bounds connecting and the startup ping.
const DefaultRedisDialTimeout = 5 * time.Second

// RedisConfig selects and configures the Redis deployment backing sessions
// and per-session transient data. URI may be host:port or a redis:// /
// rediss:// URL; credentials in the URL win over Password.
type RedisConfig struct {
	URI                string        `env:"URI"                  envDefault:"localhost:6379"`
	Password           string        `env:"PASSWORD"             envDefault:""`
	DB                 int           `env:"DB"                   envDefault:"0"`
	KeyPrefix          string        `env:"KEY_PREFIX"           envDefault:"console:"`
	DialTimeout        time.Duration `env:"DIAL_TIMEOUT"         envDefault:"5s"`
	SentinelNodes      []string      `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string        `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string        `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool          `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string      `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool          `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize trims node lists and keeps the DB index at 0 for clusters, which
// have no numbered databases.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelNodes = trimList(c.SentinelNodes)
	c.ClusterNodes = trimList(c.ClusterNodes)
	if c.DB < 0 || c.UseCluster {
		c.DB = 0
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultRedisDialTimeout
	}
}

func trimList(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
