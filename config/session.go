package config

import "time"

// SessionConfig controls session lifetimes and the per-browser list controllers.
type SessionConfig struct {
	// TTL is used when the API token carries no readable expiry.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// TransientTTL bounds flash messages and upload scratch data.
	TransientTTL time.Duration `env:"SESSION_TRANSIENT_TTL" envDefault:"1h"`

	// LiveIdleTTL evicts list controllers and upload flows after inactivity.
	LiveIdleTTL time.Duration `env:"SESSION_LIVE_IDLE_TTL" envDefault:"15m"`

	// Debounce is the quiet period before a search/filter change triggers a fetch.
	Debounce time.Duration `env:"LIST_DEBOUNCE" envDefault:"300ms"`
}

// Sanitize applies lower bounds to durations.
func (c *SessionConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 24 * time.Hour
	}
	if c.TransientTTL <= 0 {
		c.TransientTTL = time.Hour
	}
	if c.LiveIdleTTL <= 0 {
		c.LiveIdleTTL = 15 * time.Minute
	}
	if c.Debounce <= 0 {
		c.Debounce = 300 * time.Millisecond
	}
}

// RateLimitConfig throttles POST /login per browser session.
type RateLimitConfig struct {
	LoginPerMinute int `env:"LOGIN_ATTEMPTS_PER_MINUTE" envDefault:"10"`
	LoginBurst     int `env:"LOGIN_BURST"               envDefault:"5"`
}

// Sanitize keeps the limiter usable; a zero rate would lock everyone out.
func (c *RateLimitConfig) Sanitize() {
	if c.LoginPerMinute <= 0 {
		c.LoginPerMinute = 10
	}
	if c.LoginBurst <= 0 {
		c.LoginBurst = 1
	}
}
