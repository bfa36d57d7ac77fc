package service

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per browser session with a token bucket.
// Idle buckets expire from the cache so abandoned sessions do not accumulate.
type LoginLimiter struct {
	limit   rate.Limit
	burst   int
	buckets *cache.Cache
}

// NewLoginLimiter allows perMinute attempts with the given burst.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		buckets: cache.New(10*time.Minute, 5*time.Minute),
	}
}

// Allow reports whether another attempt may be made for key now.
func (l *LoginLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *LoginLimiter) bucket(key string) *rate.Limiter {
	if v, ok := l.buckets.Get(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			l.buckets.SetDefault(key, lim)
			return lim
		}
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
		// Lost a race with a concurrent attempt; use the winner's bucket.
		if v, ok := l.buckets.Get(key); ok {
			if existing, ok := v.(*rate.Limiter); ok {
				return existing
			}
		}
	}
	return lim
}

// Reset forgets the bucket for key, e.g. after a successful login.
func (l *LoginLimiter) Reset(key string) {
	l.buckets.Delete(key)
}
