// Package sessioncache keeps per-browser-session objects (live list
// controllers, upload flows) in process memory with an idle expiry.
package sessioncache

import (
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Closer is implemented by values that hold timers or goroutines.
type Closer interface {
	Close()
}

// Registry maps (session id, name) to a value. Entries expire after idleTTL
// without access and are closed when they expire or are evicted.
type Registry struct {
	mu    sync.Mutex
	items *cache.Cache
	ttl   time.Duration
}

// New creates a Registry. A non-positive idleTTL defaults to 15 minutes.
func New(idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = 15 * time.Minute
	}
	c := cache.New(idleTTL, idleTTL/2)
	c.OnEvicted(func(_ string, v any) {
		if cl, ok := v.(Closer); ok {
			cl.Close()
		}
	})
	return &Registry{items: c, ttl: idleTTL}
}

func key(sid, name string) string { return sid + "|" + name }

// GetOrCreate returns the value stored for (sid, name), building it on first use.
// Every call refreshes the idle expiry.
func GetOrCreate[V any](r *Registry, sid, name string, build func() V) V {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(sid, name)
	if v, ok := r.items.Get(k); ok {
		if typed, ok := v.(V); ok {
			r.items.SetDefault(k, typed)
			return typed
		}
	}
	v := build()
	r.items.SetDefault(k, v)
	return v
}

// Lookup returns the value stored for (sid, name) without creating it.
func Lookup[V any](r *Registry, sid, name string) (V, bool) {
	var zero V
	v, ok := r.items.Get(key(sid, name))
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	return typed, ok
}

// Remove evicts one entry.
func (r *Registry) Remove(sid, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Delete(key(sid, name))
}

// Evict drops every entry of a session. Used on logout.
func (r *Registry) Evict(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := sid + "|"
	for k := range r.items.Items() {
		if strings.HasPrefix(k, prefix) {
			r.items.Delete(k)
		}
	}
}

// Len returns the number of live entries.
func (r *Registry) Len() int { return r.items.ItemCount() }

// Flush closes and drops all entries.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.items.Items() {
		r.items.Delete(k)
	}
}
