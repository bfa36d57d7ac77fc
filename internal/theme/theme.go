// Package theme holds the light/dark preference. There is one store for the
// whole process; the value itself lives in a browser cookie.
package theme

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Theme is a colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// CookieName is the cookie that persists the preference.
const CookieName = "theme"

// Parse returns Dark for "dark" and Light for anything else.
func Parse(s string) Theme {
	if Theme(s) == Dark {
		return Dark
	}
	return Light
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == Dark }

// Store reads and writes the theme cookie and notifies listeners on changes.
type Store struct {
	domain string
	secure bool

	mu        sync.RWMutex
	listeners []func(Theme)
}

// NewStore creates a Store. domain may be empty for host-only cookies.
func NewStore(domain string, secure bool) *Store {
	return &Store{domain: domain, secure: secure}
}

// Subscribe registers fn to be called after every toggle.
func (s *Store) Subscribe(fn func(Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Read returns the request's theme, Light when the cookie is absent.
func (s *Store) Read(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Light
	}
	return Parse(c.Value)
}

// Write persists t on the response.
func (s *Store) Write(w http.ResponseWriter, t Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		Domain:   s.domain,
		Expires:  time.Now().AddDate(1, 0, 0),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}

// Toggle flips the request's theme, persists it and notifies listeners.
func (s *Store) Toggle(w http.ResponseWriter, r *http.Request) Theme {
	next := s.Read(r).Toggled()
	s.Write(w, next)

	s.mu.RLock()
	fns := append([]func(Theme){}, s.listeners...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(next)
	}
	return next
}

type ctxKey struct{}

// WithTheme stores t in ctx.
func WithTheme(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the theme stored in ctx, or Light.
func FromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(ctxKey{}).(Theme); ok {
		return t
	}
	return Light
}

// Middleware resolves the theme once per request so every template sees the same value.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithTheme(r.Context(), s.Read(r))))
	})
}
