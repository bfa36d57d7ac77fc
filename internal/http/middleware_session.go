package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rushil0704/auth-client-1/internal/service"
)

const (
	// SessionCookieName carries the opaque browser session id.
	SessionCookieName = "session_id"

	loginPath = "/login?focus=email"
)

// SessionConfig configures the browser session cookie.
type SessionConfig struct {
	CookieDomain string
	TTL          time.Duration
}

// Session returns a middleware that makes sure every browser carries a session
// id cookie and resolves the signed-in identity, if any, into the context.
// It never calls the remote API; RequireAuthBrowser does that on full page loads.
func Session(sessions *service.SessionService, cfg SessionConfig) func(http.Handler) http.Handler {
	if sessions == nil {
		panic("SessionService is required")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionIDFromCookie(r)
			if sid == "" {
				sid = sessions.NewSessionID()
				setSessionCookie(w, r, sessionCookieParams{
					Value:  sid,
					Domain: cfg.CookieDomain,
					TTL:    cfg.TTL,
				})
			}

			ctx := SetSessionIDInContext(r.Context(), sid)
			if identity, ok := sessions.Current(ctx, sid); ok {
				ctx = SetIdentityInContext(ctx, identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionIDFromCookie returns the cookie value when it is a well-formed id.
func sessionIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// AuthGuard holds what the browser auth middlewares need.
type AuthGuard struct {
	Sessions *service.SessionService
	Flashes  *service.Flashes
}

// RequireAuthBrowser only lets signed-in browsers through. Full page loads
// re-validate the stored token against the API; htmx requests trust the
// stored identity. Anyone else is sent to the login page, with the expiry
// notice queued when a previous identity was dropped.
func (g AuthGuard) RequireAuthBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := SessionIDFromContext(ctx)

		identity, ok := IdentityFromContext(ctx)
		if !IsHTMX(r) && r.Method == http.MethodGet {
			res, err := g.Sessions.Refresh(ctx, sid)
			if err != nil || res.Identity == nil {
				if res.Notice != "" && g.Flashes != nil {
					_ = g.Flashes.Push(ctx, sid, service.Flash{Message: res.Notice, Type: service.FlashInfo})
				}
				redirectToLogin(w, r)
				return
			}
			identity, ok = res.Identity, true
		}
		if !ok {
			redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetIdentityInContext(ctx, identity)))
	})
}

// GuestOnly sends signed-in browsers away from the login and signup pages.
func (g AuthGuard) GuestOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); ok && r.Method == http.MethodGet {
			redirectBrowser(w, r, "/dashboard")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectToLogin redirects browser requests to the login page with the email field focused.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectBrowser(w, r, loginPath)
}

// redirectBrowser navigates the browser, using HX-Redirect for htmx requests.
func redirectBrowser(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirectFromURL keeps redirects inside the app by reducing absolute URLs to their path.
func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath accepts only absolute in-app paths.
func safeRedirectPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return ""
	}
	return p
}
