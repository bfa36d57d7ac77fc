package httpx

import (
	"context"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
)

// Unexported context key types avoid collisions across packages.
type (
	sessionIDKey struct{}
	identityKey  struct{}
)

// SetSessionIDInContext returns a child context carrying the browser session id.
func SetSessionIDInContext(ctx context.Context, sid string) context.Context {
	if sid == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

// SessionIDFromContext returns the browser session id, or "" when the
// session middleware did not run.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}

// SetIdentityInContext returns a child context that carries the signed-in identity.
// If identity is nil, the original ctx is returned unchanged.
func SetIdentityInContext(ctx context.Context, identity *domainauth.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity and a boolean indicating presence.
func IdentityFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	if id, ok := ctx.Value(identityKey{}).(*domainauth.Identity); ok && id != nil {
		return id, true
	}
	return nil, false
}

// IsGuestUser reports whether the request carries no signed-in identity.
func IsGuestUser(ctx context.Context) bool {
	_, ok := IdentityFromContext(ctx)
	return !ok
}
