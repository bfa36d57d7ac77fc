package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// User-facing session messages.
const (
	MsgSessionExpired  = "Session expired. Please login again."
	MsgInvalidPassword = "Invalid Password. Please try again."
	MsgInvalidEmail    = "Invalid Email. Please try again."
	MsgNetworkError    = "Network error. Please check your connection."
	MsgLoginFailed     = "Login failed. Please try again later."
	MsgLoginThrottled  = "Too many login attempts. Please wait a moment."
)

const defaultSessionTTL = 24 * time.Hour

// SessionStores groups the persistence used by SessionService.
type SessionStores struct {
	Sessions  ports.SessionStore   // Required: token and identity per browser
	Transient ports.TransientStore // Optional: cleared on logout
}

// SessionConfig tunes SessionService.
type SessionConfig struct {
	// TTL is the session lifetime when the token carries no readable exp claim.
	TTL     time.Duration
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	Now     func() time.Time
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Stores SessionStores
	API    ports.APIClient // Required: remote REST API
	Config SessionConfig
}

// SessionService owns the per-browser session: the bearer token and the identity
// resolved from it. Every screen reads identity through it; only it writes.
type SessionService struct {
	sessions  ports.SessionStore
	transient ports.TransientStore
	api       ports.APIClient
	ttl       time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time

	mu         sync.RWMutex
	clearHooks []func(sid string)
}

// NewSessionService constructs a SessionService. It panics when a required dependency is missing.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Stores.Sessions == nil {
		panic("SessionStore is required")
	}
	if opts.API == nil {
		panic("APIClient is required")
	}

	cfg := opts.Config
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSessionTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SessionService{
		sessions:  opts.Stores.Sessions,
		transient: opts.Stores.Transient,
		api:       opts.API,
		ttl:       cfg.TTL,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.With("component", "session"),
		now:       cfg.Now,
	}
}

// NewSessionID creates an opaque, URL-safe browser session id.
func (s *SessionService) NewSessionID() string {
	return uuid.NewString()
}

// OnClear registers a hook run after a session is cleared. Registries of
// per-session in-process state use it to evict their entries.
func (s *SessionService) OnClear(fn func(sid string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearHooks = append(s.clearHooks, fn)
}

// API returns the authenticated API view for a session.
func (s *SessionService) API(sid string) ports.SessionAPI {
	return s.api.ForSession(sid)
}

// Session returns the stored record, if any.
func (s *SessionService) Session(ctx context.Context, sid string) (domainauth.Session, bool) {
	if sid == "" {
		return domainauth.Session{}, false
	}
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "session lookup failed", "error", err)
		}
		return domainauth.Session{}, false
	}
	return sess, true
}

// Current is the read-only view of the signed-in identity.
func (s *SessionService) Current(ctx context.Context, sid string) (*domainauth.Identity, bool) {
	sess, ok := s.Session(ctx, sid)
	if !ok || !sess.Authenticated() {
		return nil, false
	}
	id := *sess.Identity
	return &id, true
}

// RefreshResult reports the identity after a refresh and an optional notice to show the user.
type RefreshResult struct {
	Identity *domainauth.Identity
	Notice   string
}

// Refresh resolves the identity for the stored token. Without a token the session
// is simply absent. A failed lookup drops the token and identity; the expiry notice
// is only produced when an identity was previously resolved.
func (s *SessionService) Refresh(ctx context.Context, sid string) (RefreshResult, error) {
	sess, ok := s.Session(ctx, sid)
	if !ok || !sess.HasToken() {
		return RefreshResult{}, nil
	}

	identity, err := s.api.ForSession(sid).CurrentUser(ctx)
	if err != nil {
		s.logger.InfoContext(ctx, "identity refresh failed", "error", err)
		hadIdentity := sess.Identity != nil
		if delErr := s.sessions.Delete(ctx, sid); delErr != nil {
			return RefreshResult{}, fmt.Errorf("drop session: %w", delErr)
		}
		if hadIdentity {
			return RefreshResult{Notice: MsgSessionExpired}, nil
		}
		return RefreshResult{}, nil
	}

	sess.Identity = &identity
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return RefreshResult{}, fmt.Errorf("save session: %w", saveErr)
	}
	return RefreshResult{Identity: &identity}, nil
}

// Clear logs the session out: token, identity, transient data and in-process state.
func (s *SessionService) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}

	var errs []error
	if err := s.sessions.Delete(ctx, sid); err != nil {
		errs = append(errs, fmt.Errorf("delete session: %w", err))
	}
	if s.transient != nil {
		if err := s.transient.Clear(ctx, sid); err != nil {
			errs = append(errs, fmt.Errorf("clear transient: %w", err))
		}
	}

	s.mu.RLock()
	hooks := append([]func(string){}, s.clearHooks...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(sid)
	}

	return errors.Join(errs...)
}

// Login exchanges credentials for a token, stores it and resolves the identity.
// Returned errors carry the message to show on the login form.
func (s *SessionService) Login(ctx context.Context, sid, email, password string) (*domainauth.Identity, error) {
	identity, err := s.login(ctx, sid, email, password)
	s.metrics.ObserveLogin(err)
	return identity, err
}

func (s *SessionService) login(ctx context.Context, sid, email, password string) (*domainauth.Identity, error) {
	if sid == "" {
		return nil, apperrors.Internal(MsgLoginFailed)
	}

	resp, err := s.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, apperrors.WithMessage(err, loginMessage(err))
	}
	if resp.Token == "" {
		return nil, apperrors.Internal(MsgLoginFailed)
	}

	sess := domainauth.Session{
		ID:        sid,
		Token:     resp.Token,
		ExpiresAt: s.tokenExpiry(resp.Token),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.WithMessage(err, MsgLoginFailed)
	}

	res, err := s.Refresh(ctx, sid)
	if err != nil {
		return nil, apperrors.WithMessage(err, MsgLoginFailed)
	}
	if res.Identity == nil {
		return nil, apperrors.Internal(MsgLoginFailed)
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", res.Identity.ID, "role", res.Identity.Role)
	return res.Identity, nil
}

// loginMessage maps a login failure to its form message. The API answers 400
// for a wrong password and 401 for an unknown email.
func loginMessage(err error) string {
	switch {
	case apperrors.GetStatus(err) == 400:
		return MsgInvalidPassword
	case apperrors.IsUnauthorized(err):
		return MsgInvalidEmail
	case apperrors.IsNetwork(err), apperrors.IsTimeout(err):
		return MsgNetworkError
	default:
		return MsgLoginFailed
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the console
// is not the token's audience and only uses exp to size the session TTL.
func (s *SessionService) tokenExpiry(token string) time.Time {
	fallback := s.now().Add(s.ttl)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(s.now()) {
		return fallback
	}
	return exp.Time
}
