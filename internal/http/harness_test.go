package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/mocks"
	"github.com/Rushil0704/auth-client-1/internal/mocks/memory"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
)

const testCSRFToken = "test-csrf-token"

// testApp is the full router backed by in-memory stores and a mocked remote API.
type testApp struct {
	Handler   http.Handler
	API       *mocks.MockAPIClient
	Remote    *mocks.MockSessionAPI
	Sessions  *memory.SessionStore
	Transient *memory.TransientStore
	Objects   *memory.ObjectStore
	Live      *sessioncache.Registry
	Service   *service.SessionService

	sid string
}

// newTestApp builds the router. Options adjust RouterServices before it is built.
func newTestApp(t *testing.T, opts ...func(*RouterServices)) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPIClient(ctrl)
	remote := mocks.NewMockSessionAPI(ctrl)
	api.EXPECT().ForSession(gomock.Any()).Return(remote).AnyTimes()

	logger := slog.New(slog.DiscardHandler)
	sessionStore := memory.NewSessionStore()
	transient := memory.NewTransientStore()
	objects := memory.NewObjectStore()

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Stores: service.SessionStores{Sessions: sessionStore, Transient: transient},
		API:    api,
		Config: service.SessionConfig{TTL: time.Hour, Logger: logger},
	})
	live := sessioncache.New(time.Minute)
	sessions.OnClear(live.Evict)
	t.Cleanup(live.Flush)

	rs := RouterServices{
		Sessions:   sessions,
		Accounts:   service.NewAccountService(service.AccountServiceOptions{Sessions: sessions, Logger: logger}),
		Users:      service.NewUserService(sessions),
		Categories: service.NewCategoryService(sessions),
		Flashes:    service.NewFlashes(transient, time.Minute, nil),
		Limiter:    service.NewLoginLimiter(600, 100),
		Live:       live,
		Lists:      ListSettings{PageSize: 10, Debounce: time.Millisecond},
		Uploads:    UploadSettings{Objects: objects, Transient: transient},
		Session:    SessionConfig{TTL: time.Hour},
		Logger:     logger,
	}
	for _, opt := range opts {
		opt(&rs)
	}

	handler, err := NewRouter(rs)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	return &testApp{
		Handler:   handler,
		API:       api,
		Remote:    remote,
		Sessions:  sessionStore,
		Transient: transient,
		Objects:   objects,
		Live:      live,
		Service:   sessions,
		sid:       sessions.NewSessionID(),
	}
}

// signIn stores an authenticated session for identity and makes the remote
// API confirm it on full page loads.
func (a *testApp) signIn(t *testing.T, identity domainauth.Identity) {
	t.Helper()
	err := a.Sessions.Save(t.Context(), domainauth.Session{
		ID:        a.sid,
		Token:     "token-" + identity.ID,
		Identity:  &identity,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("save session: %v", err)
	}
	a.Remote.EXPECT().CurrentUser(gomock.Any()).Return(identity, nil).AnyTimes()
}

// requestOption tweaks a test request.
type requestOption func(*http.Request)

// asHTMX marks the request as an htmx request, optionally aimed at target.
func asHTMX(target string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Hx-Request", "true")
		if target != "" {
			r.Header.Set("Hx-Target", target)
		}
	}
}

// withoutCSRF drops the CSRF header so the double-submit check fails.
func withoutCSRF() requestOption {
	return func(r *http.Request) { r.Header.Del(DefaultCSRFHeaderName) }
}

// do sends a browser request carrying the app's session and CSRF cookies.
func (a *testApp) do(t *testing.T, method, target string, form url.Values, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "Mozilla/5.0 (test)")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: a.sid})
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	return rec
}

// parseHTML parses a recorded response body.
func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// testAdmin and testUser are the identities most handler tests sign in as.
//
//nolint:gochecknoglobals // shared read-only fixtures
var (
	testAdmin = domainauth.Identity{
		ID: "admin-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: domainauth.RoleAdmin,
	}
	testUser = domainauth.Identity{
		ID: "user-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Role: domainauth.RoleUser,
	}
)
