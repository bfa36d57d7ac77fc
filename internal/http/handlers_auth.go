package httpx

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	"github.com/Rushil0704/auth-client-1/internal/service"
)

// sessionCookieParams describes the session id cookie.
type sessionCookieParams struct {
	Value  string
	Domain string
	TTL    time.Duration
}

// setSessionCookie writes the session id cookie. A zero TTL makes it a browser-session cookie.
func setSessionCookie(w http.ResponseWriter, r *http.Request, p sessionCookieParams) {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    p.Value,
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if p.TTL > 0 {
		c.MaxAge = int(p.TTL.Seconds())
		c.Expires = time.Now().Add(p.TTL).UTC()
	}
	http.SetCookie(w, c)
}

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta          = PageMeta{Title: "Login", PageTitle: "Login", CurrentPage: PageLogin}
	signupMeta         = PageMeta{Title: "Sign Up", PageTitle: "Create account", CurrentPage: PageSignup}
	forgotPasswordMeta = PageMeta{Title: "Forgot Password", PageTitle: "Forgot password", CurrentPage: PageForgotPassword}
)

// LoginPage renders the sign-in form. ?focus=email autofocuses the email field.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: loginMeta,
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Form"] = forms.Login{}
			data["Focus"] = r.URL.Query().Get("focus")
			return nil
		},
	})
}

// LoginSubmit exchanges the posted credentials for a session.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	key := loginThrottleKey(r)
	HandleForm(FormHandlerOpts[forms.Login]{
		W: w,
		R: r,
		Submit: func(ctx context.Context, sid string, f forms.Login) (service.Result, error) {
			if h.Limiter != nil && !h.Limiter.Allow(key) {
				h.logger().WarnContext(ctx, "login throttled", "client", key)
				return service.Result{}, apperrors.Validation(service.MsgLoginThrottled)
			}
			if _, err := h.Sessions.Login(ctx, sid, f.Email, f.Password); err != nil {
				return service.Result{}, err
			}
			if h.Limiter != nil {
				h.Limiter.Reset(key)
			}
			return service.Result{Redirect: "/dashboard"}, nil
		},
		Renderer:  h.renderDashboardPage,
		PageMeta:  loginMeta,
		Validator: h.validator(),
	})
}

// loginThrottleKey identifies the client for login rate limiting.
func loginThrottleKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SignupPage renders the registration form.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: signupMeta,
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Form"] = forms.Signup{}
			return nil
		},
	})
}

// SignupSubmit registers a new account and sends the browser to the login page.
func (h *UIHandlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[forms.Signup]{
		W: w,
		R: r,
		Submit: func(ctx context.Context, _ string, f forms.Signup) (service.Result, error) {
			return h.Accounts.Signup(ctx, f.Request())
		},
		Renderer:  h.renderDashboardPage,
		PageMeta:  signupMeta,
		Validator: h.validator(),
		Flash:     h.flash,
	})
}

// Logout clears the session and returns to the login page.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sid := SessionIDFromContext(r.Context())
	if err := h.Sessions.Clear(r.Context(), sid); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	redirectToLogin(w, r)
}

// ForgotPasswordPage is a static placeholder page.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: forgotPasswordMeta})
}

// sessionExpired handles a 401 from the API mid-session: the session is
// dropped and the browser goes back to the login page with a notice.
func (h *UIHandlers) sessionExpired(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := SessionIDFromContext(ctx)
	if err := h.Sessions.Clear(ctx, sid); err != nil {
		h.logger().WarnContext(ctx, "clear expired session failed", "error", err)
	}
	h.flash(r, service.MsgSessionExpired, service.FlashInfo)
	redirectToLogin(w, r)
}
