package httpx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	console "github.com/Rushil0704/auth-client-1"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	httpassets "github.com/Rushil0704/auth-client-1/internal/http/assets"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
	"github.com/Rushil0704/auth-client-1/internal/theme"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions   *service.SessionService // Required
	Accounts   AccountsService         // Required
	Users      UsersService            // Required
	Categories CategoriesService       // Required
	Flashes    *service.Flashes
	Limiter    *service.LoginLimiter
	// Live holds per-session list controllers and upload flows.
	Live    *sessioncache.Registry
	Lists   ListSettings
	Uploads UploadSettings
	Theme   *theme.Store
	Session SessionConfig
	// Health checks reported by /healthz, keyed by dependency name. Optional.
	Health map[string]HealthChecker
	// Metrics collectors and the gatherer served on MetricsPath. A nil
	// Gatherer disables the endpoint.
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsPath string
	// Compression of HTML/CSS/JS responses. A zero Level disables it.
	Compression CompressionConfig
	// Configuration
	IsDev  bool         // Development mode flag for hot reloading, etc.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP handler: infrastructure routes
// (health, metrics, static) outside the session layer and every browser
// screen behind it.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := frontendFS(services.IsDev)
	if err != nil {
		return nil, err
	}
	ui, err := setupUIHandlers(services, templateFS, staticFS)
	if err != nil {
		return nil, err
	}

	app := http.NewServeMux()
	registerUIRoutes(app, ui, AuthGuard{Sessions: services.Sessions, Flashes: services.Flashes})

	themes := services.Theme
	if themes == nil {
		themes = theme.NewStore(services.Session.CookieDomain, false)
	}
	var appHandler http.Handler = BrowserDetection()(app)
	appHandler = Session(services.Sessions, services.Session)(appHandler)
	appHandler = CSRFProtection(CSRFConfig{CookieDomain: services.Session.CookieDomain, Logger: logger})(appHandler)
	appHandler = themes.Middleware(appHandler)

	root := http.NewServeMux()
	health := healthHandler(services.Health)
	root.Handle("GET /healthz", health)
	root.Handle("HEAD /healthz", health)
	root.Handle("GET /static/", staticHandler(staticFS))
	if services.Gatherer != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		root.Handle("GET "+path, promhttp.HandlerFor(services.Gatherer, promhttp.HandlerOpts{}))
	}
	root.Handle("/", appHandler)

	var handler http.Handler = root
	if services.Compression.Level != 0 {
		cc := services.Compression
		if cc.Logger == nil {
			cc.Logger = logger
		}
		handler = Compression(cc)(handler)
	}
	handler = Logging(logger, services.Metrics)(handler)
	return Recover(logger)(handler), nil
}

// frontendFS picks the template and static filesystems: from disk in dev mode
// for hot reloading, embedded otherwise.
func frontendFS(isDev bool) (fs.FS, fs.FS, error) {
	if isDev {
		return os.DirFS(TemplatePathFromRoot), os.DirFS(StaticPathFromRoot), nil
	}
	templateFS, err := fs.Sub(console.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("templates sub-filesystem: %w", err)
	}
	staticFS, err := fs.Sub(console.StaticFS, StaticPathFromRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("static sub-filesystem: %w", err)
	}
	return templateFS, staticFS, nil
}

// setupUIHandlers creates UI handlers with template renderer and asset resolver.
func setupUIHandlers(services RouterServices, templateFS, staticFS fs.FS) (*UIHandlers, error) {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    templateFS,
		Resolver:      NewAssetResolver(staticFS, services.IsDev),
		CriticalCSSFS: staticFS,
		DevMode:       services.IsDev,
		Logger:        services.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	return &UIHandlers{
		T:          tr,
		Sessions:   services.Sessions,
		Accounts:   services.Accounts,
		Users:      services.Users,
		Categories: services.Categories,
		Flashes:    services.Flashes,
		Limiter:    services.Limiter,
		Forms:      forms.Default(),
		Live:       services.Live,
		Lists:      services.Lists,
		Uploads:    services.Uploads,
		Theme:      services.Theme,
		Metrics:    services.Metrics,
		IsDev:      services.IsDev,
		Logger:     services.Logger,
	}, nil
}

// staticHandler serves /static/*. Requests carrying the content-hash query
// written by the asset resolver are cached for a year; anything else must revalidate.
func staticHandler(staticFS fs.FS) http.Handler {
	files := http.StripPrefix(httpassets.Prefix, http.FileServer(http.FS(staticFS)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	registerUIAuthRoutes(mux, h, guard)
	registerUIAccountRoutes(mux, h, guard)
	registerUIUsersRoutes(mux, h, guard)
	registerUICategoriesRoutes(mux, h, guard)
	registerUIUploadRoutes(mux, h, guard)

	auth := guard.RequireAuthBrowser
	mux.Handle("GET /{$}", http.HandlerFunc(h.Index))
	mux.Handle("GET /dashboard", auth(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /ws/{resource}", auth(http.HandlerFunc(h.LiveTable)))
	mux.HandleFunc("POST /theme/toggle", h.ThemeToggle)
	mux.HandleFunc("POST /validate/{form}/{field}", h.ValidateField)
	mux.HandleFunc("/", h.NotFound)
}

// registerUIAuthRoutes wires the guest pages and logout.
func registerUIAuthRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	guest := guard.GuestOnly
	mux.Handle("GET /login", guest(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", guest(http.HandlerFunc(h.LoginSubmit)))
	mux.Handle("GET /signup", guest(http.HandlerFunc(h.SignupPage)))
	mux.Handle("POST /signup", guest(http.HandlerFunc(h.SignupSubmit)))
	mux.HandleFunc("GET /forgot-password", h.ForgotPasswordPage)
	mux.HandleFunc("POST /logout", h.Logout)
}

// registerUIAccountRoutes wires the signed-in user's own account pages.
func registerUIAccountRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	auth := guard.RequireAuthBrowser
	mux.Handle("GET /edit-account", auth(http.HandlerFunc(h.EditAccountPage)))
	mux.Handle("POST /edit-account", auth(http.HandlerFunc(h.EditAccountSubmit)))
	mux.Handle("GET /change-password", auth(http.HandlerFunc(h.ChangePasswordPage)))
	mux.Handle("POST /change-password", auth(http.HandlerFunc(h.ChangePasswordSubmit)))
	mux.Handle("POST /account/delete", auth(http.HandlerFunc(h.AccountDelete)))
}

// registerUIUsersRoutes wires the users list and the admin edit form.
// Row permissions are checked per row by the handlers.
func registerUIUsersRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	auth := guard.RequireAuthBrowser
	mux.Handle("GET /users-list", auth(http.HandlerFunc(h.UsersList)))
	mux.Handle("POST /users-list/{id}/delete", auth(http.HandlerFunc(h.UserDeleteRequest)))
	mux.Handle("POST /users-list/delete/confirm", auth(http.HandlerFunc(h.UserDeleteConfirm)))
	mux.Handle("POST /users-list/delete/cancel", auth(http.HandlerFunc(h.UserDeleteCancel)))
	mux.Handle("GET /user-edit/{id}", auth(http.HandlerFunc(h.UserEditPage)))
	mux.Handle("POST /user-edit/{id}", auth(http.HandlerFunc(h.UserEditSubmit)))
}

func registerUICategoriesRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	auth := guard.RequireAuthBrowser
	mux.Handle("GET /categories-list", auth(http.HandlerFunc(h.CategoriesList)))
	mux.Handle("POST /categories-list/{id}/delete", auth(http.HandlerFunc(h.CategoryDeleteRequest)))
	mux.Handle("POST /categories-list/delete/confirm", auth(http.HandlerFunc(h.CategoryDeleteConfirm)))
	mux.Handle("POST /categories-list/delete/cancel", auth(http.HandlerFunc(h.CategoryDeleteCancel)))
	mux.Handle("GET /create-category", auth(http.HandlerFunc(h.CategoryCreatePage)))
	mux.Handle("POST /create-category", auth(http.HandlerFunc(h.CategoryCreateSubmit)))
	mux.Handle("GET /category-edit/{id}", auth(http.HandlerFunc(h.CategoryEditPage)))
	mux.Handle("POST /category-edit/{id}", auth(http.HandlerFunc(h.CategoryEditSubmit)))
}

func registerUIUploadRoutes(mux *http.ServeMux, h *UIHandlers, guard AuthGuard) {
	auth := guard.RequireAuthBrowser
	mux.Handle("GET /image-upload", auth(http.HandlerFunc(h.ImageUploadPage)))
	mux.Handle("POST /image-upload/select", auth(http.HandlerFunc(h.UploadSelect)))
	mux.Handle("POST /image-upload/crop", auth(http.HandlerFunc(h.UploadCrop)))
	mux.Handle("POST /image-upload/start", auth(http.HandlerFunc(h.UploadStart)))
	mux.Handle("POST /image-upload/clear", auth(http.HandlerFunc(h.UploadClear)))
	mux.Handle("GET /image-upload/status", auth(http.HandlerFunc(h.UploadStatus)))
	mux.Handle("GET /image-upload/preview/{id}", auth(http.HandlerFunc(h.UploadPreview)))
}
