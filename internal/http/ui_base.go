package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/listing"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/ports"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
	"github.com/Rushil0704/auth-client-1/internal/theme"
	"github.com/Rushil0704/auth-client-1/internal/upload"
)

const (
	errMsgFixBelow = "Please fix the errors below."

	// toastErrorKey holds an error message the page shows as a toast.
	toastErrorKey = "ToastError"
)

// AccountsService is the signed-in user's own account surface.
type AccountsService interface {
	Signup(ctx context.Context, req model.RegisterRequest) (service.Result, error)
	Profile(ctx context.Context, sid string) (model.User, error)
	UpdateProfile(ctx context.Context, sid string, req model.UpdateProfileRequest) (service.Result, error)
	ChangePassword(ctx context.Context, sid string, req model.ChangePasswordRequest) (service.Result, error)
	DeleteAccount(ctx context.Context, sid string) (service.Result, error)
}

// UsersService is a minimal interface for the users screens.
type UsersService interface {
	List(ctx context.Context, sid string, q model.ListQuery) (model.ListPage[model.User], error)
	Get(ctx context.Context, sid, id string) (model.User, error)
	Delete(ctx context.Context, sid, id string) error
	Update(
		ctx context.Context,
		sid string,
		viewer domainauth.Identity,
		target model.User,
		req model.UpdateProfileRequest,
	) (service.Result, error)
}

// CategoriesService is a minimal interface for the categories screens.
type CategoriesService interface {
	List(ctx context.Context, sid string, q model.ListQuery) (model.ListPage[model.Category], error)
	Get(ctx context.Context, sid, id string) (model.Category, error)
	Delete(ctx context.Context, sid, id string) error
	Create(ctx context.Context, sid string, req model.CategoryRequest) (service.Result, error)
	Update(ctx context.Context, sid, id string, req model.CategoryRequest) (service.Result, error)
}

var (
	_ AccountsService   = (*service.AccountService)(nil)
	_ UsersService      = (*service.UserService)(nil)
	_ CategoriesService = (*service.CategoryService)(nil)
)

// ListSettings tunes the per-session list controllers.
type ListSettings struct {
	PageSize int
	Debounce time.Duration // 0 uses listing.DefaultDebounce
	Clock    listing.Clock
}

// UploadSettings wires the image upload screen. Objects may be nil when
// object storage is not configured; the screen then reports it as unavailable.
type UploadSettings struct {
	Objects   ports.ObjectStore
	Transient ports.TransientStore
	Config    upload.Config
}

// UIHandlers serves the console's pages, fragments and live tables.
type UIHandlers struct {
	T          *TemplateRenderer
	Sessions   *service.SessionService
	Accounts   AccountsService
	Users      UsersService
	Categories CategoriesService
	Flashes    *service.Flashes
	Limiter    *service.LoginLimiter
	Forms      *forms.Validator
	Live       *sessioncache.Registry
	Lists      ListSettings
	Uploads    UploadSettings
	Theme      *theme.Store
	Metrics    *metrics.Metrics
	IsDev      bool // Development mode flag for enhanced error reporting
	Logger     *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h == nil || h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func (h *UIHandlers) validator() *forms.Validator {
	if h.Forms != nil {
		return h.Forms
	}
	return forms.Default()
}

// triggerToast asks the page to show a toast via the showToast htmx event.
func triggerToast(w http.ResponseWriter, message, kind string) {
	message = strings.TrimSpace(message)
	if w == nil || message == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{"message": message, "type": kind})
}

// flash queues a toast for the next rendered page.
func (h *UIHandlers) flash(r *http.Request, message, kind string) {
	if h.Flashes == nil || strings.TrimSpace(message) == "" {
		return
	}
	sid := SessionIDFromContext(r.Context())
	if sid == "" {
		return
	}
	if err := h.Flashes.Push(r.Context(), sid, service.Flash{Message: message, Type: kind}); err != nil {
		h.logger().WarnContext(r.Context(), "failed to queue flash", "error", err)
	}
}

// popToasts drains the flash queue of the current session.
func (h *UIHandlers) popToasts(r *http.Request) []viewmodel.Toast {
	if h == nil || h.Flashes == nil {
		return nil
	}
	sid := SessionIDFromContext(r.Context())
	if sid == "" {
		return nil
	}
	flashes, err := h.Flashes.Pop(r.Context(), sid)
	if err != nil {
		h.logger().WarnContext(r.Context(), "failed to read flashes", "error", err)
		return nil
	}
	toasts := make([]viewmodel.Toast, 0, len(flashes))
	for _, f := range flashes {
		toasts = append(toasts, viewmodel.Toast{Message: f.Message, Type: f.Type})
	}
	return toasts
}
