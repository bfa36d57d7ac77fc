package httpx

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/http/uiutil"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/theme"
)

// PageMeta names a page: the document title, the header title and the
// navigation key that selects its content template.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	ctx := r.Context()
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Theme:       string(theme.FromContext(ctx)),
	}
	if id, ok := IdentityFromContext(ctx); ok {
		layout.IsAuthenticated = true
		layout.IsAdmin = id.IsAdmin()
		layout.User = &viewmodel.User{
			ID:       id.ID,
			Name:     id.DisplayName(),
			Email:    id.Email,
			Role:     string(id.Role),
			Initials: uiutil.Initials(id.FirstName, id.LastName),
		}
	}
	return layout
}

// basePageData flattens the layout into the map every page template reads.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	l := buildLayout(r, meta)
	data := map[string]any{
		"Title":           l.Title,
		"PageTitle":       l.PageTitle,
		"CurrentPage":     l.CurrentPage,
		"Theme":           l.Theme,
		"IsAuthenticated": l.IsAuthenticated,
		"IsAdmin":         l.IsAdmin,
		"Errors":          map[string]string{},
	}
	if l.CSRFToken != "" {
		data["CSRFToken"] = l.CSRFToken
	}
	if l.User != nil {
		data["User"] = l.User
	}
	return data
}

// PageSpec is a read-only page: its meta and an optional loader that adds
// the page's own data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page renders a PageSpec. A failed Fetch still renders the page, with the error
// in the alert box and as a toast.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "page fetch failed", "page", spec.Meta.CurrentPage, "error", err)
			markPageError(data, err)
		}
	}
	h.renderDashboardPage(w, r, data)
}

func markPageError(data map[string]any, err error) {
	msg, _ := data["ErrorMessage"].(string)
	if msg == "" {
		msg = messageFor(err)
	}
	if msg == "" {
		msg = "An unexpected error occurred. Please try again."
	}
	data["Error"] = true
	data["ErrorMessage"] = msg
	data[toastErrorKey] = msg
}

// renderDashboardPage renders the whole layout for navigations and only the
// content area for htmx swaps. Partial responses also carry the document
// title, the header title and pending toasts as out-of-band swaps.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	toasts := h.popToasts(r)
	if msg, _ := data[toastErrorKey].(string); msg != "" {
		toasts = append(toasts, viewmodel.Toast{Message: msg, Type: service.FlashError})
	}
	data["Toasts"] = toasts

	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	current, _ := data["CurrentPage"].(string)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	HTMX(w).Trigger("nav:activate", map[string]string{"path": r.URL.Path})
	if _, err := fmt.Fprintf(w,
		`<title>%s</title><h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">%s</h1>`,
		html.EscapeString(title), html.EscapeString(pageTitle)); err != nil {
		h.logger().WarnContext(r.Context(), "write partial titles", "error", err)
		return
	}
	if len(toasts) > 0 {
		if err := h.T.Execute(w, "toasts-oob", data); err != nil {
			h.logger().WarnContext(r.Context(), "write partial toasts", "error", err)
		}
	}
	if err := h.T.Execute(w, ContentTemplateFor(current), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// logAndRenderTemplateError reports a render failure. Dev builds show the
// template error in the page.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, stage string) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"stage", stage, "method", r.Method, "path", r.URL.Path, "error", err)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, `<div class="dev-error"><h2>Template rendering error</h2><p>%s at %s</p><pre>%s</pre></div>`,
		html.EscapeString(stage), html.EscapeString(r.URL.Path), html.EscapeString(err.Error()))
}
