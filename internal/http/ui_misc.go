package httpx

import (
	"net/http"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For other clients, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
	} else {
		h.renderAPINotFound(w, r)
	}
}

// renderBrowserNotFound renders an HTML 404 page with auth-aware content.
func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	_, isAuthenticated := IdentityFromContext(r.Context())

	data := basePageData(r, PageMeta{Title: "Page Not Found"})
	data["Code"] = "404"
	data["Message"] = "The page you're looking for doesn't exist."
	data["IsAuthenticated"] = isAuthenticated
	data["ShowLogin"] = !isAuthenticated

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil {
		_, _ = w.Write([]byte("Page not found"))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
	}
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, apperrors.NotFound("not found"))
}
