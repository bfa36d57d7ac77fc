package httpx

import (
	"net/http"

	"github.com/Rushil0704/auth-client-1/internal/theme"
)

// ThemeToggle flips the light/dark preference. POST /theme/toggle.
// htmx callers get the new theme as a client event; the page swaps its
// root class without a reload. Others are sent back where they came from.
func (h *UIHandlers) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	store := h.Theme
	if store == nil {
		store = theme.NewStore("", isSecureRequest(r))
	}
	next := store.Toggle(w, r)
	h.Metrics.ObserveThemeToggle(string(next))

	if IsHTMX(r) {
		HTMX(w).Trigger("theme:changed", map[string]string{"theme": string(next)})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	back := safeRedirectFromURL(r.Referer())
	if back == "" {
		back = "/dashboard"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
