package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	hxRequest        = "Hx-Request"
	hxHistoryRestore = "Hx-History-Restore-Request"
	hxTarget         = "Hx-Target"
	hxRedirect       = "Hx-Redirect"
	hxTrigger        = "Hx-Trigger"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequest), "true")
}

// IsHistoryRestore reports whether htmx is re-fetching a page missing from its history cache.
func IsHistoryRestore(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxHistoryRestore), "true")
}

// WantsPartial reports whether only the content region should be rendered.
// History restores replace the whole body, so they get the full layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsHistoryRestore(r)
}

// HXTarget returns the id of the element the response will be swapped into.
func HXTarget(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get(hxTarget), "#")
}

// HTMXResponse sets htmx response headers on w.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for setting htmx response headers.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect makes htmx navigate the browser to url and writes 204.
// Nothing else may be written afterwards.
func (h *HTMXResponse) Redirect(url string) {
	h.w.Header().Set(hxRedirect, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger fires a client event after the swap. A nil payload sends true.
// Events already set on the response are kept, so a toast and a navigation
// event can travel together.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	var value any = true
	if payload != nil {
		value = payload
	}
	events := map[string]any{}
	if existing := h.w.Header().Get(hxTrigger); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			// A bare event name.
			events = map[string]any{existing: true}
		}
	}
	events[event] = value

	b, err := json.Marshal(events)
	if err != nil {
		h.w.Header().Set(hxTrigger, event)
		return h
	}
	h.w.Header().Set(hxTrigger, string(b))
	return h
}
