package httpx

import (
	"context"
	"net/http"

	"github.com/Rushil0704/auth-client-1/internal/dashboard"
)

//nolint:gochecknoglobals // static page metadata
var dashboardMeta = PageMeta{Title: "Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard}

// Index sends the root path to the dashboard.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard renders the metrics page. The EBITDA series is regenerated on every load.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: dashboardMeta,
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Dashboard"] = dashboard.Generate(nil)
			return nil
		},
	})
}
