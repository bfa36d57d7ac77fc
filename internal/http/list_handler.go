package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/listing"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
)

// listTableID is the DOM id of the swappable table region on list screens.
const listTableID = "list-table"

// ListFetcher loads one page of T for session sid.
type ListFetcher[T any] func(ctx context.Context, sid string, q model.ListQuery) (model.ListPage[T], error)

// ListDeleter removes one row for session sid.
type ListDeleter func(ctx context.Context, sid, id string) error

// ListScreen describes one live list screen. T is the row type.
type ListScreen[T any] struct {
	// Resource names the registry entry and the websocket path (e.g. "users").
	Resource string
	// BasePath is the list URL used for pagination links (e.g. "/users-list").
	BasePath string
	// EditPath prefixes row edit links (e.g. "/user-edit").
	EditPath string
	// Filters are the filter choices offered above the table. Optional.
	Filters []string
	// PageMeta contains page metadata for rendering
	PageMeta PageMeta
	Fetch    ListFetcher[T]
	Delete   ListDeleter
	Messages listing.Messages
	// Row decorates an item with the viewer's permissions.
	Row func(viewer domainauth.Identity, item T) viewmodel.Row[T]
	// ID and Label identify a row in the delete confirmation.
	ID    func(T) string
	Label func(T) string
}

// tableTemplate is the fragment that renders the table region.
func (s ListScreen[T]) tableTemplate() string { return s.Resource + "-table" }

// controller returns the session's controller for the screen, creating it on first use.
func (s ListScreen[T]) controller(h *UIHandlers, sid string) *listing.Controller[T] {
	build := func() *listing.Controller[T] {
		return listing.NewController(listing.Options[T]{
			Fetch: func(ctx context.Context, q model.ListQuery) (model.ListPage[T], error) {
				return s.Fetch(ctx, sid, q)
			},
			Delete: func(ctx context.Context, id string) error {
				return s.Delete(ctx, sid, id)
			},
			Config: listing.Config{
				Resource: s.Resource,
				Debounce: h.Lists.Debounce,
				PageSize: h.Lists.PageSize,
				Messages: s.Messages,
				Clock:    h.Lists.Clock,
				Metrics:  h.Metrics,
				Logger:   h.logger(),
			},
		})
	}
	if h.Live == nil {
		return build()
	}
	return sessioncache.GetOrCreate(h.Live, sid, s.Resource, build)
}

// view turns a controller snapshot into the template model.
func (s ListScreen[T]) view(snap listing.Snapshot[T], viewer domainauth.Identity) viewmodel.ListView[T] {
	v := viewmodel.ListView[T]{
		Resource:     s.Resource,
		BasePath:     s.BasePath,
		EditPath:     s.EditPath,
		Pager:        snap.Pager(),
		Search:       snap.Query.Search,
		Filter:       snap.Query.Filter,
		Filters:      s.Filters,
		EmptyMessage: snap.EmptyMessage,
		ErrorMessage: snap.ErrMessage(),
		PendingID:    snap.Pending.TargetID,
	}
	switch snap.Phase {
	case listing.PhaseLoadingFull:
		v.Loading = "full"
	case listing.PhaseLoadingPartial:
		v.Loading = "partial"
	}
	v.Rows = make([]viewmodel.Row[T], 0, len(snap.Page.Items))
	for _, item := range snap.Page.Items {
		v.Rows = append(v.Rows, s.Row(viewer, item))
		if v.PendingID != "" && s.ID(item) == v.PendingID {
			v.PendingLabel = s.Label(item)
		}
	}
	return v
}

// canDelete reports whether the viewer may delete the row id among the shown rows.
func (s ListScreen[T]) canDelete(snap listing.Snapshot[T], viewer domainauth.Identity, id string) bool {
	for _, item := range snap.Page.Items {
		if s.ID(item) == id {
			return s.Row(viewer, item).CanDelete
		}
	}
	return false
}

// queryFromRequest reads page, role and search from the URL.
func queryFromRequest(r *http.Request) model.ListQuery {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return model.ListQuery{
		Page:   page,
		Filter: strings.TrimSpace(q.Get("role")),
		Search: strings.TrimSpace(q.Get("search")),
	}
}

// viewerOf returns the signed-in identity, or the zero identity.
func viewerOf(r *http.Request) domainauth.Identity {
	if id, ok := IdentityFromContext(r.Context()); ok && id != nil {
		return *id
	}
	return domainauth.Identity{}
}

// HandleList renders a list screen through its controller. Each request
// carries the final inputs, so the query is applied without debouncing.
// Requests targeting the table region get only the table fragment.
func HandleList[T any](h *UIHandlers, w http.ResponseWriter, r *http.Request, screen ListScreen[T]) {
	sid := SessionIDFromContext(r.Context())
	ctrl := screen.controller(h, sid)
	snap := ctrl.Apply(r.Context(), queryFromRequest(r))
	if apperrors.IsUnauthorized(snap.Err) {
		h.sessionExpired(w, r)
		return
	}

	view := screen.view(snap, viewerOf(r))
	if IsHTMX(r) && HXTarget(r) == listTableID {
		if view.ErrorMessage != "" {
			triggerToast(w, view.ErrorMessage, service.FlashError)
		}
		h.renderTable(w, r, screen.tableTemplate(), view)
		return
	}

	data := NewTemplateData(r, screen.PageMeta).With("List", view).Build()
	if view.ErrorMessage != "" {
		data[toastErrorKey] = view.ErrorMessage
	}
	h.renderDashboardPage(w, r, data)
}

// ListAction is a delete confirmation step.
type ListAction string

const (
	ListActionRequest ListAction = "delete"
	ListActionConfirm ListAction = "confirm"
	ListActionCancel  ListAction = "cancel"
)

// applyDeleteAction runs one delete step on ctrl and returns the toast to
// show, if any. Requests for rows the viewer may not delete are refused.
func applyDeleteAction[T any](
	ctx context.Context,
	ctrl *listing.Controller[T],
	screen ListScreen[T],
	viewer domainauth.Identity,
	action ListAction,
	id string,
) (viewmodel.Toast, error) {
	switch action {
	case ListActionRequest:
		if !screen.canDelete(ctrl.Snapshot(), viewer, id) {
			return viewmodel.Toast{Message: msgDeleteDenied, Type: service.FlashError}, nil
		}
		ctrl.RequestDelete(id)
	case ListActionCancel:
		ctrl.CancelDelete()
	case ListActionConfirm:
		msg, err := ctrl.ConfirmDelete(ctx)
		if err != nil {
			return viewmodel.Toast{Message: apperrors.MessageOf(err), Type: service.FlashError}, err
		}
		if msg != "" {
			return viewmodel.Toast{Message: msg, Type: service.FlashSuccess}, nil
		}
	}
	return viewmodel.Toast{}, nil
}

const msgDeleteDenied = "You are not allowed to delete this row."

// HandleListDelete serves the plain HTTP delete steps:
// POST {base}/{id}/delete, {base}/delete/confirm and {base}/delete/cancel.
// It answers with the refreshed table fragment and a toast trigger.
func HandleListDelete[T any](
	h *UIHandlers,
	w http.ResponseWriter,
	r *http.Request,
	screen ListScreen[T],
	action ListAction,
) {
	ctx := r.Context()
	ctrl := screen.controller(h, SessionIDFromContext(ctx))
	if ctrl.Snapshot().Phase == listing.PhaseIdle {
		ctrl.Mount(ctx)
	}

	viewer := viewerOf(r)
	toast, err := applyDeleteAction(ctx, ctrl, screen, viewer, action, r.PathValue("id"))
	if apperrors.IsUnauthorized(err) {
		h.sessionExpired(w, r)
		return
	}
	if toast.Message != "" {
		triggerToast(w, toast.Message, toast.Type)
	}
	h.renderTable(w, r, screen.tableTemplate(), screen.view(ctrl.Snapshot(), viewer))
}

// renderTable writes the table fragment for view.
func (h *UIHandlers) renderTable(w http.ResponseWriter, r *http.Request, name string, view any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{
		"List":      view,
		"CSRFToken": GetCSRFToken(r),
	}
	if err := h.T.Execute(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "list table render")
	}
}
