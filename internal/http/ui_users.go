package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/listing"
	"github.com/Rushil0704/auth-client-1/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	usersMeta    = PageMeta{Title: "Users", PageTitle: "Users", CurrentPage: PageUsers}
	userEditMeta = PageMeta{Title: "Edit User", PageTitle: "Edit user", CurrentPage: PageUserEdit}
)

// usersScreen wires the users list to the controller.
func (h *UIHandlers) usersScreen() ListScreen[model.User] {
	return ListScreen[model.User]{
		Resource: ResourceUsers,
		BasePath: "/users-list",
		EditPath: "/user-edit",
		Filters:  []string{model.RoleFilterAll, string(domainauth.RoleAdmin), string(domainauth.RoleUser)},
		PageMeta: usersMeta,
		Fetch:    h.Users.List,
		Delete:   h.Users.Delete,
		Messages: listing.Messages{Empty: service.MsgUsersEmpty, Deleted: service.MsgUserDeleted},
		Row: func(viewer domainauth.Identity, u model.User) viewmodel.Row[model.User] {
			return viewmodel.Row[model.User]{
				Item:      u,
				CanEdit:   service.CanEditUser(viewer, u),
				CanDelete: service.CanDeleteUser(viewer, u),
			}
		},
		ID:    func(u model.User) string { return u.ID },
		Label: func(u model.User) string { return u.FullName() },
	}
}

// UsersList renders the users table. GET /users-list?page=&role=&search=.
func (h *UIHandlers) UsersList(w http.ResponseWriter, r *http.Request) {
	HandleList(h, w, r, h.usersScreen())
}

// UserDeleteRequest arms the delete prompt. POST /users-list/{id}/delete.
func (h *UIHandlers) UserDeleteRequest(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.usersScreen(), ListActionRequest)
}

// UserDeleteConfirm deletes the armed row. POST /users-list/delete/confirm.
func (h *UIHandlers) UserDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.usersScreen(), ListActionConfirm)
}

// UserDeleteCancel disarms the prompt. POST /users-list/delete/cancel.
func (h *UIHandlers) UserDeleteCancel(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.usersScreen(), ListActionCancel)
}

// loadEditableUser fetches the target user and checks the viewer may edit it.
// It writes the response itself and returns false when the handler should stop.
func (h *UIHandlers) loadEditableUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	ctx := r.Context()
	target, err := h.Users.Get(ctx, SessionIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.sessionExpired(w, r)
			return model.User{}, false
		}
		h.logger().WarnContext(ctx, "load user for edit failed", "id", r.PathValue("id"), "error", err)
		h.flash(r, apperrors.MessageOf(err), service.FlashError)
		redirectBrowser(w, r, "/users-list")
		return model.User{}, false
	}
	if !service.CanEditUser(viewerOf(r), target) {
		h.flash(r, service.MsgUserEditDenied, service.FlashError)
		redirectBrowser(w, r, "/users-list")
		return model.User{}, false
	}
	return target, true
}

// UserEditPage renders the admin edit form. GET /user-edit/{id}.
func (h *UIHandlers) UserEditPage(w http.ResponseWriter, r *http.Request) {
	target, ok := h.loadEditableUser(w, r)
	if !ok {
		return
	}
	data := NewTemplateData(r, userEditMeta).
		WithForm(forms.UserEditFromUser(target)).
		With("Target", target).
		With("Mode", string(FormModeEdit)).
		Build()
	h.renderDashboardPage(w, r, data)
}

// UserEditSubmit saves the admin edit form. POST /user-edit/{id}.
func (h *UIHandlers) UserEditSubmit(w http.ResponseWriter, r *http.Request) {
	target, ok := h.loadEditableUser(w, r)
	if !ok {
		return
	}
	viewer := viewerOf(r)
	HandleForm(FormHandlerOpts[forms.UserEdit]{
		W:    w,
		R:    r,
		Mode: FormModeEdit,
		Submit: func(ctx context.Context, sid string, f forms.UserEdit) (service.Result, error) {
			return h.Users.Update(ctx, sid, viewer, target, f.Request())
		},
		Renderer:     h.renderDashboardPage,
		PageMeta:     userEditMeta,
		ExtraData:    map[string]any{"Target": target},
		Validator:    h.validator(),
		Unauthorized: h.sessionExpired,
		Flash:        h.flash,
	})
}
