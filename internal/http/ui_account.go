package httpx

import (
	"context"
	"net/http"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	"github.com/Rushil0704/auth-client-1/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	editAccountMeta    = PageMeta{Title: "Edit Account", PageTitle: "Edit account", CurrentPage: PageEditAccount}
	changePasswordMeta = PageMeta{Title: "Change Password", PageTitle: "Change password", CurrentPage: PageChangePassword}
)

// EditAccountPage pre-fills the profile form from the API. GET /edit-account.
func (h *UIHandlers) EditAccountPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := h.Accounts.Profile(ctx, SessionIDFromContext(ctx))
	if apperrors.IsUnauthorized(err) {
		h.sessionExpired(w, r)
		return
	}

	b := NewTemplateData(r, editAccountMeta)
	if err != nil {
		h.logger().WarnContext(ctx, "load profile failed", "error", err)
		b.WithLoadFailure(forms.Account{}, err)
	} else {
		b.WithForm(forms.AccountFromUser(u))
	}
	h.renderDashboardPage(w, r, b.Build())
}

// EditAccountSubmit saves the profile form. POST /edit-account.
func (h *UIHandlers) EditAccountSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[forms.Account]{
		W: w,
		R: r,
		Submit: func(ctx context.Context, sid string, f forms.Account) (service.Result, error) {
			return h.Accounts.UpdateProfile(ctx, sid, f.Request())
		},
		Renderer:     h.renderDashboardPage,
		PageMeta:     editAccountMeta,
		Validator:    h.validator(),
		Unauthorized: h.sessionExpired,
		Flash:        h.flash,
	})
}

// ChangePasswordPage renders the password form. GET /change-password.
func (h *UIHandlers) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, changePasswordMeta).WithForm(forms.ChangePassword{}).Build()
	h.renderDashboardPage(w, r, data)
}

// ChangePasswordSubmit updates the password. POST /change-password.
func (h *UIHandlers) ChangePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[forms.ChangePassword]{
		W: w,
		R: r,
		Submit: func(ctx context.Context, sid string, f forms.ChangePassword) (service.Result, error) {
			return h.Accounts.ChangePassword(ctx, sid, f.Request())
		},
		Renderer:     h.renderDashboardPage,
		PageMeta:     changePasswordMeta,
		Validator:    h.validator(),
		Unauthorized: h.sessionExpired,
		Flash:        h.flash,
	})
}

// AccountDelete removes the signed-in user's own account. POST /account/delete.
// Success logs the session out and goes to the signup page; failure stays on
// the account page with the API's message as a toast.
func (h *UIHandlers) AccountDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.Accounts.DeleteAccount(ctx, SessionIDFromContext(ctx))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.sessionExpired(w, r)
			return
		}
		h.logger().WarnContext(ctx, "account delete failed", "error", err)
		triggerToast(w, processError(err, nil), service.FlashError)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.flash(r, res.Message, service.FlashSuccess)
	redirectBrowser(w, r, res.Redirect)
}
