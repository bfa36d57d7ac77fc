package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/testutil"
)

func TestUserEditPage(t *testing.T) {
	t.Parallel()
	alan := testutil.NewUser("u2").WithName("Alan", "Turing").Build()
	boss := testutil.NewUser("a2").Admin().WithName("Barbara", "Liskov").Build()

	t.Run("admin edits a user", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testAdmin)
		app.Remote.EXPECT().GetUser(gomock.Any(), "u2").Return(alan, nil)

		rec := app.do(t, http.MethodGet, "/user-edit/u2", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec)
		assert.Equal(t, "Alan", doc.Find("input#firstName").AttrOr("value", ""))
		assert.Equal(t, "Turing", doc.Find("input#lastName").AttrOr("value", ""))
	})

	t.Run("user cannot edit an admin", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().GetUser(gomock.Any(), "a2").Return(boss, nil)

		rec := app.do(t, http.MethodGet, "/user-edit/a2", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users-list", rec.Header().Get("Location"))

		app.Remote.EXPECT().ListUsers(gomock.Any(), gomock.Any()).Return(usersPage(boss), nil)
		rec = app.do(t, http.MethodGet, "/users-list", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, parseHTML(t, rec).Find("#toasts").Text(), service.MsgUserEditDenied)
	})

	t.Run("missing user returns to the list", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testAdmin)
		app.Remote.EXPECT().GetUser(gomock.Any(), "gone").
			Return(model.User{}, apperrors.FromStatus(http.StatusNotFound, "missing"))

		rec := app.do(t, http.MethodGet, "/user-edit/gone", nil, asHTMX("content"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/users-list", rec.Header().Get("Hx-Redirect"))
	})
}

func TestUserEditSubmit(t *testing.T) {
	t.Parallel()
	alan := testutil.NewUser("u2").WithName("Alan", "Turing").Build()
	form := func(last string) url.Values {
		return url.Values{"firstName": {"Alan"}, "lastName": {last}, "email": {"alan@example.com"}}
	}

	t.Run("saves and redirects", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testAdmin)
		app.Remote.EXPECT().GetUser(gomock.Any(), "u2").Return(alan, nil)
		app.Remote.EXPECT().UpdateUser(gomock.Any(), "u2", model.UpdateProfileRequest{
			FirstName: "Alan", LastName: "Turing", Email: "alan@example.com",
		}).Return(nil)

		rec := app.do(t, http.MethodPost, "/user-edit/u2", form("Turing"))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users-list", rec.Header().Get("Location"))
	})

	t.Run("admin form wants a longer last name", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testAdmin)
		app.Remote.EXPECT().GetUser(gomock.Any(), "u2").Return(alan, nil)
		app.Remote.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rec := app.do(t, http.MethodPost, "/user-edit/u2", form("Tur"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*Last name must be at least 5 characters.",
			strings.TrimSpace(parseHTML(t, rec).Find("#lastName-error").Text()))
	})

	t.Run("email conflict", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testAdmin)
		app.Remote.EXPECT().GetUser(gomock.Any(), "u2").Return(alan, nil)
		app.Remote.EXPECT().UpdateUser(gomock.Any(), "u2", gomock.Any()).
			Return(apperrors.FromStatus(http.StatusConflict, "taken"))

		rec := app.do(t, http.MethodPost, "/user-edit/u2", form("Turing"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.MsgEmailConflict, strings.TrimSpace(parseHTML(t, rec).Find(".alert-error").Text()))
	})
}
