package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/testutil"
	"github.com/Rushil0704/auth-client-1/internal/theme"
)

func TestNewTemplateData(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	meta := PageMeta{Title: "Test Title", PageTitle: "Test Page", CurrentPage: "test"}

	data := NewTemplateData(r, meta).Build()

	assert.Equal(t, "Test Title", data["Title"])
	assert.Equal(t, "Test Page", data["PageTitle"])
	assert.Equal(t, "test", data["CurrentPage"])
	assert.Equal(t, false, data["IsAuthenticated"])
	assert.Equal(t, false, data["IsAdmin"])
	assert.Equal(t, "light", data["Theme"])
	assert.NotContains(t, data, "User")
}

func TestNewTemplateData_SignedInAdmin(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	ctx := SetIdentityInContext(r.Context(), testutil.NewUser("a1").Admin().WithName("Ada", "Lovelace").Identity())
	ctx = theme.WithTheme(ctx, theme.Dark)
	r = r.WithContext(ctx)

	data := NewTemplateData(r, PageMeta{Title: "Dashboard", CurrentPage: PageDashboard}).Build()

	assert.Equal(t, true, data["IsAuthenticated"])
	assert.Equal(t, true, data["IsAdmin"])
	assert.Equal(t, "dark", data["Theme"])
	user, ok := data["User"].(*viewmodel.User)
	if assert.True(t, ok) {
		assert.Equal(t, "AL", user.Initials)
		assert.Equal(t, "Ada Lovelace", user.Name)
	}
}

func TestTemplateDataBuilder_ErrorsAndCustomFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	data := NewTemplateData(r, PageMeta{}).
		WithError("boom").
		WithFieldErrors(map[string]string{"name": "*Name is required."}).
		WithForm(map[string]string{"name": ""}).
		With("Mode", string(FormModeCreate)).
		Build()

	assert.Equal(t, true, data["Error"])
	assert.Equal(t, "boom", data["ErrorMessage"])
	assert.Equal(t, map[string]string{"name": "*Name is required."}, data["Errors"])
	assert.Equal(t, "create", data["Mode"])
	assert.NotNil(t, data["Form"])
}

func TestTemplateDataBuilder_EmptyFieldErrorsKeepDefault(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	data := NewTemplateData(r, PageMeta{}).WithFieldErrors(nil).Build()
	assert.Equal(t, map[string]string{}, data["Errors"])
}

func TestTemplateDataBuilder_WithLoadFailure(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/category-edit/c1", nil)
	err := apperrors.WithMessage(apperrors.FromStatus(500, "boom"), "Error fetching category data.")
	data := NewTemplateData(r, PageMeta{}).
		WithFieldErrors(map[string]string{"name": "x"}).
		WithFieldErrors(map[string]string{"description": "y"}).
		WithLoadFailure(struct{}{}, err).
		Build()

	assert.Equal(t, "Error fetching category data.", data["ErrorMessage"])
	assert.Equal(t, "Error fetching category data.", data[toastErrorKey])
	assert.Equal(t, struct{}{}, data["Form"])
	assert.Len(t, data["Errors"], 2)
}
