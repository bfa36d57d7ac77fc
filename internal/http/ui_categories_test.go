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

func categoryForm(name, description string) url.Values {
	return url.Values{"name": {name}, "description": {description}}
}

func categoriesPage(items ...model.Category) model.ListPage[model.Category] {
	return model.ListPage[model.Category]{Items: items, Page: 1, TotalPages: 1, TotalCount: len(items)}
}

func TestCategoriesList_EveryoneCanManage(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.signIn(t, testUser)
	app.Remote.EXPECT().ListCategories(gomock.Any(), model.ListQuery{Page: 1, Limit: 10, Filter: model.RoleFilterAll, Search: "cat"}).
		Return(categoriesPage(testutil.Categories(3)...), nil)

	rec := app.do(t, http.MethodGet, "/categories-list?search=cat", nil, asHTMX(listTableID))
	require.Equal(t, http.StatusOK, rec.Code)

	rows := parseHTML(t, rec).Find("#list-table tbody tr")
	assert.Equal(t, 3, rows.Length())
	assert.Equal(t, 3, rows.Find("a.btn").Length())
	assert.Equal(t, 3, rows.Find("button.btn-danger").Length())
	assert.Equal(t, "/category-edit/c2", rows.Eq(1).Find("a.btn").AttrOr("href", ""))
}

func TestCategoriesList_DeleteFlow(t *testing.T) {
	t.Parallel()
	cats := testutil.Categories(2)
	app := newTestApp(t)
	app.signIn(t, testUser)
	gomock.InOrder(
		app.Remote.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return(categoriesPage(cats...), nil),
		app.Remote.EXPECT().DeleteCategory(gomock.Any(), "c1").Return(nil),
		app.Remote.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return(categoriesPage(cats[1]), nil),
	)

	rec := app.do(t, http.MethodPost, "/categories-list/c1/delete", nil, asHTMX(listTableID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, parseHTML(t, rec).Find("#delete-title").Text(), "Category 1")

	rec = app.do(t, http.MethodPost, "/categories-list/delete/confirm", nil, asHTMX(listTableID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), service.MsgCategoryDeleted)
	assert.Equal(t, 1, parseHTML(t, rec).Find("#list-table tbody tr").Length())
}

func TestCategoryCreateSubmit(t *testing.T) {
	t.Parallel()

	t.Run("success redirects to the list", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().CreateCategory(gomock.Any(), model.CategoryRequest{
			Name: "Garden", Description: "Tools for the garden",
		}).Return(model.Category{ID: "c9"}, nil)

		rec := app.do(t, http.MethodPost, "/create-category", categoryForm("  Garden ", "Tools for the garden"))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/categories-list", rec.Header().Get("Location"))

		app.Remote.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return(categoriesPage(), nil)
		rec = app.do(t, http.MethodGet, "/categories-list", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, parseHTML(t, rec).Find("#toasts").Text(), service.MsgCategoryCreated)
	})

	t.Run("htmx success uses hx-redirect", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c9"}, nil)

		rec := app.do(t, http.MethodPost, "/create-category", categoryForm("Garden", "Tools for the garden"), asHTMX("content"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/categories-list", rec.Header().Get("Hx-Redirect"))
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
			Return(model.Category{}, apperrors.FromStatus(http.StatusConflict, "exists"))

		rec := app.do(t, http.MethodPost, "/create-category", categoryForm("Garden", "Tools for the garden"))
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec)
		assert.Equal(t, service.MsgCategoryConflict, strings.TrimSpace(doc.Find(".alert-error").Text()))
		assert.Equal(t, "Garden", doc.Find("input#name").AttrOr("value", ""))
	})

	t.Run("validation errors per field", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Times(0)

		rec := app.do(t, http.MethodPost, "/create-category", categoryForm("Toys", "short"))
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec)
		assert.Equal(t, "*Name must be at least 5 characters.", strings.TrimSpace(doc.Find("#name-error").Text()))
		assert.Equal(t, "*Description must be at least 10 characters.", strings.TrimSpace(doc.Find("#description-error").Text()))
	})
}

func TestCategoryEditPage(t *testing.T) {
	t.Parallel()

	t.Run("prefills the form", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().GetCategory(gomock.Any(), "c1").Return(testutil.Categories(1)[0], nil)

		rec := app.do(t, http.MethodGet, "/category-edit/c1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec)
		assert.Equal(t, "Category 1", doc.Find("input#name").AttrOr("value", ""))
		assert.Equal(t, "/category-edit/c1", doc.Find("form.form").AttrOr("action", ""))
	})

	t.Run("failed load shows an empty form", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)
		app.signIn(t, testUser)
		app.Remote.EXPECT().GetCategory(gomock.Any(), "c404").
			Return(model.Category{}, apperrors.FromStatus(http.StatusNotFound, "missing"))

		rec := app.do(t, http.MethodGet, "/category-edit/c404", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec)
		assert.Equal(t, service.MsgCategoryFetchFailed, strings.TrimSpace(doc.Find(".alert-error").Text()))
		assert.Empty(t, doc.Find("input#name").AttrOr("value", ""))
	})
}

func TestCategoryEditSubmit(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.signIn(t, testUser)
	app.Remote.EXPECT().UpdateCategory(gomock.Any(), "c1", model.CategoryRequest{
		Name: "Kitchen", Description: "Pots and pans and more",
	}).Return(nil)

	rec := app.do(t, http.MethodPost, "/category-edit/c1", categoryForm("Kitchen", "Pots and pans and more"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/categories-list", rec.Header().Get("Location"))
}
