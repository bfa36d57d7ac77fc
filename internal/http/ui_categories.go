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
	categoriesMeta     = PageMeta{Title: "Categories", PageTitle: "Categories", CurrentPage: PageCategories}
	categoryEditMeta   = PageMeta{Title: "Edit Category", PageTitle: "Edit category", CurrentPage: PageCategoryForm}
	categoryCreateMeta = PageMeta{Title: "Create Category", PageTitle: "Create category", CurrentPage: PageCategoryForm}
)

func (h *UIHandlers) categoriesScreen() ListScreen[model.Category] {
	return ListScreen[model.Category]{
		Resource: ResourceCategories,
		BasePath: "/categories-list",
		EditPath: "/category-edit",
		PageMeta: categoriesMeta,
		Fetch:    h.Categories.List,
		Delete:   h.Categories.Delete,
		Messages: listing.Messages{Empty: service.MsgCategoriesEmpty, Deleted: service.MsgCategoryDeleted},
		// Any signed-in user may edit or delete categories.
		Row: func(_ domainauth.Identity, c model.Category) viewmodel.Row[model.Category] {
			return viewmodel.Row[model.Category]{Item: c, CanEdit: true, CanDelete: true}
		},
		ID:    func(c model.Category) string { return c.ID },
		Label: func(c model.Category) string { return c.Name },
	}
}

// CategoriesList renders the categories table. GET /categories-list?page=&search=.
func (h *UIHandlers) CategoriesList(w http.ResponseWriter, r *http.Request) {
	HandleList(h, w, r, h.categoriesScreen())
}

// CategoryDeleteRequest arms the delete prompt. POST /categories-list/{id}/delete.
func (h *UIHandlers) CategoryDeleteRequest(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.categoriesScreen(), ListActionRequest)
}

// CategoryDeleteConfirm deletes the armed row.
func (h *UIHandlers) CategoryDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.categoriesScreen(), ListActionConfirm)
}

// CategoryDeleteCancel disarms the prompt.
func (h *UIHandlers) CategoryDeleteCancel(w http.ResponseWriter, r *http.Request) {
	HandleListDelete(h, w, r, h.categoriesScreen(), ListActionCancel)
}

// CategoryCreatePage renders an empty category form. GET /create-category.
func (h *UIHandlers) CategoryCreatePage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, categoryCreateMeta).
		WithForm(forms.Category{}).
		With("Mode", string(FormModeCreate)).
		Build()
	h.renderDashboardPage(w, r, data)
}

// CategoryCreateSubmit creates a category. POST /create-category.
func (h *UIHandlers) CategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[forms.Category]{
		W:    w,
		R:    r,
		Mode: FormModeCreate,
		Submit: func(ctx context.Context, sid string, f forms.Category) (service.Result, error) {
			return h.Categories.Create(ctx, sid, f.Request())
		},
		Renderer:     h.renderDashboardPage,
		PageMeta:     categoryCreateMeta,
		Validator:    h.validator(),
		Unauthorized: h.sessionExpired,
		Flash:        h.flash,
	})
}

// CategoryEditPage loads a category into the form. GET /category-edit/{id}.
// A failed load shows "Error fetching category data." on an empty form.
func (h *UIHandlers) CategoryEditPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	c, err := h.Categories.Get(ctx, SessionIDFromContext(ctx), id)
	if apperrors.IsUnauthorized(err) {
		h.sessionExpired(w, r)
		return
	}

	b := NewTemplateData(r, categoryEditMeta).
		With("Mode", string(FormModeEdit)).
		With("CategoryID", id)
	if err != nil {
		h.logger().WarnContext(ctx, "load category for edit failed", "id", id, "error", err)
		b.WithLoadFailure(forms.Category{}, err)
	} else {
		b.WithForm(forms.CategoryFromModel(c)).With("Category", c)
	}
	h.renderDashboardPage(w, r, b.Build())
}

// CategoryEditSubmit saves a category. POST /category-edit/{id}.
func (h *UIHandlers) CategoryEditSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	HandleForm(FormHandlerOpts[forms.Category]{
		W:    w,
		R:    r,
		Mode: FormModeEdit,
		Submit: func(ctx context.Context, sid string, f forms.Category) (service.Result, error) {
			return h.Categories.Update(ctx, sid, id, f.Request())
		},
		Renderer:     h.renderDashboardPage,
		PageMeta:     categoryEditMeta,
		ExtraData:    map[string]any{"CategoryID": id},
		Validator:    h.validator(),
		Unauthorized: h.sessionExpired,
		Flash:        h.flash,
	})
}
