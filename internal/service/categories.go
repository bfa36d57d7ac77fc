package service

import (
	"context"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// Category messages.
const (
	MsgCategoriesLoadFailed = "Failed to load categories. Please try again."
	MsgCategoriesEmpty      = "No categories found"
	MsgCategoryDeleted      = "Category deleted successfully!"
	MsgCategoryDeleteFailed = "Failed to delete category. Please try again."
	MsgCategoryFetchFailed  = "Error fetching category data."
	MsgCategoryUpdated      = "Category updated successfully!"
	MsgCategoryCreated      = "Category created successfully!"
	MsgCategoryConflict     = "Category name already exists."
	MsgCategoryUpdateFailed = "Update failed. Please try again."
	MsgCategoryCreateFailed = "Create failed. Please try again."
)

// CategoryService implements the category screens for one session.
// Any authenticated user may edit or delete categories.
type CategoryService struct {
	sessions *SessionService
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(sessions *SessionService) *CategoryService {
	if sessions == nil {
		panic("SessionService is required")
	}
	return &CategoryService{sessions: sessions}
}

// List fetches one page of categories.
func (s *CategoryService) List(ctx context.Context, sid string, q model.ListQuery) (model.ListPage[model.Category], error) {
	page, err := s.sessions.API(sid).ListCategories(ctx, q)
	if err != nil {
		return model.ListPage[model.Category]{}, apperrors.WithMessage(err, MsgCategoriesLoadFailed)
	}
	return page, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, sid, id string) error {
	if err := s.sessions.API(sid).DeleteCategory(ctx, id); err != nil {
		return apperrors.WithMessage(err, MsgCategoryDeleteFailed)
	}
	return nil
}

// Get loads a category for the edit form.
func (s *CategoryService) Get(ctx context.Context, sid, id string) (model.Category, error) {
	c, err := s.sessions.API(sid).GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, apperrors.WithMessage(err, MsgCategoryFetchFailed)
	}
	return c, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, sid string, req model.CategoryRequest) (Result, error) {
	if _, err := s.sessions.API(sid).CreateCategory(ctx, req); err != nil {
		return Result{}, failure(err, MsgCategoryCreateFailed, map[int]string{409: MsgCategoryConflict})
	}
	return Result{Message: MsgCategoryCreated, Redirect: "/categories-list"}, nil
}

// Update saves a category.
func (s *CategoryService) Update(ctx context.Context, sid, id string, req model.CategoryRequest) (Result, error) {
	if err := s.sessions.API(sid).UpdateCategory(ctx, id, req); err != nil {
		return Result{}, failure(err, MsgCategoryUpdateFailed, map[int]string{409: MsgCategoryConflict})
	}
	return Result{Message: MsgCategoryUpdated, Redirect: "/categories-list"}, nil
}
