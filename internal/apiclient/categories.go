package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// ListCategories is GET /categories. Categories have no role filter.
func (s *SessionClient) ListCategories(ctx context.Context, q model.ListQuery) (model.ListPage[model.Category], error) {
	var raw any
	if err := s.do(ctx, request{
		method:   http.MethodGet,
		path:     "/categories",
		endpoint: "GET /categories",
		query:    s.listParams(q, ""),
	}, &raw); err != nil {
		return model.ListPage[model.Category]{}, err
	}
	return projectPage[model.Category](categoriesEnvelope, raw, q.Normalize().Page)
}

// GetCategory is GET /categories/:id.
func (s *SessionClient) GetCategory(ctx context.Context, id string) (model.Category, error) {
	var out model.Category
	err := s.do(ctx, request{
		method:   http.MethodGet,
		path:     "/categories/" + url.PathEscape(id),
		endpoint: "GET /categories/:id",
	}, &out)
	return out, err
}

// CreateCategory is POST /categories.
func (s *SessionClient) CreateCategory(ctx context.Context, req model.CategoryRequest) (model.Category, error) {
	var out model.Category
	err := s.do(ctx, request{
		method:   http.MethodPost,
		path:     "/categories",
		endpoint: "POST /categories",
		body:     req,
	}, &out)
	return out, err
}

// UpdateCategory is PUT /categories/edit/:id.
func (s *SessionClient) UpdateCategory(ctx context.Context, id string, req model.CategoryRequest) error {
	return s.do(ctx, request{
		method:   http.MethodPut,
		path:     "/categories/edit/" + url.PathEscape(id),
		endpoint: "PUT /categories/edit/:id",
		body:     req,
	}, nil)
}

// DeleteCategory is DELETE /categories/delete/:id.
func (s *SessionClient) DeleteCategory(ctx context.Context, id string) error {
	return s.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/categories/delete/" + url.PathEscape(id),
		endpoint: "DELETE /categories/delete/:id",
	}, nil)
}
