package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// SessionClient is the bearer-authenticated view of the API for one session.
type SessionClient struct {
	c  *Client
	hc *http.Client
}

var _ ports.SessionAPI = (*SessionClient)(nil)

func (s *SessionClient) do(ctx context.Context, req request, out any) error {
	return s.c.do(ctx, s.hc, req, out)
}

// CurrentUser is GET /users/user.
func (s *SessionClient) CurrentUser(ctx context.Context) (domainauth.Identity, error) {
	var out domainauth.Identity
	err := s.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/user",
		endpoint: "GET /users/user",
	}, &out)
	return out, err
}

// listParams builds page/limit plus the optional role and search parameters.
// role is omitted for "All" or empty; search is trimmed and omitted when empty.
func (s *SessionClient) listParams(q model.ListQuery, filterKey string) url.Values {
	limit := q.Limit
	q = q.Normalize()
	if limit <= 0 {
		q.Limit = s.c.pageSize
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if filterKey != "" && q.FilterActive() {
		v.Set(filterKey, q.Filter)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// ListUsers is GET /users.
func (s *SessionClient) ListUsers(ctx context.Context, q model.ListQuery) (model.ListPage[model.User], error) {
	var raw any
	if err := s.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users",
		endpoint: "GET /users",
		query:    s.listParams(q, "role"),
	}, &raw); err != nil {
		return model.ListPage[model.User]{}, err
	}
	return projectPage[model.User](usersEnvelope, raw, q.Normalize().Page)
}

// GetUser is GET /users/:id.
func (s *SessionClient) GetUser(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := s.do(ctx, request{
		method:   http.MethodGet,
		path:     "/users/" + url.PathEscape(id),
		endpoint: "GET /users/:id",
	}, &out)
	return out, err
}

// UpdateProfile is PUT /users/editProfile/:id (self edit).
func (s *SessionClient) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) error {
	return s.do(ctx, request{
		method:   http.MethodPut,
		path:     "/users/editProfile/" + url.PathEscape(id),
		endpoint: "PUT /users/editProfile/:id",
		body:     req,
	}, nil)
}

// UpdateUser is PUT /users/:id (admin edit of another account).
func (s *SessionClient) UpdateUser(ctx context.Context, id string, req model.UpdateProfileRequest) error {
	return s.do(ctx, request{
		method:   http.MethodPut,
		path:     "/users/" + url.PathEscape(id),
		endpoint: "PUT /users/:id",
		body:     req,
	}, nil)
}

// UpdatePassword is PUT /users/updatePassword/:id.
func (s *SessionClient) UpdatePassword(ctx context.Context, id string, req model.ChangePasswordRequest) error {
	return s.do(ctx, request{
		method:   http.MethodPut,
		path:     "/users/updatePassword/" + url.PathEscape(id),
		endpoint: "PUT /users/updatePassword/:id",
		body:     req,
	}, nil)
}

// DeleteSelf is DELETE /users/:id.
func (s *SessionClient) DeleteSelf(ctx context.Context, id string) error {
	return s.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/users/" + url.PathEscape(id),
		endpoint: "DELETE /users/:id",
	}, nil)
}

// DeleteUser is DELETE /users/delete/:id (list screen).
func (s *SessionClient) DeleteUser(ctx context.Context, id string) error {
	return s.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/users/delete/" + url.PathEscape(id),
		endpoint: "DELETE /users/delete/:id",
	}, nil)
}
