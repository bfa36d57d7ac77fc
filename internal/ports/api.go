package ports

import (
	"context"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// APIClient is the remote REST API. Login and Register are anonymous;
// everything else goes through a session-scoped view that attaches the bearer token.
type APIClient interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) error
	ForSession(sid string) SessionAPI
}

// SessionAPI is the set of authenticated endpoints for one browser session.
type SessionAPI interface {
	UserAPI
	CategoryAPI

	// CurrentUser is the "who am I" call.
	CurrentUser(ctx context.Context) (domainauth.Identity, error)
}

// UserAPI covers the user endpoints.
type UserAPI interface {
	ListUsers(ctx context.Context, q model.ListQuery) (model.ListPage[model.User], error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) error
	UpdateUser(ctx context.Context, id string, req model.UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, id string, req model.ChangePasswordRequest) error
	DeleteSelf(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

// CategoryAPI covers the category endpoints.
type CategoryAPI interface {
	ListCategories(ctx context.Context, q model.ListQuery) (model.ListPage[model.Category], error)
	GetCategory(ctx context.Context, id string) (model.Category, error)
	CreateCategory(ctx context.Context, req model.CategoryRequest) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, req model.CategoryRequest) error
	DeleteCategory(ctx context.Context, id string) error
}
