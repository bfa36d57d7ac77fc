package service

import (
	"context"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// User management messages.
const (
	MsgUsersLoadFailed  = "Failed to load users. Please try again."
	MsgUsersEmpty       = "No users found"
	MsgUserDeleted      = "User deleted successfully!"
	MsgUserDeleteFailed = "Failed to delete user. Please try again."
	MsgUserEdited       = "User edited successfully!"
	MsgUserEditFailed   = "Update failed. Try again."
	MsgUserEditDenied   = "You are not allowed to edit this user."
)

// UserService implements the user list and admin edit screens for one session.
type UserService struct {
	sessions *SessionService
}

// NewUserService constructs a UserService.
func NewUserService(sessions *SessionService) *UserService {
	if sessions == nil {
		panic("SessionService is required")
	}
	return &UserService{sessions: sessions}
}

// List fetches one page of users.
func (s *UserService) List(ctx context.Context, sid string, q model.ListQuery) (model.ListPage[model.User], error) {
	page, err := s.sessions.API(sid).ListUsers(ctx, q)
	if err != nil {
		return model.ListPage[model.User]{}, apperrors.WithMessage(err, MsgUsersLoadFailed)
	}
	return page, nil
}

// Delete removes a user from the list screen.
func (s *UserService) Delete(ctx context.Context, sid, id string) error {
	if err := s.sessions.API(sid).DeleteUser(ctx, id); err != nil {
		return apperrors.WithMessage(err, MsgUserDeleteFailed)
	}
	return nil
}

// Get loads a user for the admin edit form.
func (s *UserService) Get(ctx context.Context, sid, id string) (model.User, error) {
	u, err := s.sessions.API(sid).GetUser(ctx, id)
	if err != nil {
		return model.User{}, apperrors.WithMessage(err, MsgProfileFetchFailed)
	}
	return u, nil
}

// Update saves another user's name and email. The viewer must be allowed to edit the row.
func (s *UserService) Update(
	ctx context.Context,
	sid string,
	viewer domainauth.Identity,
	target model.User,
	req model.UpdateProfileRequest,
) (Result, error) {
	if !CanEditUser(viewer, target) {
		return Result{}, &apperrors.AppError{Code: apperrors.ErrCodeForbidden, Message: MsgUserEditDenied}
	}
	if err := s.sessions.API(sid).UpdateUser(ctx, target.ID, req); err != nil {
		return Result{}, failure(err, MsgUserEditFailed, map[int]string{409: MsgEmailConflict})
	}
	return Result{Message: MsgUserEdited, Redirect: "/users-list"}, nil
}

// CanEditUser: admins edit anyone; users edit only rows that are not admins.
func CanEditUser(viewer domainauth.Identity, row model.User) bool {
	if viewer.IsAdmin() {
		return true
	}
	return viewer.Role == domainauth.RoleUser && !row.IsAdmin()
}

// CanDeleteUser: only admins delete, and never their own row.
func CanDeleteUser(viewer domainauth.Identity, row model.User) bool {
	return viewer.IsAdmin() && row.ID != viewer.ID
}
