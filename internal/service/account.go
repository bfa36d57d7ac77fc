package service

import (
	"context"
	"log/slog"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// Account messages.
const (
	MsgSignupSuccess       = "Signup successful!"
	MsgSignupConflict      = "Email already exists."
	MsgSignupFailed        = "Signup failed. Try again."
	MsgNoAuthentication    = "No authentication found. Please login."
	MsgProfileFetchFailed  = "Error fetching user data."
	MsgProfileUpdated      = "Profile updated successfully!"
	MsgEmailConflict       = "Email already exists. Please use a different email."
	MsgProfileUpdateFailed = "Update failed. Please try again."
	MsgUserNotFound        = "User not found. Please log in again."
	MsgPasswordUpdated     = "Password updated successfully!"
	MsgPasswordInvalid     = "Password Invalid. Try again."
	MsgPasswordSame        = "Same password. Try again."
	MsgPasswordFailed      = "Password update failed. Please try again later."
	MsgAccountDeleted      = "Account deleted successfully!"
	MsgAccountDeleteFailed = "Error deleting account. Please try again."
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Sessions *SessionService // Required
	Logger   *slog.Logger    // Optional
}

// AccountService implements the signed-in user's own account operations and signup.
type AccountService struct {
	sessions *SessionService
	logger   *slog.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.Sessions == nil {
		panic("SessionService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{sessions: opts.Sessions, logger: logger.With("component", "account")}
}

// Signup registers a new account. It does not sign the user in.
func (s *AccountService) Signup(ctx context.Context, req model.RegisterRequest) (Result, error) {
	if err := s.sessions.api.Register(ctx, req); err != nil {
		return Result{}, failure(err, MsgSignupFailed, map[int]string{409: MsgSignupConflict})
	}
	return Result{Message: MsgSignupSuccess, Redirect: "/login"}, nil
}

// Profile loads the signed-in user's record for the edit form.
func (s *AccountService) Profile(ctx context.Context, sid string) (model.User, error) {
	me, ok := s.sessions.Current(ctx, sid)
	if !ok {
		return model.User{}, apperrors.Unauthorized(MsgNoAuthentication)
	}
	u, err := s.sessions.API(sid).GetUser(ctx, me.ID)
	if err != nil {
		return model.User{}, apperrors.WithMessage(err, MsgProfileFetchFailed)
	}
	return u, nil
}

// UpdateProfile saves the user's own name and email, then refreshes the cached identity.
func (s *AccountService) UpdateProfile(ctx context.Context, sid string, req model.UpdateProfileRequest) (Result, error) {
	me, ok := s.sessions.Current(ctx, sid)
	if !ok {
		return Result{}, apperrors.Unauthorized(MsgNoAuthentication)
	}
	if err := s.sessions.API(sid).UpdateProfile(ctx, me.ID, req); err != nil {
		return Result{}, failure(err, MsgProfileUpdateFailed, map[int]string{409: MsgEmailConflict})
	}
	if _, err := s.sessions.Refresh(ctx, sid); err != nil {
		s.logger.WarnContext(ctx, "identity refresh after profile update failed", "error", err)
	}
	return Result{Message: MsgProfileUpdated, Redirect: "/dashboard"}, nil
}

// ChangePassword updates the user's password. The API answers 403 for a wrong
// current password and 404 when the new password equals the old one.
func (s *AccountService) ChangePassword(ctx context.Context, sid string, req model.ChangePasswordRequest) (Result, error) {
	me, ok := s.sessions.Current(ctx, sid)
	if !ok {
		return Result{}, apperrors.Unauthorized(MsgUserNotFound)
	}
	if err := s.sessions.API(sid).UpdatePassword(ctx, me.ID, req); err != nil {
		if apperrors.IsNetwork(err) || apperrors.IsTimeout(err) {
			return Result{}, apperrors.WithMessage(err, MsgNetworkError)
		}
		return Result{}, failure(err, MsgPasswordFailed, map[int]string{
			403: MsgPasswordInvalid,
			404: MsgPasswordSame,
		})
	}
	return Result{Message: MsgPasswordUpdated, Redirect: "/dashboard"}, nil
}

// DeleteAccount removes the signed-in user's own account and logs the session out.
// API rejections surface the API's own message.
func (s *AccountService) DeleteAccount(ctx context.Context, sid string) (Result, error) {
	me, ok := s.sessions.Current(ctx, sid)
	if !ok {
		return Result{}, apperrors.Unauthorized(MsgNoAuthentication)
	}
	if err := s.sessions.API(sid).DeleteSelf(ctx, me.ID); err != nil {
		if apperrors.GetStatus(err) != 0 && apperrors.MessageOf(err) != "" {
			return Result{}, err
		}
		return Result{}, apperrors.WithMessage(err, MsgAccountDeleteFailed)
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		s.logger.WarnContext(ctx, "clear session after account delete failed", "error", err)
	}
	s.logger.InfoContext(ctx, "account deleted", "user_id", me.ID)
	return Result{Message: MsgAccountDeleted, Redirect: "/signup"}, nil
}
