package service

import (
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// Result is the user-facing outcome of a successful mutation: a toast and where to go next.
type Result struct {
	Message  string
	Redirect string
}

// failure attaches the toast message for err, choosing by status where a specific one exists.
func failure(err error, fallback string, byStatus map[int]string) error {
	if msg, ok := byStatus[apperrors.GetStatus(err)]; ok {
		return apperrors.WithMessage(err, msg)
	}
	return apperrors.WithMessage(err, fallback)
}
