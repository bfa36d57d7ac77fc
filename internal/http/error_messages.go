package httpx

import (
	"errors"
	"strings"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

const msgGenericError = "An error occurred. Please try again."

// Friendly text for errors that reach a page still carrying the transport's
// own message, i.e. no service attached a user-facing one.
var transportMessages = map[apperrors.ErrorCode]struct{ raw, shown string }{
	apperrors.ErrCodeTimeout:  {"request timed out", "Request timed out. Please try again."},
	apperrors.ErrCodeCanceled: {"request canceled", "Request was canceled."},
	apperrors.ErrCodeNetwork:  {"remote api unreachable", "Network error. Please check your connection."},
}

// processError returns the message to show for err. A validation error
// scoped to a field moves into fieldErrors and the page gets the generic
// "fix below" line instead.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}
	if field := apperrors.GetField(err); field != "" && fieldErrors != nil && apperrors.IsValidation(err) {
		if *fieldErrors == nil {
			*fieldErrors = map[string]string{}
		}
		(*fieldErrors)[field] = apperrors.MessageOf(err)
		return errMsgFixBelow
	}
	if msg := messageFor(err); msg != "" {
		return msg
	}
	return msgGenericError
}

// messageFor returns the user-facing text carried by err, or "" for plain
// errors so internals never leak into a page.
func messageFor(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return ""
	}
	if tm, ok := transportMessages[appErr.Code]; ok && appErr.Message == tm.raw {
		return tm.shown
	}
	return strings.TrimSpace(appErr.Message)
}
