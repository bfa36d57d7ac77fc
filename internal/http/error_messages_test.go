package httpx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

func TestProcessError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "timeout", err: apperrors.Network(context.DeadlineExceeded), want: "Request timed out. Please try again."},
		{name: "canceled", err: apperrors.Network(context.Canceled), want: "Request was canceled."},
		{name: "unreachable", err: apperrors.Network(errors.New("dial tcp: refused")), want: "Network error. Please check your connection."},
		{name: "service message wins", err: apperrors.WithMessage(apperrors.Network(errors.New("x")), "Failed to load users. Please try again."), want: "Failed to load users. Please try again."},
		{name: "session expired", err: apperrors.WithMessage(apperrors.Unauthorized("401"), "Session expired. Please login again."), want: "Session expired. Please login again."},
		{name: "validation without field", err: apperrors.Validation("Too many login attempts."), want: "Too many login attempts."},
		{name: "plain error", err: errors.New("pq: boom"), want: msgGenericError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var fields map[string]string
			assert.Equal(t, tt.want, processError(tt.err, &fields))
			assert.Empty(t, fields)
		})
	}
}

func TestProcessError_FieldValidationMovesToFields(t *testing.T) {
	t.Parallel()
	err := apperrors.ValidationField("email", "*Invalid email format.")

	var fields map[string]string
	assert.Equal(t, errMsgFixBelow, processError(err, &fields))
	assert.Equal(t, map[string]string{"email": "*Invalid email format."}, fields)

	assert.Equal(t, "*Invalid email format.", processError(err, nil), "without a field map the message is shown directly")
}
