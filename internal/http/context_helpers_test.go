package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushil0704/auth-client-1/internal/testutil"
)

func TestSessionIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, SessionIDFromContext(ctx))
	assert.Equal(t, ctx, SetSessionIDInContext(ctx, ""), "empty id leaves ctx unchanged")

	ctx = SetSessionIDInContext(ctx, "sid-1")
	assert.Equal(t, "sid-1", SessionIDFromContext(ctx))
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.True(t, IsGuestUser(ctx))
	assert.Equal(t, ctx, SetIdentityInContext(ctx, nil))

	ctx = SetIdentityInContext(ctx, testutil.NewUser("u1").Admin().Identity())
	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", got.ID)
	assert.False(t, IsGuestUser(ctx))
}
