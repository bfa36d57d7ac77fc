package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/mocks/memory"
	"github.com/Rushil0704/auth-client-1/internal/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.APIStub, *memory.SessionStore) {
	t.Helper()
	stub := testutil.NewAPIStub(t)
	store := memory.NewSessionStore()
	c, err := New(Options{BaseURL: stub.URL, Sessions: store, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c, stub, store
}

func saveToken(t *testing.T, store *memory.SessionStore, sid, token string) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        sid,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Options{BaseURL: "not a url", Sessions: memory.NewSessionStore()})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "http://localhost:8000"})
	assert.Error(t, err)
}

func TestLogin_NoAuthorizationHeader(t *testing.T) {
	t.Parallel()
	c, stub, _ := newTestClient(t)
	stub.JSON("POST /users/login", http.StatusOK, map[string]string{"token": "abc"})

	resp, err := c.Login(context.Background(), model.LoginRequest{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth)
	assert.JSONEq(t, `{"email":"a@b.co","password":"x"}`, calls[0].Body)
}

func TestSessionClient_ReadsTokenFreshEachCall(t *testing.T) {
	t.Parallel()
	c, stub, store := newTestClient(t)
	stub.JSON("GET /users/user", http.StatusOK, map[string]any{
		"_id": "u1", "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "role": "admin",
	})

	api := c.ForSession("sid-1")

	saveToken(t, store, "sid-1", "first")
	id, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.True(t, id.IsAdmin())

	saveToken(t, store, "sid-1", "second")
	_, err = api.CurrentUser(context.Background())
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer first", calls[0].Auth)
	assert.Equal(t, "Bearer second", calls[1].Auth)
}

func TestSessionClient_NoTokenIsUnauthorizedWithoutRequest(t *testing.T) {
	t.Parallel()
	c, stub, _ := newTestClient(t)

	_, err := c.ForSession("missing").CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Empty(t, stub.Calls())
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, apperrors.IsUnauthorized},
		{http.StatusForbidden, apperrors.IsForbidden},
		{http.StatusNotFound, apperrors.IsNotFound},
		{http.StatusConflict, apperrors.IsConflict},
		{http.StatusBadRequest, apperrors.IsServer},
		{http.StatusInternalServerError, apperrors.IsServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			c, stub, store := newTestClient(t)
			saveToken(t, store, "s", "tok")
			stub.JSON("DELETE /users/delete/{id}", tt.status, map[string]string{"message": "nope"})

			err := c.ForSession("s").DeleteUser(context.Background(), "u9")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected classification: %v", err)
			assert.Equal(t, tt.status, apperrors.GetStatus(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestNetworkError(t *testing.T) {
	t.Parallel()
	stub := testutil.NewAPIStub(t)
	base := stub.URL
	stub.Close()

	c, err := New(Options{BaseURL: base, Sessions: memory.NewSessionStore()})
	require.NoError(t, err)

	err = c.Register(context.Background(), model.RegisterRequest{Email: "a@b.co"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, 0, apperrors.GetStatus(err))
}

func TestListUsers_ParamsAndEnvelope(t *testing.T) {
	t.Parallel()
	c, stub, store := newTestClient(t)
	saveToken(t, store, "s", "tok")
	stub.JSON("GET /users", http.StatusOK, map[string]any{
		"users": []map[string]any{
			{"_id": "u1", "firstName": "A", "lastName": "B", "email": "a@example.com", "role": "user"},
		},
		"totalPages": 3,
		"totalUsers": 21,
	})

	page, err := c.ForSession("s").ListUsers(context.Background(), model.ListQuery{
		Page:   2,
		Filter: "admin",
		Search: "  ada  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 21, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u1", page.Items[0].ID)

	q, err := url.ParseQuery(stub.Calls()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "admin", q.Get("role"))
	assert.Equal(t, "ada", q.Get("search"))
}

func TestListUsers_OmitsAllFilterAndBlankSearch(t *testing.T) {
	t.Parallel()
	c, stub, store := newTestClient(t)
	saveToken(t, store, "s", "tok")
	stub.JSON("GET /users", http.StatusOK, map[string]any{})

	page, err := c.ForSession("s").ListUsers(context.Background(), model.ListQuery{Filter: "All", Search: "   "})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)

	q, err := url.ParseQuery(stub.Calls()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "1", q.Get("page"))
	assert.False(t, q.Has("role"))
	assert.False(t, q.Has("search"))
}

func TestCategories_Endpoints(t *testing.T) {
	t.Parallel()
	c, stub, store := newTestClient(t)
	saveToken(t, store, "s", "tok")

	stub.JSON("GET /categories", http.StatusOK, map[string]any{
		"categories":      []map[string]any{{"_id": "c1", "name": "Books", "description": "Paper things"}},
		"totalPages":      1,
		"totalCategories": 1,
	})
	stub.JSON("GET /categories/{id}", http.StatusOK, map[string]any{"_id": "c1", "name": "Books"})
	stub.JSON("POST /categories", http.StatusCreated, map[string]any{"_id": "c2", "name": "Music"})
	stub.JSON("PUT /categories/edit/{id}", http.StatusOK, nil)
	stub.JSON("DELETE /categories/delete/{id}", http.StatusOK, nil)

	api := c.ForSession("s")
	ctx := context.Background()

	page, err := api.ListCategories(ctx, model.ListQuery{Filter: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	q, _ := url.ParseQuery(stub.Calls()[0].Query)
	assert.False(t, q.Has("role"), "categories carry no role filter")

	cat, err := api.GetCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Books", cat.Name)

	created, err := api.CreateCategory(ctx, model.CategoryRequest{Name: "Music", Description: "Sounds and more"})
	require.NoError(t, err)
	assert.Equal(t, "c2", created.ID)

	require.NoError(t, api.UpdateCategory(ctx, "c1", model.CategoryRequest{Name: "Books"}))
	require.NoError(t, api.DeleteCategory(ctx, "c1"))

	assert.Equal(t, 1, stub.CallCount(http.MethodPut, "/categories/edit/c1"))
	assert.Equal(t, 1, stub.CallCount(http.MethodDelete, "/categories/delete/c1"))
}

func TestUsers_MutationEndpoints(t *testing.T) {
	t.Parallel()
	c, stub, store := newTestClient(t)
	saveToken(t, store, "s", "tok")

	for _, p := range []string{
		"PUT /users/editProfile/{id}",
		"PUT /users/{id}",
		"PUT /users/updatePassword/{id}",
		"DELETE /users/{id}",
	} {
		stub.JSON(p, http.StatusOK, nil)
	}
	stub.JSON("GET /users/{id}", http.StatusOK, map[string]any{"_id": "u1", "email": "a@example.com"})

	api := c.ForSession("s")
	ctx := context.Background()

	u, err := api.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	require.NoError(t, api.UpdateProfile(ctx, "u1", model.UpdateProfileRequest{FirstName: "Ada"}))
	require.NoError(t, api.UpdateUser(ctx, "u2", model.UpdateProfileRequest{FirstName: "Bob"}))
	require.NoError(t, api.UpdatePassword(ctx, "u1", model.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"}))
	require.NoError(t, api.DeleteSelf(ctx, "u1"))

	assert.Equal(t, 1, stub.CallCount(http.MethodPut, "/users/editProfile/u1"))
	assert.Equal(t, 1, stub.CallCount(http.MethodPut, "/users/u2"))
	assert.Equal(t, 1, stub.CallCount(http.MethodPut, "/users/updatePassword/u1"))
	assert.Equal(t, 1, stub.CallCount(http.MethodDelete, "/users/u1"))

	for _, call := range stub.Calls() {
		if call.Path == "/users/updatePassword/u1" {
			assert.JSONEq(t, `{"oldPassword":"a","newPassword":"b"}`, call.Body)
		}
	}
}
