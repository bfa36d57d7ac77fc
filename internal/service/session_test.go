package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/mocks"
	"github.com/Rushil0704/auth-client-1/internal/mocks/memory"
)

type sessionFixture struct {
	svc       *SessionService
	api       *mocks.MockAPIClient
	sessAPI   *mocks.MockSessionAPI
	store     *memory.SessionStore
	transient *memory.TransientStore
	now       time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &sessionFixture{
		api:       mocks.NewMockAPIClient(ctrl),
		sessAPI:   mocks.NewMockSessionAPI(ctrl),
		store:     memory.NewSessionStore(),
		transient: memory.NewTransientStore(),
		now:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.api.EXPECT().ForSession(gomock.Any()).Return(f.sessAPI).AnyTimes()
	f.svc = NewSessionService(SessionServiceOptions{
		Stores: SessionStores{Sessions: f.store, Transient: f.transient},
		API:    f.api,
		Config: SessionConfig{TTL: time.Hour, Now: func() time.Time { return f.now }},
	})
	return f
}

func (f *sessionFixture) seed(t *testing.T, sess domainauth.Session) {
	t.Helper()
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = time.Now().Add(time.Hour)
	}
	require.NoError(t, f.store.Save(context.Background(), sess))
}

var ada = domainauth.Identity{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: domainauth.RoleAdmin}

func TestRefresh_NoTokenNoPriorIdentity_AbsentWithoutNotice(t *testing.T) {
	f := newSessionFixture(t)
	f.sessAPI.EXPECT().CurrentUser(gomock.Any()).Times(0)

	res, err := f.svc.Refresh(context.Background(), "sid")
	require.NoError(t, err)
	assert.Nil(t, res.Identity)
	assert.Empty(t, res.Notice)

	_, ok := f.svc.Current(context.Background(), "sid")
	assert.False(t, ok)
}

func TestRefresh_SuccessStoresIdentity(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, domainauth.Session{ID: "sid", Token: "tok"})
	f.sessAPI.EXPECT().CurrentUser(gomock.Any()).Return(ada, nil)

	res, err := f.svc.Refresh(context.Background(), "sid")
	require.NoError(t, err)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "u1", res.Identity.ID)

	cur, ok := f.svc.Current(context.Background(), "sid")
	require.True(t, ok)
	assert.Equal(t, ada, *cur)
}

func TestRefresh_FailureWithPriorIdentity_ClearsAndNotifies(t *testing.T) {
	f := newSessionFixture(t)
	prior := ada
	f.seed(t, domainauth.Session{ID: "sid", Token: "tok", Identity: &prior})
	f.sessAPI.EXPECT().CurrentUser(gomock.Any()).Return(domainauth.Identity{}, apperrors.FromStatus(401, "expired"))

	res, err := f.svc.Refresh(context.Background(), "sid")
	require.NoError(t, err)
	assert.Nil(t, res.Identity)
	assert.Equal(t, MsgSessionExpired, res.Notice)
	assert.Equal(t, 0, f.store.Len())
}

func TestRefresh_FailureOnFirstLoad_NoNotice(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t, domainauth.Session{ID: "sid", Token: "tok"})
	f.sessAPI.EXPECT().CurrentUser(gomock.Any()).Return(domainauth.Identity{}, apperrors.FromStatus(401, "expired"))

	res, err := f.svc.Refresh(context.Background(), "sid")
	require.NoError(t, err)
	assert.Empty(t, res.Notice)
	assert.Equal(t, 0, f.store.Len())
}

func TestClear_DropsEverythingAndRunsHooks(t *testing.T) {
	f := newSessionFixture(t)
	prior := ada
	f.seed(t, domainauth.Session{ID: "sid", Token: "tok", Identity: &prior})
	require.NoError(t, f.transient.Put(context.Background(), "sid", "flash", []byte("[]"), time.Minute))

	var evicted []string
	f.svc.OnClear(func(sid string) { evicted = append(evicted, sid) })

	require.NoError(t, f.svc.Clear(context.Background(), "sid"))
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.transient.Keys("sid"))
	assert.Equal(t, []string{"sid"}, evicted)
}

func TestLogin_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "400 wrong password", err: apperrors.FromStatus(400, "bad"), want: MsgInvalidPassword},
		{name: "401 unknown email", err: apperrors.FromStatus(401, "bad"), want: MsgInvalidEmail},
		{name: "network", err: apperrors.Network(errors.New("refused")), want: MsgNetworkError},
		{name: "other", err: apperrors.FromStatus(500, "boom"), want: MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			f.api.EXPECT().Login(gomock.Any(), model.LoginRequest{Email: "a@b.co", Password: "Secret1!"}).
				Return(model.LoginResponse{}, tt.err)

			_, err := f.svc.Login(context.Background(), "sid", "a@b.co", "Secret1!")
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.MessageOf(err))
			assert.Equal(t, 0, f.store.Len())
		})
	}
}

func TestLogin_StoresTokenWithJWTExpiry(t *testing.T) {
	f := newSessionFixture(t)
	exp := f.now.Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).
		SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	f.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.LoginResponse{Token: token}, nil)
	f.sessAPI.EXPECT().CurrentUser(gomock.Any()).Return(ada, nil)

	id, err := f.svc.Login(context.Background(), "sid", "ada@example.com", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)

	sess, ok := f.svc.Session(context.Background(), "sid")
	require.True(t, ok)
	assert.Equal(t, token, sess.Token)
	assert.True(t, sess.ExpiresAt.Equal(exp), "expires at %v, want %v", sess.ExpiresAt, exp)
}

func TestTokenExpiry_FallsBackForOpaqueTokens(t *testing.T) {
	f := newSessionFixture(t)
	assert.Equal(t, f.now.Add(time.Hour), f.svc.tokenExpiry("opaque-token"))
}

func TestNewSessionService_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() {
		NewSessionService(SessionServiceOptions{})
	})
}
