package apiclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// ErrNoToken is returned by the token source when the session holds no bearer token.
var ErrNoToken = errors.New("apiclient: no token in session")

const tokenLookupTimeout = 2 * time.Second

// sessionTokenSource reads the bearer token from the session store on every call.
// It is deliberately not wrapped in oauth2.ReuseTokenSource.
type sessionTokenSource struct {
	store ports.SessionStore
	sid   string
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenLookupTimeout)
	defer cancel()

	sess, err := s.store.Get(ctx, s.sid)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("read session token: %w", err)
	}
	if !sess.HasToken() {
		return nil, ErrNoToken
	}
	return &oauth2.Token{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Expiry:      sess.ExpiresAt,
	}, nil
}
