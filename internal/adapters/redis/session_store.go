// Package redis holds the Redis-backed stores for browser sessions and the
// short-lived per-session data (flash toasts, upload state) hanging off them.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// SessionStore keeps one JSON document per browser session. Each key expires
// together with the API token it carries.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore uses the "session:" key prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "session:")
}

// NewSessionStoreWithPrefix lets several consoles share one Redis DB.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix, now: time.Now}
}

// Save writes sess; a session already past ExpiresAt is refused.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session store: empty session id")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session store: session %s already expired", sess.ID)
	}
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sess.ID, doc, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns ports.ErrNotFound for unknown and expired sessions.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	var sess domainauth.Session
	if id == "" {
		return sess, ports.ErrNotFound
	}
	doc, err := s.client.Get(ctx, s.prefix+id).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return sess, ports.ErrNotFound
	case err != nil:
		return sess, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(doc, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	// Redis TTLs are rounded, so a key can outlive its ExpiresAt briefly.
	if !s.now().Before(sess.ExpiresAt) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, err
		}
		return domainauth.Session{}, ports.ErrNotFound
	}
	return sess, nil
}

// Delete is a no-op for unknown ids.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
