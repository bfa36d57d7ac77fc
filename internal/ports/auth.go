// Package ports defines interfaces (hexagonal ports) for the console.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/service.
package ports

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
)

// ErrNotFound is returned by stores when a key is absent.
var ErrNotFound = errors.New("not found")

// SessionStore persists and retrieves browser sessions (token plus cached identity).
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TransientStore keeps short-lived per-session blobs: flash toasts and upload scratch data.
// Everything stored for a session is dropped by Clear.
type TransientStore interface {
	Put(ctx context.Context, sid, key string, data []byte, ttl time.Duration) error
	Get(ctx context.Context, sid, key string) ([]byte, error)
	Delete(ctx context.Context, sid, key string) error
	Clear(ctx context.Context, sid string) error

	// Append adds item to the end of the list under key. Concurrent appends
	// never lose items.
	Append(ctx context.Context, sid, key string, item []byte, ttl time.Duration) error
	// Drain atomically returns and removes every item appended under key,
	// oldest first. An absent list yields no items and no error.
	Drain(ctx context.Context, sid, key string) ([][]byte, error)
}
