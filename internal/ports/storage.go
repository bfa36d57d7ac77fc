package ports

import (
	"context"
	"io"
	"time"
)

// ProgressFunc receives the number of bytes handed to the object store so far.
type ProgressFunc func(sent int64)

// ObjectStore uploads objects and issues time-limited read URLs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64, progress ProgressFunc) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
