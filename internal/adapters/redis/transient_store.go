package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// TransientStore keeps per-session scratch data under "transient:{sid}:<key>".
// The braces form a cluster hash tag so every key of one session, and the
// index set listing them, live in the same slot and Clear can delete them in one call.
type TransientStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.TransientStore = (*TransientStore)(nil)

// NewTransientStore creates a transient store using the "transient:" prefix.
func NewTransientStore(client redis.UniversalClient) *TransientStore {
	return NewTransientStoreWithPrefix(client, "transient:")
}

// NewTransientStoreWithPrefix creates a transient store with a custom key prefix.
func NewTransientStoreWithPrefix(client redis.UniversalClient, prefix string) *TransientStore {
	return &TransientStore{client: client, prefix: prefix}
}

func (s *TransientStore) key(sid, key string) string {
	return fmt.Sprintf("%s{%s}:%s", s.prefix, sid, key)
}

func (s *TransientStore) indexKey(sid string) string {
	return fmt.Sprintf("%s{%s}:__index", s.prefix, sid)
}

// Put stores data for ttl and records the key in the session index.
func (s *TransientStore) Put(ctx context.Context, sid, key string, data []byte, ttl time.Duration) error {
	if sid == "" || key == "" {
		return errors.New("transient store: session id and key are required")
	}
	if ttl <= 0 {
		return errors.New("transient store: ttl must be positive")
	}

	full := s.key(sid, key)
	idx := s.indexKey(sid)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, full, data, ttl)
		p.SAdd(ctx, idx, full)
		p.Expire(ctx, idx, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("transient put: %w", err)
	}
	return nil
}

// Get returns ports.ErrNotFound when the key is absent or expired.
func (s *TransientStore) Get(ctx context.Context, sid, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sid, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("transient get: %w", err)
	}
	return data, nil
}

func (s *TransientStore) Delete(ctx context.Context, sid, key string) error {
	full := s.key(sid, key)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, full)
		p.SRem(ctx, s.indexKey(sid), full)
		return nil
	})
	if err != nil {
		return fmt.Errorf("transient delete: %w", err)
	}
	return nil
}

// Append pushes item onto a Redis list, so concurrent writers for one
// session never overwrite each other.
func (s *TransientStore) Append(ctx context.Context, sid, key string, item []byte, ttl time.Duration) error {
	if sid == "" || key == "" {
		return errors.New("transient store: session id and key are required")
	}
	if ttl <= 0 {
		return errors.New("transient store: ttl must be positive")
	}
	full := s.key(sid, key)
	idx := s.indexKey(sid)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, full, item)
		p.Expire(ctx, full, ttl)
		p.SAdd(ctx, idx, full)
		p.Expire(ctx, idx, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("transient append: %w", err)
	}
	return nil
}

// Drain reads and deletes the list in one MULTI block.
func (s *TransientStore) Drain(ctx context.Context, sid, key string) ([][]byte, error) {
	full := s.key(sid, key)
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		items = p.LRange(ctx, full, 0, -1)
		p.Del(ctx, full)
		p.SRem(ctx, s.indexKey(sid), full)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("transient drain: %w", err)
	}
	vals := items.Val()
	if len(vals) == 0 {
		return nil, nil
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

// Clear removes every key recorded for the session.
func (s *TransientStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	idx := s.indexKey(sid)
	keys, err := s.client.SMembers(ctx, idx).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("transient index: %w", err)
	}
	keys = append(keys, idx)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("transient clear: %w", err)
	}
	return nil
}
