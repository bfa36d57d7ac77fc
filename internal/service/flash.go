package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rushil0704/auth-client-1/internal/ports"
)

const flashKey = "flash"

// Flash kinds map onto toast styles.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a toast that survives one redirect.
type Flash struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Flashes queues toasts in the transient store so they can be shown after a
// redirect. Each toast is one list item.
type Flashes struct {
	store  ports.TransientStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewFlashes creates a flash queue with the given lifetime. A nil logger
// uses slog.Default().
func NewFlashes(store ports.TransientStore, ttl time.Duration, logger *slog.Logger) *Flashes {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flashes{store: store, ttl: ttl, logger: logger.With("component", "flash")}
}

// Push appends a toast for sid. Empty messages are ignored.
func (f *Flashes) Push(ctx context.Context, sid string, flash Flash) error {
	if sid == "" || flash.Message == "" {
		return nil
	}
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	if err := f.store.Append(ctx, sid, flashKey, data, f.ttl); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// Pop returns and removes every queued toast for sid, oldest first.
// Undecodable items are logged and skipped.
func (f *Flashes) Pop(ctx context.Context, sid string) ([]Flash, error) {
	if sid == "" {
		return nil, nil
	}
	items, err := f.store.Drain(ctx, sid, flashKey)
	if err != nil {
		return nil, fmt.Errorf("pop flash: %w", err)
	}
	var out []Flash
	for _, item := range items {
		var fl Flash
		if err := json.Unmarshal(item, &fl); err != nil {
			f.logger.WarnContext(ctx, "dropping malformed flash", "error", err)
			continue
		}
		out = append(out, fl)
	}
	return out, nil
}
