// Package listing implements the paginated list controller shared by the users
// and categories screens: debounced search and filter, page navigation, delete
// confirmation and a generation guard against out-of-order responses.
package listing

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
)

// DefaultDebounce is the quiet period after the last search or filter edit.
const DefaultDebounce = 300 * time.Millisecond

// Phase is the controller's load state.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseLoadingFull is the first load; the whole screen shows a spinner.
	PhaseLoadingFull
	// PhaseLoadingPartial is any later load; only the table body is dimmed.
	PhaseLoadingPartial
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoadingFull:
		return "loading-full"
	case PhaseLoadingPartial:
		return "loading-partial"
	case PhaseLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// Fetcher loads one page for a query.
type Fetcher[T any] func(ctx context.Context, q model.ListQuery) (model.ListPage[T], error)

// Deleter removes a row by id.
type Deleter func(ctx context.Context, id string) error

// Messages are the user-facing strings of one list screen.
type Messages struct {
	Empty   string
	Deleted string
}

// Config holds the tunables of a Controller.
type Config struct {
	Resource string
	Debounce time.Duration
	PageSize int
	Messages Messages
	Clock    Clock
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Options groups dependencies for NewController.
type Options[T any] struct {
	Fetch  Fetcher[T] // Required
	Delete Deleter    // Required
	Config Config
}

// Snapshot is an immutable view of the controller state for rendering.
type Snapshot[T any] struct {
	Phase   Phase
	Query   model.ListQuery
	Page    model.ListPage[T]
	Pending model.PendingDeletion
	// Err is the last fetch failure; the rows of the previous successful fetch are kept.
	Err error
	// Generation of the fetch whose result is shown.
	Generation uint64
	// EmptyMessage is set when a successful fetch returned no rows.
	EmptyMessage string
}

// ErrMessage returns the toast text of the last fetch failure, or "".
func (s Snapshot[T]) ErrMessage() string {
	if s.Err == nil {
		return ""
	}
	return apperrors.MessageOf(s.Err)
}

// Loading reports whether a fetch is in flight.
func (s Snapshot[T]) Loading() bool {
	return s.Phase == PhaseLoadingFull || s.Phase == PhaseLoadingPartial
}

// Pager builds the pagination strip for the snapshot.
func (s Snapshot[T]) Pager() Pager {
	return Paginate(s.Query.Page, s.Page.TotalPages, s.Page.TotalCount, s.Query.Limit)
}

// Controller is the state of one list screen for one browser session.
// All methods are safe for concurrent use.
type Controller[T any] struct {
	fetch  Fetcher[T]
	remove Deleter
	cfg    Config
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	phase     Phase
	query     model.ListQuery
	page      model.ListPage[T]
	pending   model.PendingDeletion
	lastErr   error
	issued    uint64
	shown     uint64
	debounce  Timer
	listeners map[int]func(Snapshot[T])
	nextID    int
	touched   time.Time
}

// NewController constructs a Controller in PhaseIdle.
func NewController[T any](opts Options[T]) *Controller[T] {
	if opts.Fetch == nil {
		panic("Fetch is required")
	}
	if opts.Delete == nil {
		panic("Delete is required")
	}
	cfg := opts.Config
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = model.DefaultPageSize
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		fetch:     opts.Fetch,
		remove:    opts.Delete,
		cfg:       cfg,
		logger:    logger.With("component", "listing", "resource", cfg.Resource),
		ctx:       ctx,
		cancel:    cancel,
		query:     model.ListQuery{Page: 1, Limit: cfg.PageSize, Filter: model.RoleFilterAll},
		listeners: make(map[int]func(Snapshot[T])),
		touched:   cfg.Clock.Now(),
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	s := Snapshot[T]{
		Phase:      c.phase,
		Query:      c.query,
		Page:       c.page,
		Pending:    c.pending,
		Err:        c.lastErr,
		Generation: c.shown,
	}
	if c.phase == PhaseLoaded && c.lastErr == nil && c.page.Empty() {
		s.EmptyMessage = c.cfg.Messages.Empty
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func unsubscribes.
func (c *Controller[T]) Subscribe(fn func(Snapshot[T])) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Mount performs the initial full load. Later calls only return the current state.
func (c *Controller[T]) Mount(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	idle := c.phase == PhaseIdle
	c.mu.Unlock()
	if idle {
		c.run(ctx)
	}
	return c.Snapshot()
}

// Apply replaces the whole query and fetches immediately. Used by the plain
// HTTP fallback where each request already carries the final inputs.
func (c *Controller[T]) Apply(ctx context.Context, q model.ListQuery) Snapshot[T] {
	q = q.Normalize()
	q.Limit = c.cfg.PageSize
	if q.Filter == "" {
		q.Filter = model.RoleFilterAll
	}
	c.mu.Lock()
	c.stopDebounceLocked()
	c.query = q
	c.mu.Unlock()
	c.run(ctx)
	return c.Snapshot()
}

// SetSearch records new search text, resets to page 1 and restarts the debounce timer.
func (c *Controller[T]) SetSearch(text string) {
	c.mu.Lock()
	c.query.Search = text
	c.query.Page = 1
	c.restartDebounceLocked()
	c.mu.Unlock()
}

// SetFilter records a new role filter, resets to page 1 and restarts the debounce timer.
func (c *Controller[T]) SetFilter(filter string) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = model.RoleFilterAll
	}
	c.mu.Lock()
	c.query.Filter = filter
	c.query.Page = 1
	c.restartDebounceLocked()
	c.mu.Unlock()
}

// GoToPage fetches page p right away. Requests outside [1, totalPages] are ignored.
func (c *Controller[T]) GoToPage(ctx context.Context, p int) {
	c.mu.Lock()
	upper := max(c.page.TotalPages, 1)
	if p < 1 || p > upper {
		c.mu.Unlock()
		return
	}
	c.stopDebounceLocked()
	c.query.Page = p
	c.mu.Unlock()
	c.run(ctx)
}

// Refetch re-runs the current query.
func (c *Controller[T]) Refetch(ctx context.Context) {
	c.run(ctx)
}

// RequestDelete arms the confirmation prompt for id.
func (c *Controller[T]) RequestDelete(id string) {
	c.mu.Lock()
	c.pending = model.PendingDeletion{TargetID: id}
	c.mu.Unlock()
	c.notify()
}

// CancelDelete disarms the prompt without calling the API.
func (c *Controller[T]) CancelDelete() {
	c.mu.Lock()
	c.pending = model.PendingDeletion{}
	c.mu.Unlock()
	c.notify()
}

// ConfirmDelete deletes the armed row. On success the current query is fetched
// once more and the success message is returned; on failure the rows are left
// as they are and the error is returned.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) (string, error) {
	c.mu.Lock()
	target := c.pending.TargetID
	c.pending = model.PendingDeletion{}
	c.mu.Unlock()

	if target == "" {
		return "", nil
	}
	if err := c.remove(ctx, target); err != nil {
		c.logger.WarnContext(ctx, "delete failed", "id", target, "error", err)
		c.notify()
		return "", err
	}
	c.run(ctx)
	return c.cfg.Messages.Deleted, nil
}

// Touched returns the last time the controller saw activity.
func (c *Controller[T]) Touched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}

// Close stops the debounce timer and cancels fetches started by it.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.stopDebounceLocked()
	c.listeners = make(map[int]func(Snapshot[T]))
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller[T]) restartDebounceLocked() {
	c.stopDebounceLocked()
	c.touched = c.cfg.Clock.Now()
	c.debounce = c.cfg.Clock.AfterFunc(c.cfg.Debounce, func() {
		c.run(c.ctx)
	})
}

func (c *Controller[T]) stopDebounceLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

// run issues one fetch for the current query and applies its result unless a
// newer fetch was issued in the meantime.
func (c *Controller[T]) run(ctx context.Context) {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	if c.shown == 0 {
		c.phase = PhaseLoadingFull
	} else {
		c.phase = PhaseLoadingPartial
	}
	q := c.query
	c.touched = c.cfg.Clock.Now()
	c.mu.Unlock()
	c.notify()

	page, err := c.fetch(ctx, q)

	c.mu.Lock()
	if gen != c.issued {
		c.mu.Unlock()
		c.cfg.Metrics.ObserveListFetch(c.cfg.Resource, metrics.ResultStale)
		c.logger.DebugContext(ctx, "dropped stale list response", "generation", gen, "latest", c.issued)
		return
	}
	c.phase = PhaseLoaded
	c.shown = gen
	if err != nil {
		c.lastErr = err
	} else {
		c.lastErr = nil
		c.page = page
		if page.Page > 0 {
			c.query.Page = page.Page
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.cfg.Metrics.ObserveListFetch(c.cfg.Resource, metrics.ResultError)
		c.logger.WarnContext(ctx, "list fetch failed", "error", err)
	} else {
		c.cfg.Metrics.ObserveListFetch(c.cfg.Resource, metrics.ResultSuccess)
	}
	c.notify()
}

func (c *Controller[T]) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	fns := make([]func(Snapshot[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
