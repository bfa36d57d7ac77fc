package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

type row struct{ ID string }

// fakeAPI records every query and answers from a scripted page.
type fakeAPI struct {
	mu        sync.Mutex
	queries   []model.ListQuery
	deletes   []string
	page      model.ListPage[row]
	fetchErr  error
	deleteErr error
}

func (a *fakeAPI) fetch(_ context.Context, q model.ListQuery) (model.ListPage[row], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, q)
	if a.fetchErr != nil {
		return model.ListPage[row]{}, a.fetchErr
	}
	p := a.page
	p.Page = q.Page
	return p, nil
}

func (a *fakeAPI) remove(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletes = append(a.deletes, id)
	return a.deleteErr
}

func (a *fakeAPI) calls() []model.ListQuery {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.ListQuery(nil), a.queries...)
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller[row], *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Time{})
	c := NewController(Options[row]{
		Fetch:  api.fetch,
		Delete: api.remove,
		Config: Config{
			Resource: "users",
			Clock:    clock,
			Messages: Messages{Empty: "No users found", Deleted: "User deleted successfully!"},
		},
	})
	t.Cleanup(c.Close)
	return c, clock
}

func threePages() model.ListPage[row] {
	return model.ListPage[row]{
		Items:      []row{{ID: "a"}, {ID: "b"}},
		TotalPages: 3,
		TotalCount: 25,
	}
}

func TestMount_FullLoadThenLoaded(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)

	var phases []Phase
	c.Subscribe(func(s Snapshot[row]) { phases = append(phases, s.Phase) })

	snap := c.Mount(context.Background())
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Equal(t, []Phase{PhaseLoadingFull, PhaseLoaded}, phases)
	require.Len(t, api.calls(), 1)
	assert.Equal(t, model.ListQuery{Page: 1, Limit: 10, Filter: model.RoleFilterAll}, api.calls()[0])

	c.Mount(context.Background())
	assert.Len(t, api.calls(), 1, "second mount does not refetch")
}

func TestLaterLoadsArePartial(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)
	c.Mount(context.Background())

	var phases []Phase
	c.Subscribe(func(s Snapshot[row]) { phases = append(phases, s.Phase) })
	c.GoToPage(context.Background(), 2)

	assert.Equal(t, []Phase{PhaseLoadingPartial, PhaseLoaded}, phases)
}

func TestSearch_DebouncedLastWriterWins(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, clock := newTestController(t, api)
	c.Mount(context.Background())
	c.GoToPage(context.Background(), 3)
	require.Len(t, api.calls(), 2)

	c.SetSearch("a")
	clock.Advance(100 * time.Millisecond)
	c.SetSearch("ad")
	clock.Advance(200 * time.Millisecond)
	c.SetSearch("ada")
	clock.Advance(299 * time.Millisecond)
	assert.Len(t, api.calls(), 2, "no fetch while edits keep arriving")

	clock.Advance(time.Millisecond)
	calls := api.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "ada", calls[2].Search)
	assert.Equal(t, 1, calls[2].Page, "search resets the page")
	assert.Zero(t, clock.Pending())
}

func TestFilter_ResetsPageAndDebounces(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, clock := newTestController(t, api)
	c.Mount(context.Background())
	c.GoToPage(context.Background(), 2)

	c.SetFilter("admin")
	c.SetFilter("user")
	clock.Advance(DefaultDebounce)

	calls := api.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "user", calls[2].Filter)
	assert.Equal(t, 1, calls[2].Page)

	c.SetFilter("")
	clock.Advance(DefaultDebounce)
	assert.Equal(t, model.RoleFilterAll, api.calls()[3].Filter)
}

func TestGoToPage_OneFetchEachAndBounds(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)
	c.Mount(context.Background())

	c.GoToPage(context.Background(), 2)
	c.GoToPage(context.Background(), 3)
	c.GoToPage(context.Background(), 4)
	c.GoToPage(context.Background(), 0)

	calls := api.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 2, calls[1].Page)
	assert.Equal(t, 3, calls[2].Page)
	assert.Equal(t, "21-25 of 25", c.Snapshot().Pager().Range)
}

func TestGoToPage_CancelsPendingDebounce(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, clock := newTestController(t, api)
	c.Mount(context.Background())

	c.SetSearch("x")
	c.GoToPage(context.Background(), 1)
	clock.Advance(time.Second)

	assert.Len(t, api.calls(), 2)
}

func TestDelete_SuccessRefetchesOnce(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)
	c.Mount(context.Background())

	c.RequestDelete("b")
	assert.True(t, c.Snapshot().Pending.Armed())

	msg, err := c.ConfirmDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully!", msg)
	assert.Equal(t, []string{"b"}, api.deletes)
	assert.Len(t, api.calls(), 2, "exactly one refetch")
	assert.False(t, c.Snapshot().Pending.Armed())
}

func TestDelete_FailureLeavesRows(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)
	c.Mount(context.Background())
	before := c.Snapshot().Page

	api.deleteErr = apperrors.WithMessage(apperrors.FromStatus(500, ""), "Failed to delete user. Please try again.")
	c.RequestDelete("a")
	msg, err := c.ConfirmDelete(context.Background())

	require.Error(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, "Failed to delete user. Please try again.", apperrors.MessageOf(err))
	assert.Len(t, api.calls(), 1, "no refetch on failure")
	assert.Equal(t, before, c.Snapshot().Page)
}

func TestCancelDelete_NoAPICall(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)

	c.RequestDelete("a")
	c.CancelDelete()
	msg, err := c.ConfirmDelete(context.Background())

	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Empty(t, api.deletes)
}

func TestFetchError_KeepsRowsAndReportsMessage(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)
	c.Mount(context.Background())

	api.fetchErr = apperrors.WithMessage(errors.New("boom"), "Failed to load users. Please try again.")
	c.GoToPage(context.Background(), 2)

	snap := c.Snapshot()
	assert.Equal(t, "Failed to load users. Please try again.", snap.ErrMessage())
	assert.Len(t, snap.Page.Items, 2)
	assert.Empty(t, snap.EmptyMessage)
}

func TestEmptyMessage(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestController(t, api)

	snap := c.Mount(context.Background())
	assert.Equal(t, "No users found", snap.EmptyMessage)
	assert.Equal(t, "0 of 0", snap.Pager().Range)
}

func TestApply_ReplacesQuery(t *testing.T) {
	api := &fakeAPI{page: threePages()}
	c, _ := newTestController(t, api)

	snap := c.Apply(context.Background(), model.ListQuery{Page: 2, Search: "  bob ", Filter: "admin", Limit: 50})
	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, model.ListQuery{Page: 2, Limit: 10, Search: "bob", Filter: "admin"}, calls[0])
	assert.Equal(t, 2, snap.Query.Page)
}

func TestStaleResponseDropped(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	n := 0

	fetch := func(_ context.Context, q model.ListQuery) (model.ListPage[row], error) {
		mu.Lock()
		n++
		call := n
		mu.Unlock()
		if call == 1 {
			close(slowStarted)
			<-release
			return model.ListPage[row]{Items: []row{{ID: "old"}}, Page: q.Page, TotalPages: 1}, nil
		}
		return model.ListPage[row]{Items: []row{{ID: "new"}}, Page: q.Page, TotalPages: 1}, nil
	}
	c := NewController(Options[row]{
		Fetch:  fetch,
		Delete: func(context.Context, string) error { return nil },
		Config: Config{Clock: NewFakeClock(time.Time{})},
	})
	t.Cleanup(c.Close)

	done := make(chan struct{})
	go func() {
		c.Refetch(context.Background())
		close(done)
	}()
	<-slowStarted
	c.Refetch(context.Background())
	close(release)
	<-done

	snap := c.Snapshot()
	require.Len(t, snap.Page.Items, 1)
	assert.Equal(t, "new", snap.Page.Items[0].ID)
	assert.Equal(t, uint64(2), snap.Generation)
}

func TestNewController_PanicsWithoutFetch(t *testing.T) {
	assert.Panics(t, func() {
		NewController(Options[row]{Delete: func(context.Context, string) error { return nil }})
	})
}
