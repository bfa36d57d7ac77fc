package viewmodel

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Rushil0704/auth-client-1/internal/listing"
)

// Row is one table row with the viewer's permissions on it.
type Row[T any] struct {
	Item      T
	CanEdit   bool
	CanDelete bool
}

// ListView is everything a list screen template needs: rows, pager, the active
// query, load state and the pending delete confirmation.
type ListView[T any] struct {
	Resource string
	BasePath string
	EditPath string

	Rows    []Row[T]
	Pager   listing.Pager
	Search  string
	Filter  string
	Filters []string

	// Loading is "full", "partial" or "" when idle.
	Loading      string
	EmptyMessage string
	ErrorMessage string

	PendingID    string
	PendingLabel string
}

// Empty reports whether there are no rows to show.
func (v ListView[T]) Empty() bool { return len(v.Rows) == 0 }

// PageURL links to page n, keeping the current search and filter.
func (v ListView[T]) PageURL(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if f := strings.TrimSpace(v.Filter); f != "" && f != "All" {
		q.Set("role", f)
	}
	if s := strings.TrimSpace(v.Search); s != "" {
		q.Set("search", s)
	}
	return v.BasePath + "?" + q.Encode()
}

// EditURL links to the edit screen of a row.
func (v ListView[T]) EditURL(id string) string {
	return v.EditPath + "/" + url.PathEscape(id)
}
