//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"fmt"
	"strings"
)

// DefaultPageSize is the fixed page size requested from list endpoints.
const DefaultPageSize = 10

// ListPage is one page of a remote collection. It is replaced wholesale on every fetch.
type ListPage[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalCount int
}

// Empty reports whether the page has no rows.
func (p ListPage[T]) Empty() bool { return len(p.Items) == 0 }

// ListQuery carries the inputs of a list fetch.
type ListQuery struct {
	Page   int
	Limit  int
	Filter string
	Search string
}

// Normalize returns a copy with page and limit defaulted and search trimmed.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Filter = strings.TrimSpace(q.Filter)
	return q
}

// FilterActive reports whether the filter narrows results ("All" and empty do not).
func (q ListQuery) FilterActive() bool {
	f := strings.TrimSpace(q.Filter)
	return f != "" && !strings.EqualFold(f, RoleFilterAll)
}

// RangeText renders the "first-last of total" label for the current page,
// e.g. page 3 of 25 rows with limit 10 gives "21-25 of 25".
func RangeText(page, limit, total int) string {
	if total <= 0 {
		return "0 of 0"
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page-1)*limit + 1
	end := min(page*limit, total)
	return fmt.Sprintf("%d-%d of %d", start, end, total)
}

// PendingDeletion is the armed state of a delete confirmation prompt.
type PendingDeletion struct {
	TargetID string
}

// Armed reports whether a deletion is awaiting confirmation.
func (p PendingDeletion) Armed() bool { return p.TargetID != "" }
