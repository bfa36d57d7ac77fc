package listing

import (
	"strconv"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// PageLink is one control in the pagination strip.
type PageLink struct {
	Label    string
	Page     int
	Current  bool
	Disabled bool
	Ellipsis bool
}

// Pager is the full pagination strip for a list page.
type Pager struct {
	First  PageLink
	Prev   PageLink
	Next   PageLink
	Last   PageLink
	Window []PageLink
	Range  string
}

// Paginate builds the strip for page p of totalPages. The window is {p-1, p, p+1}
// clamped to [1, totalPages], with the first and last pages always reachable.
func Paginate(page, totalPages, totalCount, limit int) Pager {
	if page < 1 {
		page = 1
	}
	atStart := page <= 1
	atEnd := totalPages == 0 || page >= totalPages

	p := Pager{
		First: PageLink{Label: "First", Page: 1, Disabled: atStart},
		Prev:  PageLink{Label: "Previous", Page: max(page-1, 1), Disabled: atStart},
		Next:  PageLink{Label: "Next", Page: min(page+1, max(totalPages, 1)), Disabled: atEnd},
		Last:  PageLink{Label: "Last", Page: max(totalPages, 1), Disabled: atEnd},
		Range: model.RangeText(page, limit, totalCount),
	}

	if totalPages == 0 {
		p.Window = []PageLink{{Label: "1", Page: 1, Current: true, Disabled: true}}
		return p
	}

	start := max(page-1, 1)
	end := min(page+1, totalPages)

	switch {
	case start == 2:
		p.Window = append(p.Window, numbered(1, page))
	case start > 2:
		p.Window = append(p.Window, numbered(1, page), ellipsis())
	}
	for n := start; n <= end; n++ {
		p.Window = append(p.Window, numbered(n, page))
	}
	switch {
	case end == totalPages-1:
		p.Window = append(p.Window, numbered(totalPages, page))
	case end < totalPages-1:
		p.Window = append(p.Window, ellipsis(), numbered(totalPages, page))
	}
	return p
}

func numbered(n, current int) PageLink {
	return PageLink{Label: strconv.Itoa(n), Page: n, Current: n == current}
}

func ellipsis() PageLink {
	return PageLink{Label: "…", Ellipsis: true, Disabled: true}
}
