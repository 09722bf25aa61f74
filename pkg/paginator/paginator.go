// Package paginator pages in-memory result sets.
package paginator

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 15
	// MaxLimit caps the page size a client may ask for.
	MaxLimit = 100
)

// PaginateQuery holds the requested page. Page is 1-indexed.
type PaginateQuery struct {
	Page  int   `json:"page,omitempty"`
	Limit int64 `json:"limit,omitempty"`
}

// IsSet reports whether the client asked for paging at all.
func (q PaginateQuery) IsSet() bool {
	return q.Page > 0 || q.Limit > 0
}

// Adjust replaces out-of-range values with the defaults and enforces MaxLimit.
func (q *PaginateQuery) Adjust() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	} else if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Offset is the number of items before the current page.
func (q PaginateQuery) Offset() int64 {
	return int64(q.Page-1) * q.Limit
}

// Paginator describes one page of a result set.
type Paginator struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"perPage"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func newPaginator(total, count int64, q PaginateQuery) Paginator {
	p := Paginator{
		Total:       total,
		Count:       count,
		PerPage:     q.Limit,
		CurrentPage: q.Page,
	}
	if total > 0 && q.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	p.HasNext = p.CurrentPage < p.TotalPages
	p.HasPrev = p.CurrentPage > 1
	return p
}

// Slice returns the requested page of items. A page past the end is empty.
func Slice[T any](items []T, q PaginateQuery) ([]T, Paginator) {
	q.Adjust()

	total := int64(len(items))
	start := q.Offset()
	if start >= total {
		return []T{}, newPaginator(total, 0, q)
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	page := items[start:end]
	return page, newPaginator(total, int64(len(page)), q)
}
