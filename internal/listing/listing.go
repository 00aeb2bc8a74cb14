// Package listing filters and paginates an in-memory snapshot of rows the
// way the dashboard tables do: case-insensitive substring search over a fixed
// set of fields, then fixed-size page slicing with page clamping.
package listing

import "strings"

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 10

// Query holds the table controls sent by the dashboard.
type Query struct {
	Search        string
	Status        string
	PaymentStatus string
	Tab           string
	Page          int
	PageSize      int
}

// Page is one slice of a filtered snapshot.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Filter keeps the rows for which keep returns true, preserving order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Paginate slices rows into the requested page. page < 1 is treated as 1 and
// a page past the end clamps to the last page, or 1 when rows is empty.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(rows)
	totalPages := (total + size - 1) / size

	if page < 1 {
		page = 1
	}
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, rows[start:end])

	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Apply filters rows with keep and returns the requested page.
func Apply[T any](rows []T, q Query, keep func(T) bool) Page[T] {
	return Paginate(Filter(rows, keep), q.Page, q.PageSize)
}

// Matcher does case-insensitive substring search over a row's fields.
type Matcher struct {
	needle string
}

// NewMatcher prepares a search term. An empty term matches everything.
func NewMatcher(search string) Matcher {
	return Matcher{needle: strings.ToLower(strings.TrimSpace(search))}
}

// Empty reports whether the matcher accepts every row.
func (m Matcher) Empty() bool {
	return m.needle == ""
}

// Match reports whether any of the values contains the search term.
func (m Matcher) Match(values ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, v := range values {
		if v != "" && strings.Contains(strings.ToLower(v), m.needle) {
			return true
		}
	}
	return false
}

// MatchPtr is Match over optional values.
func (m Matcher) MatchPtr(values ...*string) bool {
	if m.needle == "" {
		return true
	}
	for _, v := range values {
		if v != nil && m.Match(*v) {
			return true
		}
	}
	return false
}

// EqualFoldOrAll reports whether want is empty or "all", or equals got ignoring case.
func EqualFoldOrAll(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}
