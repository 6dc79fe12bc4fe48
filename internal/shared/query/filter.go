package query

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageFilter struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and page size to [1, MaxPageSize].
func (f PageFilter) Normalize() PageFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

func (f PageFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.PageSize
}

func (f PageFilter) Limit() int {
	return f.Normalize().PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// Direction returns "asc" or "desc".
func (f SortFilter) Direction() string {
	if f.IsDescending() {
		return "desc"
	}
	return "asc"
}

// ListFilter is what every list use case receives: paging, sorting and
// the parsed predicates.
type ListFilter struct {
	PageFilter
	SortFilter
	Predicates Set
}

type FilterOption func(*ListFilter)

func WithPage(page, pageSize int) FilterOption {
	return func(f *ListFilter) {
		f.Page = page
		f.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(f *ListFilter) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	}
}

func WithPredicates(preds ...Predicate) FilterOption {
	return func(f *ListFilter) {
		f.Predicates = append(f.Predicates, preds...)
	}
}

func NewListFilter(opts ...FilterOption) ListFilter {
	f := ListFilter{
		PageFilter: PageFilter{Page: 1, PageSize: DefaultPageSize},
		SortFilter: SortFilter{SortOrder: "desc"},
	}
	for _, opt := range opts {
		opt(&f)
	}
	f.PageFilter = f.PageFilter.Normalize()
	return f
}
