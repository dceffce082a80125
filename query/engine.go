// Package query implements the list engine shared by the projects, testimonials
// and analytics endpoints: filter, search, sort and paginate an in-memory
// collection fetched from the store.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Predicate keeps an item when it returns true.
type Predicate[T any] func(T) bool

// Key extracts one sortable value from an item. Exactly one of the accessor
// fields is set.
type Key[T any] struct {
	String func(T) string
	Number func(T) float64
	Time   func(T) time.Time
	Bool   func(T) bool
}

// Schema describes how the engine sees one entity kind.
type Schema[T any] struct {
	// Searchable returns the fields a search term is matched against.
	Searchable func(T) []string
	// CreatedAt is the fallback sort key and the secondary order.
	CreatedAt func(T) time.Time
	// ID is the last resort order, ascending, so ties never depend on the
	// order rows came back from the store.
	ID   func(T) string
	Keys map[string]Key[T]
}

// Descriptor is the normalized query for one request.
type Descriptor[T any] struct {
	Filters   []Predicate[T]
	Search    string
	SortBy    string
	SortOrder Direction
	Page      int
	PageSize  int
}

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Result is one page of items plus its pagination block.
type Result[T any] struct {
	Items      []T
	Pagination Pagination
}

// Run applies filter, search, sort and paginate in that order. The input slice
// is never modified.
func Run[T any](schema Schema[T], items []T, d Descriptor[T]) Result[T] {
	matched := Filter(schema, items, d.Filters, d.Search)
	Sort(schema, matched, d.SortBy, d.SortOrder)
	return Paginate(matched, d.Page, d.PageSize)
}

// Filter returns the items that satisfy every predicate and, when search is
// non-empty, contain it case-insensitively in at least one searchable field.
func Filter[T any](schema Schema[T], items []T, filters []Predicate[T], search string) []T {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))

next:
	for _, it := range items {
		for _, keep := range filters {
			if keep != nil && !keep(it) {
				continue next
			}
		}
		if term != "" && !matches(schema, it, term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches[T any](schema Schema[T], it T, term string) bool {
	if schema.Searchable == nil {
		return false
	}
	for _, field := range schema.Searchable(it) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Sort orders items in place. Unknown keys fall back to created_at descending.
// Items equal on the key are ordered by created_at descending, then by ID.
func Sort[T any](schema Schema[T], items []T, sortBy string, dir Direction) {
	key, ok := schema.Keys[sortBy]
	if !ok {
		if schema.CreatedAt == nil {
			return
		}
		key = Key[T]{Time: schema.CreatedAt}
		dir = Desc
	}
	if dir != Asc {
		dir = Desc
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.Und, collate.IgnoreCase)
	primary := compareFunc(key, col)

	sort.SliceStable(items, func(i, j int) bool {
		c := primary(items[i], items[j])
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if schema.CreatedAt != nil {
			if c := schema.CreatedAt(items[i]).Compare(schema.CreatedAt(items[j])); c != 0 {
				return c > 0
			}
		}
		if schema.ID != nil {
			return schema.ID(items[i]) < schema.ID(items[j])
		}
		return false
	})
}

func compareFunc[T any](key Key[T], col *collate.Collator) func(a, b T) int {
	switch {
	case key.String != nil:
		return func(a, b T) int {
			return col.CompareString(key.String(a), key.String(b))
		}
	case key.Number != nil:
		return func(a, b T) int {
			return compareFloat(key.Number(a), key.Number(b))
		}
	case key.Time != nil:
		return func(a, b T) int {
			return key.Time(a).Compare(key.Time(b))
		}
	case key.Bool != nil:
		return func(a, b T) int {
			return compareBool(key.Bool(a), key.Bool(b))
		}
	}
	return func(T, T) int { return 0 }
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// false sorts before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}
	return 1
}

// Paginate slices a 1-indexed page out of items. Non-positive page or
// pageSize fall back to the defaults. A page past the end is empty.
func Paginate[T any](items []T, page, pageSize int) Result[T] {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	pageItems := []T{}
	if page <= totalPages {
		offset := (page - 1) * pageSize
		end := total
		if pageSize < total-offset {
			end = offset + pageSize
		}
		pageItems = append(make([]T, 0, end-offset), items[offset:end]...)
	}

	return Result[T]{
		Items: pageItems,
		Pagination: Pagination{
			CurrentPage:     page,
			TotalPages:      totalPages,
			PageSize:        pageSize,
			TotalItems:      total,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}
}
