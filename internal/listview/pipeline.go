// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listview

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter returns the records whose field contains term, ignoring case.
// The term is matched literally. An empty term keeps every record.
// The input slice is never modified.
func Filter[T any](records []T, term string, field func(T) string) []T {
	if term == "" || field == nil {
		return slices.Clone(records)
	}

	needle := strings.ToLower(term)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// Sort returns records ordered by value using the collation rules of tag.
// SortNone keeps the input order. SortDescending is the ascending result
// reversed, so ties come out in the exact reverse of the ascending order.
func Sort[T any](records []T, dir SortDirection, value func(T) string, tag language.Tag) []T {
	out := slices.Clone(records)
	if dir == SortNone || value == nil || len(out) < 2 {
		return out
	}

	// Collators keep internal buffers; one per call keeps Sort safe to run
	// from concurrent requests.
	col := collate.New(tag)
	slices.SortStableFunc(out, func(a, b T) int {
		return col.CompareString(value(a), value(b))
	})

	if dir == SortDescending {
		slices.Reverse(out)
	}
	return out
}

// TotalPages returns the number of pages needed for count rows. An empty
// result still has one (empty) page.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage forces page into [0, totalPages-1].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return max(0, min(page, totalPages-1))
}

// Paginate returns the rows of page, clamped to the bounds of records.
func Paginate[T any](records []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	start := max(0, page) * size
	if start > len(records) {
		start = len(records)
	}
	end := min(start+size, len(records))
	return slices.Clone(records[start:end])
}

// Column is a sortable column of a list.
type Column[T any] struct {
	Key   string         // form value identifying the column
	Label string         // header text
	Value func(T) string // sort key of a row
}

// Config describes how a list of T is searched, sorted and paged.
type Config[T any] struct {
	SearchField func(T) string
	Columns     []Column[T]
	PageSize    int          // DefaultPageSize when zero
	Locale      language.Tag // collation locale for sorting
}

func (c Config[T]) pageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

func (c Config[T]) column(key string) (Column[T], bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// Compute runs filter → sort → page for state over records. It returns the
// visible view and the normalised state: unknown sort keys are dropped and
// the page is re-clamped against the new page count.
func Compute[T any](records []T, state State, cfg Config[T]) (View[T], State) {
	size := cfg.pageSize()

	matched := Filter(records, state.SearchTerm, cfg.SearchField)

	var value func(T) string
	if col, ok := cfg.column(state.SortKey); ok && state.SortDirection != SortNone {
		value = col.Value
	} else {
		state.SortKey = ""
		state.SortDirection = SortNone
	}
	ordered := Sort(matched, state.SortDirection, value, cfg.Locale)

	totalPages := TotalPages(len(ordered), size)
	state.Page = ClampPage(state.Page, totalPages)
	rows := Paginate(ordered, state.Page, size)

	v := View[T]{
		Rows:       rows,
		State:      state,
		TotalCount: len(records),
		MatchCount: len(ordered),
		TotalPages: totalPages,
		PageSize:   size,
	}
	if len(rows) > 0 {
		v.From = state.Page*size + 1
		v.To = v.From + len(rows) - 1
	}
	return v, state
}
