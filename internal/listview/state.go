// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listview implements the list controller behind the admin table
// screens. A mounted record set flows through three stages (search filter,
// single-column sort, fixed-size pagination) and the result is determined
// entirely by an immutable State value. Every user action is a pure
// transition from one State to the next.
package listview

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 15

// SortDirection is the tri-state sort toggle of a sortable column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// Next returns the direction that follows d when the same column header is
// activated again: none → ascending → descending → none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// String returns the form value for d ("none", "asc", "desc").
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// ParseSortDirection parses a form value. Anything unrecognised is SortNone.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending
	case "desc", "descending":
		return SortDescending
	default:
		return SortNone
	}
}

// State is the complete view state of one mounted list. The zero value is
// the state at mount time: no search, no sort, first page, no pending delete.
type State struct {
	SearchTerm      string
	SortKey         string // empty when no column is sorted
	SortDirection   SortDirection
	Page            int // zero-based
	PendingDeleteID uuid.UUID
}

// WithSearch returns s with a new search term. The page always goes back to
// the first one, since the old index may not exist in the new result.
func (s State) WithSearch(term string) State {
	s.SearchTerm = term
	s.Page = 0
	return s
}

// ToggleSort returns s after the header of column key was activated.
// Repeated activation cycles the direction; switching to another column
// starts it at ascending and drops the previous column's direction.
func (s State) ToggleSort(key string) State {
	if key == "" {
		return s
	}
	if s.SortKey != key {
		s.SortKey = key
		s.SortDirection = SortAscending
		return s
	}
	s.SortDirection = s.SortDirection.Next()
	if s.SortDirection == SortNone {
		s.SortKey = ""
	}
	return s
}

// SetPage returns s pointing at page i, clamped into [0, totalPages-1].
func (s State) SetPage(i, totalPages int) State {
	s.Page = ClampPage(i, totalPages)
	return s
}

// NextPage advances one page. It is a no-op on the last page.
func (s State) NextPage(totalPages int) State {
	if s.Page+1 < totalPages {
		s.Page++
	}
	return s
}

// PreviousPage goes back one page. It is a no-op on the first page.
func (s State) PreviousPage() State {
	if s.Page > 0 {
		s.Page--
	}
	return s
}

// RequestDelete marks id as awaiting confirmation. A pending id is replaced,
// only one confirmation dialog exists at a time.
func (s State) RequestDelete(id uuid.UUID) State {
	s.PendingDeleteID = id
	return s
}

// ResolveDelete closes the confirmation dialog. id is the dialog's result:
// nil when cancelled, the record id when confirmed. The deletion itself
// belongs to the dialog's owner, so both outcomes return to idle.
func (s State) ResolveDelete(id *uuid.UUID) State {
	s.PendingDeleteID = uuid.Nil
	return s
}

// HasPendingDelete reports whether a confirmation dialog should be shown.
func (s State) HasPendingDelete() bool {
	return s.PendingDeleteID != uuid.Nil
}

// Form field names used to carry a State between interactions.
const (
	FieldSearch        = "q"
	FieldSortKey       = "sort"
	FieldSortDirection = "dir"
	FieldPage          = "page"
	FieldPendingDelete = "pending"
)

// Values encodes s as form values. Empty fields are omitted.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.SearchTerm != "" {
		v.Set(FieldSearch, s.SearchTerm)
	}
	if s.SortKey != "" && s.SortDirection != SortNone {
		v.Set(FieldSortKey, s.SortKey)
		v.Set(FieldSortDirection, s.SortDirection.String())
	}
	if s.Page > 0 {
		v.Set(FieldPage, strconv.Itoa(s.Page))
	}
	if s.HasPendingDelete() {
		v.Set(FieldPendingDelete, s.PendingDeleteID.String())
	}
	return v
}

// StateFromValues decodes a State posted back by the browser. Decoding is
// lenient: malformed fields fall back to their mount-time values.
func StateFromValues(v url.Values) State {
	s := State{
		SearchTerm:    v.Get(FieldSearch),
		SortKey:       strings.TrimSpace(v.Get(FieldSortKey)),
		SortDirection: ParseSortDirection(v.Get(FieldSortDirection)),
	}
	if s.SortKey == "" || s.SortDirection == SortNone {
		s.SortKey = ""
		s.SortDirection = SortNone
	}
	if page, err := strconv.Atoi(v.Get(FieldPage)); err == nil && page > 0 {
		s.Page = page
	}
	if id, err := uuid.Parse(v.Get(FieldPendingDelete)); err == nil {
		s.PendingDeleteID = id
	}
	return s
}
