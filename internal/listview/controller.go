// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listview

import (
	"slices"

	"github.com/google/uuid"
)

// View is what a list shows for one State.
type View[T any] struct {
	Rows       []T
	State      State
	TotalCount int // records in the mounted set
	MatchCount int // records left after the search filter
	TotalPages int
	PageSize   int
	From       int // 1-based index of the first visible row, 0 when empty
	To         int // 1-based index of the last visible row, 0 when empty
}

// Page returns the zero-based index of the visible page.
func (v View[T]) Page() int {
	return v.State.Page
}

// HasPrevious reports whether a previous page exists.
func (v View[T]) HasPrevious() bool {
	return v.State.Page > 0
}

// HasNext reports whether a next page exists.
func (v View[T]) HasNext() bool {
	return v.State.Page+1 < v.TotalPages
}

// Searching reports whether a search term is active.
func (v View[T]) Searching() bool {
	return v.State.SearchTerm != ""
}

// NoMatches reports whether an active search matched nothing. It is a valid
// state, surfaced as a styling cue rather than an error.
func (v View[T]) NoMatches() bool {
	return v.Searching() && v.MatchCount == 0
}

// PageNumbers lists the zero-based indexes of all pages.
func (v View[T]) PageNumbers() []int {
	pages := make([]int, v.TotalPages)
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// SortDirectionFor returns the direction of column key, SortNone when
// another column (or none) is sorted.
func (v View[T]) SortDirectionFor(key string) SortDirection {
	if v.State.SortKey != key {
		return SortNone
	}
	return v.State.SortDirection
}

type subscriber[T any] struct {
	id int
	fn func(View[T])
}

// Controller owns the State of one mounted list and recomputes the view on
// every transition. It is not safe for concurrent use; each mounted view
// (or each request restoring one) gets its own Controller.
type Controller[T any] struct {
	records []T
	cfg     Config[T]
	state   State
	view    View[T]

	subs   []subscriber[T]
	nextID int
}

// New mounts a controller over records. The records are copied and never
// modified; the initial state is the zero State.
func New[T any](records []T, cfg Config[T]) *Controller[T] {
	c := &Controller[T]{
		records: slices.Clone(records),
		cfg:     cfg,
	}
	c.view, c.state = Compute(c.records, State{}, cfg)
	return c
}

// State returns the current (normalised) state.
func (c *Controller[T]) State() State {
	return c.state
}

// View returns the current view.
func (c *Controller[T]) View() View[T] {
	return c.view
}

// Subscribe registers fn to be called with the new view after every
// transition. The returned function removes the subscription.
func (c *Controller[T]) Subscribe(fn func(View[T])) func() {
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber[T]) bool { return s.id == id })
	}
}

// Restore replaces the state wholesale, e.g. with one posted back by the
// browser. The page is re-clamped like on any other transition.
func (c *Controller[T]) Restore(s State) View[T] {
	return c.apply(s)
}

// Search sets the search term and returns to the first page.
func (c *Controller[T]) Search(term string) View[T] {
	return c.apply(c.state.WithSearch(term))
}

// Sortable reports whether key names a configured column.
func (c *Controller[T]) Sortable(key string) bool {
	_, ok := c.cfg.column(key)
	return ok
}

// ToggleSort activates the header of column key.
func (c *Controller[T]) ToggleSort(key string) View[T] {
	return c.apply(c.state.ToggleSort(key))
}

// SetPage moves to page i, clamped to the existing pages.
func (c *Controller[T]) SetPage(i int) View[T] {
	return c.apply(c.state.SetPage(i, c.view.TotalPages))
}

// NextPage moves forward one page; no-op on the last page.
func (c *Controller[T]) NextPage() View[T] {
	return c.apply(c.state.NextPage(c.view.TotalPages))
}

// PreviousPage moves back one page; no-op on the first page.
func (c *Controller[T]) PreviousPage() View[T] {
	return c.apply(c.state.PreviousPage())
}

// RequestDelete opens the confirmation dialog for id.
func (c *Controller[T]) RequestDelete(id uuid.UUID) View[T] {
	return c.apply(c.state.RequestDelete(id))
}

// ResolveDelete closes the confirmation dialog with its result (nil when
// cancelled). The record set is left alone: removal is not optimistic.
func (c *Controller[T]) ResolveDelete(id *uuid.UUID) View[T] {
	return c.apply(c.state.ResolveDelete(id))
}

func (c *Controller[T]) apply(next State) View[T] {
	c.view, c.state = Compute(c.records, next, c.cfg)
	for _, s := range slices.Clone(c.subs) {
		s.fn(c.view)
	}
	return c.view
}
