// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listview

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// item is a minimal record used by the listview tests.
type item struct {
	ID   uuid.UUID
	Name string
}

func itemName(it item) string { return it.Name }

func makeItems(names ...string) []item {
	items := make([]item, len(names))
	for i, n := range names {
		items[i] = item{ID: uuid.New(), Name: n}
	}
	return items
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

// numbered returns records named prefix1..prefixN in that order.
func numbered(prefix string, n int) []item {
	ns := make([]string, n)
	for i := range ns {
		ns[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return makeItems(ns...)
}

func testConfig() Config[item] {
	return Config[item]{
		SearchField: itemName,
		Columns: []Column[item]{
			{Key: "name", Label: "Name", Value: itemName},
		},
		Locale: language.English,
	}
}

func TestFilter(t *testing.T) {
	records := makeItems("Electronics", "Office Supplies", "electric tools", "Food", "a.b*c")

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps all", "", []string{"Electronics", "Office Supplies", "electric tools", "Food", "a.b*c"}},
		{"case insensitive", "ELECTR", []string{"Electronics", "electric tools"}},
		{"substring in the middle", "supp", []string{"Office Supplies"}},
		{"no match", "zzz", []string{}},
		{"dot is literal", ".", []string{"a.b*c"}},
		{"star is literal", "b*c", []string{"a.b*c"}},
		{"regex syntax is not a pattern", "e.*s", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(records, tt.term, itemName))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%q): got %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilterIsSubsetAndMatches(t *testing.T) {
	records := makeItems("Alpha", "beta", "GAMMA", "alphabet", "Delta", "Lambda")

	for _, term := range []string{"a", "AL", "mm", "ta", "x", "Bet"} {
		got := Filter(records, term, itemName)
		for _, rec := range got {
			if !slices.Contains(records, rec) {
				t.Errorf("Filter(%q): %v is not in the input", term, rec)
			}
			if !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(term)) {
				t.Errorf("Filter(%q): %q does not contain the term", term, rec.Name)
			}
		}
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	records := makeItems("b", "a", "c")
	before := slices.Clone(records)

	got := Filter(records, "", itemName)
	got[0].Name = "changed"

	if !slices.Equal(records, before) {
		t.Errorf("input modified: got %v, want %v", records, before)
	}
}

func TestSortAscending(t *testing.T) {
	records := makeItems("pear", "Apple", "banana", "apple", "Cherry")

	got := names(Sort(records, SortAscending, itemName, language.English))
	want := []string{"apple", "Apple", "banana", "Cherry", "pear"}
	if !slices.Equal(got, want) {
		t.Errorf("ascending: got %v, want %v", got, want)
	}
}

func TestSortIsLocaleAware(t *testing.T) {
	// A byte-wise comparison would put "Zebra" before "apple" and "éclair"
	// after "zucchini".
	records := makeItems("zucchini", "éclair", "Zebra", "apple", "Eggs")

	got := names(Sort(records, SortAscending, itemName, language.French))
	want := []string{"apple", "éclair", "Eggs", "Zebra", "zucchini"}
	if !slices.Equal(got, want) {
		t.Errorf("locale-aware ascending: got %v, want %v", got, want)
	}
}

func TestSortDescendingIsReverseOfAscending(t *testing.T) {
	// Duplicate names make the tie order observable.
	records := []item{
		{ID: uuid.New(), Name: "Tools"},
		{ID: uuid.New(), Name: "Books"},
		{ID: uuid.New(), Name: "Tools"},
		{ID: uuid.New(), Name: "Audio"},
		{ID: uuid.New(), Name: "Books"},
	}

	asc := Sort(records, SortAscending, itemName, language.English)
	desc := Sort(records, SortDescending, itemName, language.English)

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	if !slices.Equal(desc, reversed) {
		t.Errorf("descending: got %v, want reverse of ascending %v", desc, reversed)
	}
}

func TestSortIsStable(t *testing.T) {
	first := item{ID: uuid.New(), Name: "Same"}
	second := item{ID: uuid.New(), Name: "Same"}
	records := []item{first, {ID: uuid.New(), Name: "Aaa"}, second}

	got := Sort(records, SortAscending, itemName, language.English)
	if got[1] != first || got[2] != second {
		t.Errorf("equal keys reordered: got %v", got)
	}
}

func TestSortNoneKeepsOrder(t *testing.T) {
	records := makeItems("c", "a", "b")

	got := Sort(records, SortNone, itemName, language.English)
	if !slices.Equal(got, records) {
		t.Errorf("none: got %v, want %v", names(got), names(records))
	}
}

func TestSortIsPermutation(t *testing.T) {
	records := makeItems("delta", "alpha", "charlie", "bravo", "alpha")

	got := Sort(records, SortAscending, itemName, language.English)
	if len(got) != len(records) {
		t.Fatalf("length: got %d, want %d", len(got), len(records))
	}
	for _, rec := range records {
		if !slices.Contains(got, rec) {
			t.Errorf("record %v missing from sorted output", rec)
		}
	}
	if !slices.IsSortedFunc(names(got), strings.Compare) {
		t.Errorf("not ordered: %v", names(got))
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 15, 1},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{20, 15, 2},
		{30, 15, 2},
		{31, 15, 3},
		{10, 0, 1}, // zero size falls back to the default
		{-3, 15, 1},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d): got %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{0, 1, 0},
		{-1, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{100, 2, 1},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d): got %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	records := numbered("C", 20)

	tests := []struct {
		name string
		page int
		want []string
	}{
		{"first page", 0, names(records[:15])},
		{"last partial page", 1, []string{"C16", "C17", "C18", "C19", "C20"}},
		{"past the end", 2, []string{}},
		{"negative page", -1, names(records[:15])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Paginate(records, tt.page, 15))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Paginate(page=%d): got %v, want %v", tt.page, got, tt.want)
			}
		})
	}
}

func TestComputeTwentyRecords(t *testing.T) {
	records := numbered("C", 20)
	cfg := testConfig()

	v, _ := Compute(records, State{}, cfg)
	if v.TotalPages != 2 {
		t.Errorf("total pages: got %d, want 2", v.TotalPages)
	}
	if got, want := names(v.Rows), names(records[:15]); !slices.Equal(got, want) {
		t.Errorf("page 0: got %v, want %v", got, want)
	}
	if v.From != 1 || v.To != 15 {
		t.Errorf("range: got %d-%d, want 1-15", v.From, v.To)
	}

	v, _ = Compute(records, State{Page: 1}, cfg)
	if got, want := names(v.Rows), []string{"C16", "C17", "C18", "C19", "C20"}; !slices.Equal(got, want) {
		t.Errorf("page 1: got %v, want %v", got, want)
	}
	if v.From != 16 || v.To != 20 {
		t.Errorf("range: got %d-%d, want 16-20", v.From, v.To)
	}
}

func TestComputeNoMatches(t *testing.T) {
	records := numbered("C", 20)

	v, st := Compute(records, State{SearchTerm: "zzz", Page: 1}, testConfig())
	if len(v.Rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(v.Rows))
	}
	if v.TotalPages != 1 {
		t.Errorf("total pages: got %d, want 1", v.TotalPages)
	}
	if st.Page != 0 {
		t.Errorf("page: got %d, want 0", st.Page)
	}
	if !v.NoMatches() {
		t.Error("NoMatches should be true")
	}
	if v.From != 0 || v.To != 0 {
		t.Errorf("range: got %d-%d, want 0-0", v.From, v.To)
	}
}

func TestComputeDropsUnknownSortKey(t *testing.T) {
	records := makeItems("b", "a")

	v, st := Compute(records, State{SortKey: "price", SortDirection: SortAscending}, testConfig())
	if st.SortKey != "" || st.SortDirection != SortNone {
		t.Errorf("state: got key %q dir %v, want none", st.SortKey, st.SortDirection)
	}
	if got := names(v.Rows); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("rows: got %v, want input order", got)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	records := makeItems("Kitchen", "Garden", "Office", "Garage", "Gaming", "Toys")
	st := State{SearchTerm: "ga", SortKey: "name", SortDirection: SortDescending}

	v1, st1 := Compute(records, st, testConfig())
	v2, st2 := Compute(records, st1, testConfig())

	if st1 != st2 {
		t.Errorf("state changed on recompute: %+v vs %+v", st1, st2)
	}
	if !slices.Equal(v1.Rows, v2.Rows) {
		t.Errorf("rows changed on recompute: %v vs %v", names(v1.Rows), names(v2.Rows))
	}
	if got, want := names(v1.Rows), []string{"Gaming", "Garden", "Garage"}; !slices.Equal(got, want) {
		t.Errorf("rows: got %v, want %v", got, want)
	}
}
