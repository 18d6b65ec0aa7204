// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"reflect"
	"testing"
)

type taggedItem struct {
	title    string
	keywords []string
}

func itemKeywords(i taggedItem) []string { return i.keywords }

func titles(items []taggedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.title
	}
	return out
}

var catalog = []taggedItem{
	{"Heat", []string{"bank robbery", "detective"}},
	{"Alien", []string{"space station", "alien creature"}},
	{"Fargo", []string{"Kidnapping", "small town"}},
	{"Untagged", nil},
}

func TestFilterItems_EmptySelectionReturnsInput(t *testing.T) {
	t.Parallel()

	for _, selected := range [][]string{nil, {}} {
		got := FilterItems(catalog, selected, itemKeywords, MatchSubstring)
		if len(got) != len(catalog) || &got[0] != &catalog[0] {
			t.Errorf("FilterItems(%q) did not return the input slice", selected)
		}
	}
}

func TestFilterItems_BlankSelection(t *testing.T) {
	t.Parallel()

	names := titles(FilterItems(catalog, []string{""}, itemKeywords, MatchSubstring))
	want := []string{"Heat", "Alien", "Fargo"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("FilterItems([\"\"]) = %v, want %v", names, want)
	}

	if got := FilterItems(catalog, []string{""}, itemKeywords, MatchExact); len(got) != 0 {
		t.Errorf("FilterItems([\"\"], exact) = %v, want none", got)
	}
}

func TestFilterItems_Substring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{"selected inside item keyword", []string{"robbery"}, []string{"Heat"}},
		{"item keyword inside selected", []string{"quiet small town life"}, []string{"Fargo"}},
		{"case insensitive", []string{"KIDNAP"}, []string{"Fargo"}},
		{"any selected matches", []string{"space", "detective"}, []string{"Heat", "Alien"}},
		{"no match", []string{"western"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := titles(FilterItems(catalog, tt.selected, itemKeywords, MatchSubstring))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterItems(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestFilterItems_Exact(t *testing.T) {
	t.Parallel()

	got := titles(FilterItems(catalog, []string{"kidnapping", "robbery"}, itemKeywords, MatchExact))
	if want := []string{"Fargo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FilterItems() = %v, want %v", got, want)
	}
}

func TestFilterByText(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{ID: 1, Text: "A young detective must solve a murder mystery in a small town"},
		{ID: 2, Text: "Astronauts discover an alien signal near Jupiter"},
		{ID: 3, Text: ""},
	}
	r := NewRAKE(DefaultRAKEConfig(), nopLogger())

	got := FilterByText(r, docs, []string{"detective"}, func(d Document) string { return d.Text })
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("FilterByText(detective) = %+v, want doc 1", got)
	}

	got = FilterByText(r, docs, []string{"Alien Signal Detected"}, func(d Document) string { return d.Text })
	if len(got) != 0 {
		t.Errorf("FilterByText() = %+v, want none: neither string contains the other", got)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	corpus := []ExtractedKeyword{
		{Keyword: "time travel", Score: 9},
		{Keyword: "space travel", Score: 7},
		{Keyword: "heist", Score: 5},
		{Keyword: "travel diary", Score: 3},
		{Keyword: "robot", Score: 1},
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"empty query returns head", "", 2, []string{"time travel", "space travel"}},
		{"one char query returns head", "t", 3, []string{"time travel", "space travel", "heist"}},
		{"substring keeps corpus order", "travel", 10, []string{"time travel", "space travel", "travel diary"}},
		{"case insensitive", "TRAV", 2, []string{"time travel", "space travel"}},
		{"no match", "zombie", 10, []string{}},
		{"zero limit", "", 0, []string{}},
		{"negative limit", "travel", -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := keywordStrings(SuggestKeywords(tt.query, corpus, tt.limit))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest(%q, %d) = %v, want %v", tt.query, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   MatchMode
		wantOK bool
	}{
		{"", MatchSubstring, true},
		{"substring", MatchSubstring, true},
		{"EXACT", MatchExact, true},
		{"fuzzy", MatchSubstring, false},
	}
	for _, tt := range tests {
		got, ok := ParseMatchMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMatchMode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
