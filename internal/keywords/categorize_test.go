// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"reflect"
	"testing"
)

func TestCategorizeStrings_Example(t *testing.T) {
	t.Parallel()

	got := CategorizeStrings([]string{"detective", "forest", "betrayal", "zebra"})
	want := map[string][]string{
		CategoryPeople: {"detective"},
		CategoryPlaces: {"forest"},
		CategoryThemes: {"betrayal"},
		CategoryOther:  {"zebra"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategorizeStrings() = %v, want %v", got, want)
	}
	if _, ok := got[CategoryActions]; ok {
		t.Errorf("empty category %q present", CategoryActions)
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword string
		want    string
	}{
		{"evil queen", CategoryPeople},
		{"Space Captain", CategoryPeople}, // people is tested before places
		{"romance", CategoryPeople},       // contains "man"
		{"haunted house", CategoryPlaces},
		{"planet", CategoryPlaces},
		{"family secret", CategoryThemes},
		{"murder mystery", CategoryThemes},
		{"prison escape", CategoryActions},
		{"treasure hunt", CategoryActions},
		{"love and war", CategoryThemes},
		{"zebra", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.keyword); got != tt.want {
			t.Errorf("CategoryOf(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}

func TestCategorize_Idempotent(t *testing.T) {
	t.Parallel()

	kws := []ExtractedKeyword{
		{Keyword: "young detective", Score: 4, Frequency: 2},
		{Keyword: "small town", Score: 4, Frequency: 2},
		{Keyword: "murder mystery", Score: 4, Frequency: 3},
		{Keyword: "bank robbery", Score: 2, Frequency: 2},
		{Keyword: "car chase", Score: 1, Frequency: 2},
	}

	first := CategorizeKeywords(kws)
	second := CategorizeKeywords(kws)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run = %v, want %v", second, first)
	}

	total := 0
	for _, members := range first {
		if len(members) == 0 {
			t.Error("empty bucket present")
		}
		total += len(members)
	}
	if total != len(kws) {
		t.Errorf("bucketed %d keywords, want %d", total, len(kws))
	}
}

func TestCategorizeOrdered(t *testing.T) {
	t.Parallel()

	got := CategorizeOrdered([]string{"zebra", "car chase", "old king", "island", "zoo keeper"}, func(s string) string { return s })

	var order []string
	for _, b := range got {
		order = append(order, b.Category)
	}
	want := []string{CategoryPeople, CategoryPlaces, CategoryActions, CategoryOther}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("bucket order = %v, want %v", order, want)
	}
	if other := got[len(got)-1].Keywords; !reflect.DeepEqual(other, []string{"zebra", "zoo keeper"}) {
		t.Errorf("Other = %v, want [zebra zoo keeper]", other)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	want := []string{CategoryPeople, CategoryPlaces, CategoryThemes, CategoryActions, CategoryOther}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
