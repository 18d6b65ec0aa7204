// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"strings"

	"github.com/tomtom215/marquee/internal/cache"
)

// Category labels, in the order they are tested.
const (
	CategoryPeople  = "Characters & People"
	CategoryPlaces  = "Places & Locations"
	CategoryThemes  = "Themes & Concepts"
	CategoryActions = "Actions & Events"
	CategoryOther   = "Other"
)

type categoryRule struct {
	category string
	matcher  *cache.PatternMatcher
}

// Triggers are substrings, so "man" also files "romance" under people.
// Order matters: the first group with any trigger wins.
var categoryRules = []categoryRule{
	newCategoryRule(CategoryPeople,
		"character", "man", "woman", "boy", "girl", "hero", "villain", "detective",
		"doctor", "agent", "captain", "king", "queen", "president", "teacher"),
	newCategoryRule(CategoryPlaces,
		"city", "world", "school", "hospital", "space", "planet", "house", "home",
		"office", "island", "country", "town", "village", "forest", "mountain"),
	newCategoryRule(CategoryThemes,
		"love", "death", "power", "friendship", "betrayal", "revenge", "family",
		"secret", "mystery", "truth", "hope", "fear", "justice", "freedom", "peace"),
	newCategoryRule(CategoryActions,
		"fight", "escape", "discover", "battle", "journey", "mission", "investigation",
		"chase", "rescue", "attack", "defense", "search", "hunt", "race", "competition"),
}

func newCategoryRule(category string, triggers ...string) categoryRule {
	return categoryRule{
		category: category,
		matcher:  cache.NewPatternMatcherFromSlice(triggers, category),
	}
}

// Categories returns every label in test order, CategoryOther last.
func Categories() []string {
	out := make([]string, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		out = append(out, r.category)
	}
	return append(out, CategoryOther)
}

// CategoryOf returns the first category whose triggers occur in keyword.
func CategoryOf(keyword string) string {
	kw := strings.ToLower(keyword)
	for _, r := range categoryRules {
		if r.matcher.Contains(kw) {
			return r.category
		}
	}
	return CategoryOther
}

// Categorize buckets items by the category of their keyword, preserving
// input order within each bucket. Empty categories are absent from the
// result.
//
//	Categorize(kws, func(k ExtractedKeyword) string { return k.Keyword })
func Categorize[T any](items []T, keywordOf func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, item := range items {
		c := CategoryOf(keywordOf(item))
		out[c] = append(out[c], item)
	}
	return out
}

// CategoryBucket is one non-empty category with its members.
type CategoryBucket[T any] struct {
	Category string `json:"category"`
	Keywords []T    `json:"keywords"`
}

// CategorizeOrdered is Categorize with buckets returned in category order.
func CategorizeOrdered[T any](items []T, keywordOf func(T) string) []CategoryBucket[T] {
	byCategory := Categorize(items, keywordOf)
	out := make([]CategoryBucket[T], 0, len(byCategory))
	for _, c := range Categories() {
		if members, ok := byCategory[c]; ok {
			out = append(out, CategoryBucket[T]{Category: c, Keywords: members})
		}
	}
	return out
}

// CategorizeKeywords is Categorize for ExtractedKeyword lists.
func CategorizeKeywords(kws []ExtractedKeyword) map[string][]ExtractedKeyword {
	return Categorize(kws, func(k ExtractedKeyword) string { return k.Keyword })
}

// CategorizeStrings is Categorize for plain keyword strings.
func CategorizeStrings(kws []string) map[string][]string {
	return Categorize(kws, func(s string) string { return s })
}
