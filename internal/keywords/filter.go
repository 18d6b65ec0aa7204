// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"strings"
	"unicode/utf8"
)

// DefaultSuggestionLimit is the suggestion count callers use when the
// client does not ask for one.
const DefaultSuggestionLimit = 10

// minSuggestQuery is the shortest query that filters the corpus.
const minSuggestQuery = 2

// MatchMode selects how selected keywords are compared with item keywords.
type MatchMode int

const (
	// MatchSubstring matches when either keyword contains the other,
	// case-insensitively. Used with freshly extracted phrases, whose
	// boundaries vary between texts.
	MatchSubstring MatchMode = iota

	// MatchExact matches on case-insensitive equality. Used with stored
	// keywords.
	MatchExact
)

// ParseMatchMode maps "substring" and "exact" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(s) {
	case "", "substring":
		return MatchSubstring, true
	case "exact":
		return MatchExact, true
	default:
		return MatchSubstring, false
	}
}

// FilterItems returns the items whose keywords match any selected keyword.
// With no selected keywords the input slice itself is returned. A blank
// selected keyword is still a selection: by substring it matches every item
// carrying at least one keyword.
func FilterItems[T any](items []T, selected []string, keywordsOf func(T) []string, mode MatchMode) []T {
	if len(selected) == 0 {
		return items
	}

	wanted := make([]string, len(selected))
	for i, s := range selected {
		wanted[i] = strings.ToLower(s)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAny(keywordsOf(item), wanted, mode) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAny(itemKeywords, wanted []string, mode MatchMode) bool {
	for _, ik := range itemKeywords {
		ik = strings.ToLower(ik)
		for _, w := range wanted {
			switch mode {
			case MatchExact:
				if ik == w {
					return true
				}
			default:
				if strings.Contains(ik, w) || strings.Contains(w, ik) {
					return true
				}
			}
		}
	}
	return false
}

// FilterByText extracts keywords from each item's text with ex and keeps
// the items matching any selected keyword by substring. Items without text
// never match.
func FilterByText[T any](ex Extractor, items []T, selected []string, textOf func(T) string) []T {
	return FilterItems(items, selected, func(item T) []string {
		text := textOf(item)
		if text == "" || ex == nil {
			return nil
		}
		kws := ex.Extract(text)
		out := make([]string, len(kws))
		for i, kw := range kws {
			out[i] = kw.Keyword
		}
		return out
	}, MatchSubstring)
}

// Suggest returns up to limit corpus entries for a partial query. A query
// under two characters returns the head of the corpus; otherwise entries
// containing the query (case-insensitive) are returned in corpus order.
// A non-positive limit returns no entries.
func Suggest[T any](query string, corpus []T, keywordOf func(T) string, limit int) []T {
	if limit <= 0 {
		return []T{}
	}

	if utf8.RuneCountInString(query) < minSuggestQuery {
		if len(corpus) > limit {
			return corpus[:limit]
		}
		return corpus
	}

	q := strings.ToLower(query)
	out := make([]T, 0, limit)
	for _, entry := range corpus {
		if strings.Contains(strings.ToLower(keywordOf(entry)), q) {
			out = append(out, entry)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// SuggestKeywords is Suggest over an ExtractedKeyword corpus.
func SuggestKeywords(query string, corpus []ExtractedKeyword, limit int) []ExtractedKeyword {
	return Suggest(query, corpus, func(k ExtractedKeyword) string { return k.Keyword }, limit)
}
