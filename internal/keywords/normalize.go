// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import "strings"

// MinTextLength is the shortest normalized text worth extracting from.
const MinTextLength = 10

// Normalize lowercases text, replaces every rune outside [a-z0-9_] with a
// space, collapses whitespace runs and trims both ends.
//
//	Normalize("  The Man-Who  Knew! ") == "the man who knew"
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	return strings.Join(fields, " ")
}

// Tokenize normalizes text and splits it into tokens. ok is false when the
// normalized text is shorter than MinTextLength, in which case there is
// nothing to extract.
func Tokenize(text string) (tokens []string, ok bool) {
	normalized := Normalize(text)
	if len(normalized) < MinTextLength {
		return nil, false
	}
	return strings.Split(normalized, " "), true
}

// NormalizeKeyword lowercases and collapses whitespace without touching
// punctuation. Used as the merge key for keywords that were produced
// elsewhere.
func NormalizeKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}

// isWordRune matches the ASCII word class [A-Za-z0-9_].
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// isWordByte is isWordRune for a single byte of normalized text.
func isWordByte(b byte) bool {
	return isWordRune(rune(b))
}
