// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "The Dark Knight", "the dark knight"},
		{"punctuation to space", "man-eating, shark!", "man eating shark"},
		{"collapse whitespace", "  two \t\n  words  ", "two words"},
		{"keeps digits and underscore", "Area_51 in 1999", "area_51 in 1999"},
		{"apostrophe splits", "Ocean's Eleven", "ocean s eleven"},
		{"non ascii letters removed", "café crème", "caf cr me"},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"", "hi there", "a.b.c", "   short!   "} {
			if tokens, ok := Tokenize(in); ok || tokens != nil {
				t.Errorf("Tokenize(%q) = %v, %v, want nil, false", in, tokens, ok)
			}
		}
	})

	t.Run("exactly minimum length", func(t *testing.T) {
		t.Parallel()
		tokens, ok := Tokenize("abcde fghi")
		if !ok {
			t.Fatal("Tokenize() ok = false, want true")
		}
		if want := []string{"abcde", "fghi"}; !reflect.DeepEqual(tokens, want) {
			t.Errorf("Tokenize() = %v, want %v", tokens, want)
		}
	})
}

func TestNormalizeKeyword(t *testing.T) {
	t.Parallel()

	if got := NormalizeKeyword("  Time   TRAVEL "); got != "time travel" {
		t.Errorf("NormalizeKeyword() = %q, want %q", got, "time travel")
	}
}
