// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"reflect"
	"testing"
)

func TestVocabularyMatcher_TimeTravel(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(VocabularyEntry{ID: 1, Name: "time travel"})
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("A story about time travel and time travel paradoxes")
	if len(got) != 1 {
		t.Fatalf("Extract() = %+v, want one keyword", got)
	}
	kw := got[0]
	if kw.Keyword != "time travel" || kw.Frequency != 2 || kw.ID != 1 {
		t.Errorf("Extract()[0] = %+v, want time travel x2 with id 1", kw)
	}
	if want := 2 * 2 * 1.1; !almostEqual(kw.Score, want) {
		t.Errorf("score = %v, want %v", kw.Score, want)
	}
}

func TestVocabularyMatcher_WordBoundaries(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(
		VocabularyEntry{ID: 1, Name: "art"},
		VocabularyEntry{ID: 2, Name: "heist"},
		VocabularyEntry{ID: 3, Name: "war"},
	)
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("A party of smart thieves plans an art heist; the heist's toward warfare")
	byName := make(map[string]int)
	for _, kw := range got {
		byName[kw.Keyword] = kw.Frequency
	}

	want := map[string]int{"art": 1, "heist": 2}
	if !reflect.DeepEqual(byName, want) {
		t.Errorf("frequencies = %v, want %v", byName, want)
	}
}

func TestVocabularyMatcher_NonOverlappingCount(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(VocabularyEntry{ID: 7, Name: "ha ha"})
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("ha ha ha ha ha is the laugh")
	if len(got) != 1 || got[0].Frequency != 2 {
		t.Errorf("Extract() = %+v, want ha ha with frequency 2", got)
	}
}

func TestVocabularyMatcher_SpecificityRanking(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(
		VocabularyEntry{ID: 1, Name: "robot"},
		VocabularyEntry{ID: 2, Name: "artificial intelligence"},
		VocabularyEntry{ID: 3, Name: "space station"},
	)
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("A robot, another robot and a rogue artificial intelligence aboard a space station")
	want := []string{"artificial intelligence", "space station", "robot"}
	if !reflect.DeepEqual(keywordStrings(got), want) {
		t.Errorf("Extract() order = %v, want %v", keywordStrings(got), want)
	}
}

func TestVocabularyMatcher_EmptyResults(t *testing.T) {
	t.Parallel()

	unloaded := newFakeVocabulary(VocabularyEntry{ID: 1, Name: "time travel"})
	unloaded.loaded.Store(false)

	tests := []struct {
		name  string
		vocab Vocabulary
		text  string
	}{
		{"short text", newFakeVocabulary(VocabularyEntry{ID: 1, Name: "war"}), "war!"},
		{"unloaded lexicon", unloaded, "a story about time travel"},
		{"nil vocabulary", nil, "a story about time travel"},
		{"no matches", newFakeVocabulary(VocabularyEntry{ID: 1, Name: "zombie"}), "a quiet romantic evening"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewVocabularyMatcher(tt.vocab, VocabularyConfig{}, nopLogger())
			got := m.Extract(tt.text)
			if got == nil || len(got) != 0 {
				t.Errorf("Extract() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestVocabularyMatcher_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(VocabularyEntry{ID: 1, Name: "time travel"})
	vocab.panics = true
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("a story about time travel")
	if got == nil || len(got) != 0 {
		t.Errorf("Extract() = %#v, want empty non-nil slice", got)
	}
	if vocab.scans.Load() != 1 {
		t.Errorf("scans = %d, want 1", vocab.scans.Load())
	}
}

func TestVocabularyMatcher_CustomPolicyAndLimit(t *testing.T) {
	t.Parallel()

	vocab := newFakeVocabulary(
		VocabularyEntry{ID: 1, Name: "alien"},
		VocabularyEntry{ID: 2, Name: "invasion"},
		VocabularyEntry{ID: 3, Name: "mothership"},
	)
	frequencyOnly := ScorePolicyFunc(func(_ string, frequency int) float64 {
		return float64(frequency)
	})
	m := NewVocabularyMatcher(vocab, VocabularyConfig{MaxMatches: 2, Policy: frequencyOnly}, nopLogger())

	got := m.Extract("the mothership leads an alien invasion, alien after alien")
	want := []ExtractedKeyword{
		{Keyword: "alien", Score: 3, Frequency: 3, ID: 1},
		{Keyword: "mothership", Score: 1, Frequency: 1, ID: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestVocabularyMatcher_LengthBounds(t *testing.T) {
	t.Parallel()

	long := "the extraordinarily long adventures of a wandering knight errant"
	vocab := newFakeVocabulary(
		VocabularyEntry{ID: 1, Name: "ai"},
		VocabularyEntry{ID: 2, Name: "robot"},
		VocabularyEntry{ID: 3, Name: long},
	)
	m := NewVocabularyMatcher(vocab, DefaultVocabularyConfig(), nopLogger())

	got := m.Extract("a story about ai and more ai, a robot and " + long)
	if len(got) != 1 || got[0].Keyword != "robot" {
		t.Fatalf("Extract() = %+v, want only robot", got)
	}
	for _, kw := range got {
		if n := len(kw.Keyword); n <= 2 || n >= 50 {
			t.Errorf("keyword %q has length %d, want 2 < length < 50", kw.Keyword, n)
		}
	}
}

func TestSpecificityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frequency int
		want      float64
	}{
		{"war", 1, 0.3},
		{"time travel", 2, 4.4},
		{"artificial intelligence", 1, 4.6},
	}
	for _, tt := range tests {
		if got := SpecificityScore.Score(tt.name, tt.frequency); !almostEqual(got, tt.want) {
			t.Errorf("SpecificityScore(%q, %d) = %v, want %v", tt.name, tt.frequency, got, tt.want)
		}
	}
}

func TestOnWordBoundary(t *testing.T) {
	t.Parallel()

	text := "an art party"
	tests := []struct {
		start, end int
		want       bool
	}{
		{3, 6, true},   // art
		{8, 11, false}, // "art" inside party
		{0, 2, true},   // an
		{7, 12, true},  // party
		{4, 6, false},  // "rt"
		{6, 6, false},
		{10, 13, false},
	}
	for _, tt := range tests {
		if got := onWordBoundary(text, tt.start, tt.end); got != tt.want {
			t.Errorf("onWordBoundary(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}
