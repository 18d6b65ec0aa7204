// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestRAKE_Extract_DetectiveSynopsis(t *testing.T) {
	t.Parallel()

	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	got := r.Extract("A young detective must solve a murder mystery in a small town")

	want := []ExtractedKeyword{
		{Keyword: "young detective", Score: 4, Frequency: 1},
		{Keyword: "murder mystery", Score: 4, Frequency: 1},
		{Keyword: "small town", Score: 4, Frequency: 1},
		{Keyword: "solve", Score: 1, Frequency: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestRAKE_Extract_RepeatedPhrases(t *testing.T) {
	t.Parallel()

	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	got := r.Extract("The robot and space pirates, then the robot and space pirates.")

	pirates, ok := findKeyword(got, "space pirates")
	if !ok {
		t.Fatalf("Extract() = %v, missing %q", keywordStrings(got), "space pirates")
	}
	if pirates.Frequency != 2 || !almostEqual(pirates.Score, 4) {
		t.Errorf("space pirates = %+v, want frequency 2 score 4", pirates)
	}

	robot, ok := findKeyword(got, "robot")
	if !ok {
		t.Fatalf("Extract() = %v, missing %q", keywordStrings(got), "robot")
	}
	if robot.Frequency != 2 || !almostEqual(robot.Score, 1) {
		t.Errorf("robot = %+v, want frequency 2 score 1", robot)
	}
}

func TestRAKE_Extract_DegreeSharedAcrossPhrases(t *testing.T) {
	t.Parallel()

	// "dragon" appears alone and inside a three-word phrase:
	// freq(dragon)=2, degree(dragon)=1+3=4.
	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	got := r.Extract("The dragon and the ancient dragon kingdom")

	kw, ok := findKeyword(got, "ancient dragon kingdom")
	if !ok {
		t.Fatalf("Extract() = %v, missing phrase", keywordStrings(got))
	}
	// ancient 3/1 + dragon 4/2 + kingdom 3/1
	if !almostEqual(kw.Score, 8) {
		t.Errorf("score = %v, want 8", kw.Score)
	}
	if got[0].Keyword != "ancient dragon kingdom" {
		t.Errorf("first keyword = %q, want highest scoring phrase", got[0].Keyword)
	}
}

func TestRAKE_Extract_EmptyResults(t *testing.T) {
	t.Parallel()

	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short", "Heist!"},
		{"short after normalizing", "  ...!!! go   "},
		{"only stop words", "the movie is about what they will do in the series"},
		{"only numbers", "1999 2001 2024 1984 300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.Extract(tt.text)
			if got == nil || len(got) != 0 {
				t.Errorf("Extract(%q) = %#v, want empty non-nil slice", tt.text, got)
			}
		})
	}
}

func TestRAKE_Extract_LengthBounds(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("supercalifragilistic ", 3) // 62 characters as one phrase
	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	got := r.Extract("The " + long + " and the orphan")

	for _, kw := range got {
		if len(kw.Keyword) <= 2 || len(kw.Keyword) >= 50 {
			t.Errorf("keyword %q has length %d, want 3..49", kw.Keyword, len(kw.Keyword))
		}
		if kw.Frequency < 1 {
			t.Errorf("keyword %q has frequency %d, want >= 1", kw.Keyword, kw.Frequency)
		}
	}
	if _, ok := findKeyword(got, "orphan"); !ok {
		t.Errorf("Extract() = %v, want %q", keywordStrings(got), "orphan")
	}
}

func TestRAKE_Extract_TopLimit(t *testing.T) {
	t.Parallel()

	var parts []string
	for i := 0; i < 40; i++ {
		parts = append(parts, fmt.Sprintf("word%c%c", 'a'+i%26, 'a'+i/26))
	}
	text := strings.Join(parts, " the ")

	got := NewRAKE(DefaultRAKEConfig(), nopLogger()).Extract(text)
	if len(got) != 20 {
		t.Errorf("len(Extract()) = %d, want 20", len(got))
	}

	got = NewRAKE(RAKEConfig{MaxPhrases: 5}, nopLogger()).Extract(text)
	if len(got) != 5 {
		t.Errorf("len(Extract()) with MaxPhrases 5 = %d, want 5", len(got))
	}
}

func TestRAKE_Extract_TiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	got := r.Extract("zebra then apple then mango then kiwi")

	want := []string{"zebra", "apple", "mango", "kiwi"}
	if !reflect.DeepEqual(keywordStrings(got), want) {
		t.Errorf("Extract() order = %v, want %v", keywordStrings(got), want)
	}
}

func TestRAKE_Extract_Deterministic(t *testing.T) {
	t.Parallel()

	text := "Two rival chefs battle for control of a legendary restaurant while a food critic plots revenge."
	r := NewRAKE(DefaultRAKEConfig(), nopLogger())
	first := r.Extract(text)
	for i := 0; i < 20; i++ {
		if got := r.Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestRAKE_Strategy(t *testing.T) {
	t.Parallel()

	if got := NewRAKE(RAKEConfig{}, nopLogger()).Strategy(); got != StrategyRAKE {
		t.Errorf("Strategy() = %q, want %q", got, StrategyRAKE)
	}
}
