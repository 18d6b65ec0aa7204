// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
)

// fakeVocabulary is an in-memory Vocabulary backed by the real automaton.
type fakeVocabulary struct {
	ac     *cache.AhoCorasick
	loaded atomic.Bool
	panics bool
	scans  atomic.Int32
}

func newFakeVocabulary(entries ...VocabularyEntry) *fakeVocabulary {
	ac := cache.NewAhoCorasick()
	for _, e := range entries {
		ac.AddPattern(e.Name, e)
	}
	ac.Build()

	v := &fakeVocabulary{ac: ac}
	v.loaded.Store(true)
	return v
}

func (v *fakeVocabulary) IsLoaded() bool { return v.loaded.Load() }

func (v *fakeVocabulary) Scan(text string) []VocabularyHit {
	v.scans.Add(1)
	if v.panics {
		panic("scan exploded")
	}
	if !v.loaded.Load() {
		return nil
	}
	matches := v.ac.Search(text)
	hits := make([]VocabularyHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, VocabularyHit{
			Entry: m.Data.(VocabularyEntry),
			Start: m.Position,
			End:   m.End,
		})
	}
	return hits
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func keywordStrings(kws []ExtractedKeyword) []string {
	out := make([]string, len(kws))
	for i, kw := range kws {
		out[i] = kw.Keyword
	}
	return out
}

func findKeyword(kws []ExtractedKeyword, keyword string) (ExtractedKeyword, bool) {
	for _, kw := range kws {
		if kw.Keyword == keyword {
			return kw, true
		}
	}
	return ExtractedKeyword{}, false
}
