// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// VocabularyEntry is one externally supplied lexicon record.
type VocabularyEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VocabularyHit is one occurrence of an entry name in normalized text.
// Start and End are byte offsets, End exclusive.
type VocabularyHit struct {
	Entry VocabularyEntry
	Start int
	End   int
}

// Vocabulary is a loaded lexicon that can locate its entry names in text.
//
// Scan receives normalized text and returns every occurrence of every entry
// name, overlapping ones included, ordered by End. Entry names are expected
// in Normalize form. An unloaded vocabulary returns nil.
type Vocabulary interface {
	IsLoaded() bool
	Scan(text string) []VocabularyHit
}

// ScorePolicy scores a matched vocabulary name occurring frequency times.
type ScorePolicy interface {
	Score(name string, frequency int) float64
}

// ScorePolicyFunc adapts a function to ScorePolicy.
type ScorePolicyFunc func(name string, frequency int) float64

// Score implements ScorePolicy.
func (f ScorePolicyFunc) Score(name string, frequency int) float64 {
	return f(name, frequency)
}

// SpecificityScore is the default policy: frequency times word count times
// a tenth of the name length, so longer multi-word entries rank higher.
var SpecificityScore ScorePolicy = ScorePolicyFunc(func(name string, frequency int) float64 {
	words := len(strings.Fields(name))
	return float64(frequency) * float64(words) * (float64(len(name)) / 10)
})

// VocabularyConfig configures the vocabulary matcher.
type VocabularyConfig struct {
	// MaxMatches is the number of entries kept per text.
	MaxMatches int

	// MinLength and MaxLength bound entry names in characters, exclusive,
	// with the same limits as RAKEConfig.
	MinLength int
	MaxLength int

	// Policy defaults to SpecificityScore.
	Policy ScorePolicy
}

// DefaultVocabularyConfig keeps the top 30 matches of 3 to 49 characters
// with SpecificityScore.
func DefaultVocabularyConfig() VocabularyConfig {
	return VocabularyConfig{MaxMatches: 30, MinLength: 2, MaxLength: 50, Policy: SpecificityScore}
}

// VocabularyMatcher extracts keywords by matching text against a
// controlled vocabulary. Matches must sit on word boundaries, so "art"
// never matches inside "party".
type VocabularyMatcher struct {
	vocab  Vocabulary
	cfg    VocabularyConfig
	logger zerolog.Logger
}

// NewVocabularyMatcher creates a matcher over vocab.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewVocabularyMatcher(vocab Vocabulary, cfg VocabularyConfig, logger zerolog.Logger) *VocabularyMatcher {
	def := DefaultVocabularyConfig()
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = def.MaxMatches
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = def.MinLength
	}
	if cfg.MaxLength <= cfg.MinLength {
		cfg.MaxLength = def.MaxLength
	}
	if cfg.Policy == nil {
		cfg.Policy = SpecificityScore
	}
	return &VocabularyMatcher{vocab: vocab, cfg: cfg, logger: logger}
}

// Strategy implements Extractor.
func (m *VocabularyMatcher) Strategy() Strategy { return StrategyVocabulary }

// Extract implements Extractor.
func (m *VocabularyMatcher) Extract(text string) (out []ExtractedKeyword) {
	defer finishExtraction(m.logger, StrategyVocabulary, time.Now(), &out)

	if m.vocab == nil {
		return nil
	}
	normalized := Normalize(text)
	if len(normalized) < MinTextLength {
		return nil
	}
	return m.rank(normalized, m.vocab.Scan(normalized))
}

type entryCount struct {
	entry     VocabularyEntry
	frequency int
	lastEnd   int
}

// rank counts non-overlapping, boundary-respecting occurrences per entry
// and scores them. Ties keep first-occurrence order.
func (m *VocabularyMatcher) rank(text string, hits []VocabularyHit) []ExtractedKeyword {
	if len(hits) == 0 {
		return nil
	}

	var order []*entryCount
	counts := make(map[VocabularyEntry]*entryCount)

	for _, hit := range hits {
		if n := len(hit.Entry.Name); n <= m.cfg.MinLength || n >= m.cfg.MaxLength {
			continue
		}
		if !onWordBoundary(text, hit.Start, hit.End) {
			continue
		}
		c, ok := counts[hit.Entry]
		if !ok {
			c = &entryCount{entry: hit.Entry}
			counts[hit.Entry] = c
			order = append(order, c)
		} else if hit.Start < c.lastEnd {
			continue
		}
		c.frequency++
		c.lastEnd = hit.End
	}

	out := make([]ExtractedKeyword, 0, len(order))
	for _, c := range order {
		out = append(out, ExtractedKeyword{
			Keyword:   c.entry.Name,
			Score:     m.cfg.Policy.Score(c.entry.Name, c.frequency),
			Frequency: c.frequency,
			ID:        c.entry.ID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > m.cfg.MaxMatches {
		out = out[:m.cfg.MaxMatches]
	}
	return out
}

// onWordBoundary reports whether text[start:end] is delimited by non-word
// characters or the ends of text, the same test as \b around the span.
func onWordBoundary(text string, start, end int) bool {
	if start < 0 || end > len(text) || start >= end {
		return false
	}
	if start > 0 && isWordByte(text[start-1]) && isWordByte(text[start]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) && isWordByte(text[end-1]) {
		return false
	}
	return true
}
