// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

// Strategy names a keyword extraction strategy.
type Strategy string

const (
	// StrategyRAKE splits text on stop words and scores candidate phrases
	// by word co-occurrence.
	StrategyRAKE Strategy = "rake"

	// StrategyVocabulary matches text against a controlled lexicon.
	StrategyVocabulary Strategy = "vocabulary"

	// StrategyAuto uses the vocabulary when a lexicon is loaded and falls
	// back to RAKE otherwise.
	StrategyAuto Strategy = "auto"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyRAKE, StrategyVocabulary, StrategyAuto:
		return true
	default:
		return false
	}
}

// ExtractedKeyword is one scored keyword. Keyword is always lowercase and
// whitespace-normalized.
type ExtractedKeyword struct {
	// Keyword is the phrase or vocabulary name.
	Keyword string `json:"keyword"`

	// Score is non-negative. During aggregation it is the sum of the
	// per-text scores.
	Score float64 `json:"score"`

	// Frequency is at least 1 for every returned keyword.
	Frequency int `json:"frequency"`

	// ID is the vocabulary entry ID for lexicon matches, zero for phrases.
	ID int64 `json:"id,omitempty"`
}

// Extractor turns a single text into a ranked keyword list. Implementations
// never fail: unusable input and internal faults yield an empty list.
type Extractor interface {
	Extract(text string) []ExtractedKeyword
	Strategy() Strategy
}

// Document is one unit of text to extract from, typically an item synopsis.
type Document struct {
	ID   int64  `json:"id"`
	Text string `json:"text" validate:"max=20000"`
}

// Stats is the corpus-level view produced by aggregation.
type Stats struct {
	// TotalKeywords is len(AllKeywords).
	TotalKeywords int `json:"totalKeywords"`

	// TopKeywords is the first TopN entries of AllKeywords.
	TopKeywords []ExtractedKeyword `json:"topKeywords"`

	// AllKeywords is score-descending and frequency-filtered.
	AllKeywords []ExtractedKeyword `json:"allKeywords"`
}

// emptyStats returns Stats with non-nil slices so it encodes as [] not null.
func emptyStats() Stats {
	return Stats{
		TopKeywords: []ExtractedKeyword{},
		AllKeywords: []ExtractedKeyword{},
	}
}
