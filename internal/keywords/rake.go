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

// RAKEConfig bounds the phrase extractor output.
type RAKEConfig struct {
	// MaxPhrases is the number of phrases kept per text.
	MaxPhrases int

	// MinLength and MaxLength bound phrase length in characters, exclusive.
	MinLength int
	MaxLength int
}

// DefaultRAKEConfig keeps the top 20 phrases strictly between 2 and 50
// characters long.
func DefaultRAKEConfig() RAKEConfig {
	return RAKEConfig{MaxPhrases: 20, MinLength: 2, MaxLength: 50}
}

// RAKE is a simplified Rapid Automatic Keyword Extraction phrase extractor.
// Candidate phrases are maximal runs of content words; each word scores
// degree/frequency over all candidates, and a phrase scores the sum over
// its words. It is safe for concurrent use.
type RAKE struct {
	cfg    RAKEConfig
	logger zerolog.Logger
}

// NewRAKE creates a phrase extractor. Zero config fields take defaults.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRAKE(cfg RAKEConfig, logger zerolog.Logger) *RAKE {
	def := DefaultRAKEConfig()
	if cfg.MaxPhrases <= 0 {
		cfg.MaxPhrases = def.MaxPhrases
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = def.MinLength
	}
	if cfg.MaxLength <= cfg.MinLength {
		cfg.MaxLength = def.MaxLength
	}
	return &RAKE{cfg: cfg, logger: logger}
}

// Strategy implements Extractor.
func (r *RAKE) Strategy() Strategy { return StrategyRAKE }

// Extract implements Extractor.
func (r *RAKE) Extract(text string) (out []ExtractedKeyword) {
	defer finishExtraction(r.logger, StrategyRAKE, time.Now(), &out)

	tokens, ok := Tokenize(text)
	if !ok {
		return nil
	}
	return r.score(candidatePhrases(tokens))
}

// candidatePhrases returns the maximal runs of content words in order of
// appearance.
func candidatePhrases(tokens []string) [][]string {
	var phrases [][]string
	var current []string

	for _, tok := range tokens {
		if IsStopWord(tok) {
			if len(current) > 0 {
				phrases = append(phrases, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		phrases = append(phrases, current)
	}
	return phrases
}

type phraseStat struct {
	words     []string
	frequency int
}

func (r *RAKE) score(phrases [][]string) []ExtractedKeyword {
	if len(phrases) == 0 {
		return nil
	}

	// Insertion order drives tie-breaks.
	order := make([]string, 0, len(phrases))
	stats := make(map[string]*phraseStat, len(phrases))
	wordFreq := make(map[string]int)
	wordDegree := make(map[string]int)

	for _, words := range phrases {
		phrase := strings.Join(words, " ")
		st, seen := stats[phrase]
		if !seen {
			st = &phraseStat{words: words}
			stats[phrase] = st
			order = append(order, phrase)
		}
		st.frequency++

		for _, w := range words {
			wordFreq[w]++
			wordDegree[w] += len(words)
		}
	}

	out := make([]ExtractedKeyword, 0, len(order))
	for _, phrase := range order {
		if len(phrase) <= r.cfg.MinLength || len(phrase) >= r.cfg.MaxLength {
			continue
		}
		st := stats[phrase]

		var score float64
		for _, w := range st.words {
			score += float64(wordDegree[w]) / float64(wordFreq[w])
		}
		out = append(out, ExtractedKeyword{
			Keyword:   phrase,
			Score:     score,
			Frequency: st.frequency,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > r.cfg.MaxPhrases {
		out = out[:r.cfg.MaxPhrases]
	}
	return out
}
