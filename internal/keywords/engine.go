// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Config configures the extraction engine.
type Config struct {
	// ExtractionEnabled turns every extraction entry point into a no-op
	// returning empty results when false.
	ExtractionEnabled bool `json:"extraction_enabled"`

	// Strategy is rake, vocabulary or auto.
	Strategy Strategy `json:"strategy"`

	// MaxPhrasesPerText bounds RAKE output per text.
	MaxPhrasesPerText int `json:"max_phrases_per_text"`

	// MaxVocabularyMatches bounds vocabulary output per text.
	MaxVocabularyMatches int `json:"max_vocabulary_matches"`

	// TopKeywords bounds Stats.TopKeywords.
	TopKeywords int `json:"top_keywords"`

	// RAKEMinFrequency and VocabularyMinFrequency are the aggregation
	// frequency floors for each strategy.
	RAKEMinFrequency       int `json:"rake_min_frequency"`
	VocabularyMinFrequency int `json:"vocabulary_min_frequency"`

	// Workers bounds parallel extraction during aggregation. Zero uses
	// GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		ExtractionEnabled:      true,
		Strategy:               StrategyAuto,
		MaxPhrasesPerText:      20,
		MaxVocabularyMatches:   30,
		TopKeywords:            DefaultTopKeywords,
		RAKEMinFrequency:       RAKEMinFrequency,
		VocabularyMinFrequency: VocabularyMinFrequency,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Strategy.Valid() {
		return fmt.Errorf("strategy must be one of rake, vocabulary, auto, got %q", c.Strategy)
	}
	if c.MaxPhrasesPerText < 1 {
		return fmt.Errorf("max_phrases_per_text must be positive, got %d", c.MaxPhrasesPerText)
	}
	if c.MaxVocabularyMatches < 1 {
		return fmt.Errorf("max_vocabulary_matches must be positive, got %d", c.MaxVocabularyMatches)
	}
	if c.TopKeywords < 1 {
		return fmt.Errorf("top_keywords must be positive, got %d", c.TopKeywords)
	}
	if c.RAKEMinFrequency < 1 {
		return fmt.Errorf("rake_min_frequency must be at least 1, got %d", c.RAKEMinFrequency)
	}
	if c.VocabularyMinFrequency < 1 {
		return fmt.Errorf("vocabulary_min_frequency must be at least 1, got %d", c.VocabularyMinFrequency)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// Engine selects an extractor per configuration and applies the
// aggregation policy that goes with it. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	rake  *RAKE
	vocab Vocabulary
	words *VocabularyMatcher // nil without a vocabulary
}

// NewEngine creates an engine. vocab may be nil unless the strategy is
// vocabulary.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, vocab Vocabulary, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Strategy == StrategyVocabulary && vocab == nil {
		return nil, fmt.Errorf("invalid config: strategy %q requires a vocabulary", cfg.Strategy)
	}

	logger = logger.With().Str("component", "keywords").Logger()

	e := &Engine{
		config: cfg,
		logger: logger,
		vocab:  vocab,
		rake: NewRAKE(RAKEConfig{
			MaxPhrases: cfg.MaxPhrasesPerText,
		}, logger),
	}
	if vocab != nil {
		e.words = NewVocabularyMatcher(vocab, VocabularyConfig{
			MaxMatches: cfg.MaxVocabularyMatches,
		}, logger)
	}
	return e, nil
}

// Enabled reports whether extraction is switched on.
func (e *Engine) Enabled() bool {
	return e.config.ExtractionEnabled
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Extractor resolves the configured strategy. With auto, the vocabulary
// matcher is used only while the lexicon is loaded.
func (e *Engine) Extractor() Extractor {
	switch e.config.Strategy {
	case StrategyVocabulary:
		return e.words
	case StrategyAuto:
		if e.words != nil && e.vocab.IsLoaded() {
			return e.words
		}
	}
	return e.rake
}

// ExtractorFor returns the extractor for an explicit strategy. The
// vocabulary strategy falls back to RAKE when the engine has no
// vocabulary.
func (e *Engine) ExtractorFor(s Strategy) Extractor {
	switch s {
	case StrategyRAKE:
		return e.rake
	case StrategyVocabulary:
		if e.words != nil {
			return e.words
		}
		return e.rake
	default:
		return e.Extractor()
	}
}

// MinFrequency returns the aggregation frequency floor for s.
func (e *Engine) MinFrequency(s Strategy) int {
	if s == StrategyVocabulary {
		return e.config.VocabularyMinFrequency
	}
	return e.config.RAKEMinFrequency
}

// Extract runs the configured extractor over text.
func (e *Engine) Extract(text string) []ExtractedKeyword {
	return e.ExtractWith(e.Extractor(), text)
}

// ExtractWith runs ex over text, honouring the enabled flag.
func (e *Engine) ExtractWith(ex Extractor, text string) []ExtractedKeyword {
	if !e.Enabled() || ex == nil {
		return []ExtractedKeyword{}
	}
	return ex.Extract(text)
}

// Aggregate extracts from every document with the configured strategy and
// merges the results with that strategy's frequency floor.
func (e *Engine) Aggregate(ctx context.Context, docs []Document) Stats {
	return e.AggregateWith(ctx, e.Extractor(), docs)
}

// AggregateWith is Aggregate with an explicit extractor.
func (e *Engine) AggregateWith(ctx context.Context, ex Extractor, docs []Document) Stats {
	if !e.Enabled() || ex == nil {
		return emptyStats()
	}

	stats := Aggregate(ctx, ex, docs, AggregateOptions{
		MinFrequency: e.MinFrequency(ex.Strategy()),
		TopN:         e.config.TopKeywords,
		Workers:      e.config.Workers,
	})

	e.logger.Debug().
		Str("strategy", string(ex.Strategy())).
		Int("documents", len(docs)).
		Int("keywords", stats.TotalKeywords).
		Msg("aggregated keywords")
	return stats
}

// MergeStored merges keyword lists that were extracted earlier, such as
// the stored keywords of catalog items. Every stored keyword is kept.
func (e *Engine) MergeStored(lists [][]ExtractedKeyword) Stats {
	return Merge(lists, AggregateOptions{
		MinFrequency: e.config.VocabularyMinFrequency,
		TopN:         e.config.TopKeywords,
	})
}

// FilterByText keeps the documents whose extracted phrases match any
// selected keyword by substring. With extraction disabled no document has
// keywords, so only an empty selection returns documents.
func (e *Engine) FilterByText(docs []Document, selected []string) []Document {
	ex := e.rake
	return FilterByText[Document](extractorFunc{ex.Strategy(), func(text string) []ExtractedKeyword {
		return e.ExtractWith(ex, text)
	}}, docs, selected, func(d Document) string { return d.Text })
}

type extractorFunc struct {
	strategy Strategy
	fn       func(string) []ExtractedKeyword
}

func (f extractorFunc) Extract(text string) []ExtractedKeyword { return f.fn(text) }
func (f extractorFunc) Strategy() Strategy                    { return f.strategy }
