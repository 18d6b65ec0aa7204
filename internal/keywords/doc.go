// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package keywords derives descriptive keywords from media synopses.
//
// # Strategies
//
// Two extractors implement the Extractor interface:
//
//   - RAKE splits normalized text on stop words and scores each candidate
//     phrase by the degree/frequency of its words. It needs no external data.
//   - VocabularyMatcher looks up the names of a controlled lexicon in the
//     text, on word boundaries, and scores them with a ScorePolicy
//     (SpecificityScore by default).
//
// Engine picks one per its Config. StrategyAuto prefers the vocabulary
// while a lexicon is loaded and falls back to RAKE.
//
// # Aggregation
//
// Aggregate extracts from a batch of documents and merges the results by
// keyword, summing scores and frequencies. The merged list is sorted by
// score and filtered by a minimum frequency that depends on the strategy
// (2 for RAKE, 1 for vocabulary matches).
//
// # Categorization and Filtering
//
// Categorize files keywords into five fixed groups by substring triggers.
// FilterItems and Suggest select items and keyword suggestions for a UI.
//
// # Failure Model
//
// Extraction is best effort. Short or empty input, an unloaded lexicon and
// internal panics all produce an empty list; no extraction entry point
// returns an error.
//
// # Usage
//
//	engine, err := keywords.NewEngine(keywords.DefaultConfig(), lexiconService, logger)
//	if err != nil {
//	    return err
//	}
//	kws := engine.Extract(item.Overview)
//	stats := engine.Aggregate(ctx, docs)
//	buckets := keywords.CategorizeKeywords(stats.TopKeywords)
package keywords
