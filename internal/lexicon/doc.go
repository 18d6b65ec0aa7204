// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package lexicon loads and serves the controlled keyword vocabulary used by
// the vocabulary extraction strategy.
//
// The lexicon is a newline-delimited JSON stream, one {"id", "name"} record
// per line, read from a file (optionally gzip-compressed) or over HTTP
// behind a circuit breaker. Service loads it once, builds an Aho-Corasick
// automaton over the normalized names for scanning and a trie for
// autocomplete, and swaps both in atomically. A BadgerDB Snapshot keeps the
// last good lexicon across restarts.
//
// Loading is best effort: failures are logged and reported by Load and
// Status, and the service simply reports IsLoaded() == false until a load
// succeeds.
//
//	svc := lexicon.NewService(lexicon.FileSource{Path: "keywords.json.gz"},
//	    lexicon.WithSnapshot(snap), lexicon.WithLogger(logger))
//	if err := svc.Load(ctx); err != nil {
//	    logger.Warn().Err(err).Msg("lexicon unavailable")
//	}
//	engine, _ := keywords.NewEngine(cfg, svc, logger)
package lexicon
