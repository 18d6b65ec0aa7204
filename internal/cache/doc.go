// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides the in-memory data structures shared by the keyword
service.

# Structures

  - AhoCorasick: multi-pattern matcher. The lexicon compiles every
    vocabulary name into one automaton; the categorizer compiles one per
    category.
  - Trie: prefix tree behind lexicon autocomplete.
  - Cache: TTL cache for API read endpoints.
  - LRUCache: bounded recently-seen set used for ingest deduplication.

All types are safe for concurrent use.
*/
package cache
