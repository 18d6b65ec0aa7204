// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package database is the catalog store for Marquee, backed by DuckDB.
//
// # Overview
//
// The store keeps catalog items (movies and shows with their synopsis) and
// the keywords extracted from each synopsis. Extraction itself happens in
// package keywords; this package only persists and queries the results.
//
// # Architecture
//
//   - database.go: lifecycle (open, initialize, close, ping)
//   - database_connection.go: reconnect with backoff, transaction conflict retry
//   - database_schema.go: table and index creation
//   - migrations.go: versioned schema changes tracked in schema_versions
//   - maintenance.go: query deadlines and WAL checkpoints
//   - items.go: item upsert, lookup, deletion and listing
//   - item_keywords.go: keyword replacement and keyword statistics
//   - query/: parameterized WHERE clause builder for item listings
//
// # Usage Example
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.UpsertItem(ctx, &item); err != nil {
//	    return err
//	}
//	if err := db.ReplaceItemKeywords(ctx, item.ID, kws); err != nil {
//	    return err
//	}
//	counts, err := db.KeywordCounts(ctx, "heist", 20)
//
// # Timestamps
//
// Timestamps are stored as TIMESTAMP in UTC and returned in UTC.
//
// # Thread Safety
//
// DB is safe for concurrent use. Writes that collide inside DuckDB are
// retried on transaction conflicts.
//
// # Testing
//
// Tests use in-memory databases (":memory:"), serialized through a
// semaphore to bound concurrent CGO work.
package database
