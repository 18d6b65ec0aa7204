// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
database_schema.go - Database Schema Management

Tables:
  - items: catalog entries (movies and shows) with their synopsis
  - item_keywords: keywords extracted from each item's synopsis, in
    extraction order

item_keywords has no foreign key to items and no primary key. DuckDB
rejects updates of referenced rows, which would break item upserts, and
checks unique keys eagerly inside a transaction, which would break the
delete-then-insert in ReplaceItemKeywords. Keywords are merged per item
before insert instead, and DeleteItem removes the keyword rows in the same
transaction.

items carries only its primary key: ON CONFLICT DO UPDATE cannot assign to
indexed columns.

Index Strategy:
  - item_keywords(keyword) for keyword statistics and item lookup by keyword
  - item_keywords(item_id) via migration v1
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id BIGINT PRIMARY KEY,
		tmdb_id BIGINT,
		title TEXT NOT NULL,
		media_type TEXT NOT NULL,
		platform TEXT,
		overview TEXT NOT NULL DEFAULT '',
		genres TEXT NOT NULL DEFAULT '[]',
		popularity DOUBLE NOT NULL DEFAULT 0,
		trending_rank INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL,
		keywords_extracted_at TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS item_keywords (
		item_id BIGINT NOT NULL,
		keyword TEXT NOT NULL,
		score DOUBLE NOT NULL,
		frequency INTEGER NOT NULL,
		rank INTEGER NOT NULL
	)`,
}

// createIndexes creates secondary indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_item_keywords_keyword ON item_keywords(keyword)`,
}
