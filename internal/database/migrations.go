// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
)

// schemaChange is one step applied on top of the base tables.
type schemaChange struct {
	version int
	name    string
	stmt    string
}

// migrations is append only. Released entries are never edited.
var migrations = []schemaChange{
	{
		version: 1,
		name:    "item_keywords_item_index",
		stmt:    `CREATE INDEX IF NOT EXISTS idx_item_keywords_item ON item_keywords(item_id)`,
	},
}

const schemaVersionsTable = `CREATE TABLE IF NOT EXISTS schema_versions (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
)`

// migrate applies pending schema changes in version order. Each change and
// its schema_versions row commit together, so a failed step is retried on
// the next start.
func (db *DB) migrate() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaVersionsTable); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.applySchemaChange(ctx, m); err != nil {
			return err
		}
		applied++
	}

	if applied > 0 {
		logging.Info().Int("count", applied).Int("from_version", current).Msg("Applied schema changes")
	}
	return nil
}

func (db *DB) applySchemaChange(ctx context.Context, m schemaChange) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema change v%d: %w", m.version, err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
		return fmt.Errorf("schema change v%d (%s) failed: %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_versions (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return fmt.Errorf("failed to record schema change v%d: %w", m.version, err)
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied schema change, or 0 for a
// catalog holding only the base tables.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var version int
	if err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
