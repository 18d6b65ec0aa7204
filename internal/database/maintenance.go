// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"time"
)

// queryTimeout bounds catalog queries whose caller set no deadline.
const queryTimeout = 30 * time.Second

// queryContext returns ctx bounded by queryTimeout unless it already
// carries a deadline.
func queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, queryTimeout)
}

// Checkpoint flushes the DuckDB write-ahead log into the catalog file.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Path returns the catalog file path, or ":memory:" for in-memory catalogs.
func (db *DB) Path() string {
	return db.cfg.Path
}
