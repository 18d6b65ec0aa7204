// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/database/query"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/models"
)

// Listing limits for ListItems.
const (
	DefaultItemLimit = 50
	MaxItemLimit     = 500
)

// ItemFilter selects catalog items for ListItems. Zero values disable a
// filter.
type ItemFilter struct {
	MediaTypes   []string
	Platforms    []string
	Search       string
	Extracted    *bool
	UpdatedSince *time.Time
	Limit        int
	Offset       int
}

const itemColumns = `id, tmdb_id, title, media_type, platform, overview, genres,
	popularity, trending_rank, updated_at, keywords_extracted_at`

const upsertItemSQL = `INSERT INTO items (
	id, tmdb_id, title, media_type, platform, overview, genres,
	popularity, trending_rank, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	tmdb_id = excluded.tmdb_id,
	title = excluded.title,
	media_type = excluded.media_type,
	platform = excluded.platform,
	overview = excluded.overview,
	genres = excluded.genres,
	popularity = excluded.popularity,
	trending_rank = excluded.trending_rank,
	updated_at = excluded.updated_at`

// UpsertItem inserts or updates a single catalog item.
func (db *DB) UpsertItem(ctx context.Context, item *models.Item) error {
	return db.UpsertItems(ctx, []models.Item{*item})
}

// UpsertItems inserts or updates items in one transaction. Stored keywords
// and the extraction timestamp are left untouched; callers re-extract when
// the overview changed.
func (db *DB) UpsertItems(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	return db.withConflictRetry(ctx, func() error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollbackQuietly(tx)

		stmt, err := tx.PrepareContext(ctx, upsertItemSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare item upsert: %w", err)
		}
		defer closeQuietly(stmt)

		for i := range items {
			item := &items[i]
			genres, err := encodeGenres(item.Genres)
			if err != nil {
				return fmt.Errorf("item %d: %w", item.ID, err)
			}
			updatedAt := item.UpdatedAt.UTC()
			if item.UpdatedAt.IsZero() {
				updatedAt = now
			}
			if _, err := stmt.ExecContext(ctx,
				item.ID, nullInt64(item.TMDBID), item.Title, item.MediaType, nullString(item.Platform),
				item.Overview, genres, item.Popularity, item.TrendingRank, updatedAt,
			); err != nil {
				return fmt.Errorf("failed to upsert item %d: %w", item.ID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit item upsert: %w", err)
		}
		return nil
	})
}

// GetItem returns the item with its stored keywords, or ErrItemNotFound.
func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var item *models.Item
	err := db.withReconnect(ctx, func() error {
		row := db.conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
		var err error
		item, err = scanItem(row)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}

	kws, err := db.ItemKeywords(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Keywords = kws
	return item, nil
}

// DeleteItem removes an item and its stored keywords.
func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	return db.withConflictRetry(ctx, func() error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollbackQuietly(tx)

		if _, err := tx.ExecContext(ctx, `DELETE FROM item_keywords WHERE item_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete keywords of item %d: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete item %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return ErrItemNotFound
		}
		return tx.Commit()
	})
}

// ListItems returns one page of items matching filter, ordered by trending
// rank then popularity, together with the total number of matches. Each
// item carries its stored keywords.
func (db *DB) ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, int, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultItemLimit
	}
	if limit > MaxItemLimit {
		limit = MaxItemLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	wb := query.NewWhereBuilder().
		AddMediaTypes(filter.MediaTypes).
		AddPlatforms(filter.Platforms).
		AddTitleSearch(filter.Search).
		AddExtracted(filter.Extracted).
		AddUpdatedSince(filter.UpdatedSince)
	whereClause, args := wb.BuildWithPrefix()

	var total int
	var items []models.Item
	err := db.withReconnect(ctx, func() error {
		if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM items `+whereClause, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}

		pageArgs := append(append([]interface{}{}, args...), limit, offset)
		var err error
		items, err = db.queryItems(ctx, `SELECT `+itemColumns+` FROM items `+whereClause+`
			ORDER BY CASE WHEN trending_rank > 0 THEN 0 ELSE 1 END, trending_rank, popularity DESC, id
			LIMIT ? OFFSET ?`, pageArgs...)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	if err := db.attachKeywords(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ItemsWithOverview pages through items that have a synopsis long enough
// to extract from, in ID order starting after afterID. Keywords are not
// attached.
func (db *DB) ItemsWithOverview(ctx context.Context, afterID int64, limit int) ([]models.Item, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = DefaultItemLimit
	}

	var items []models.Item
	err := db.withReconnect(ctx, func() error {
		var err error
		items, err = db.queryItems(ctx, `SELECT `+itemColumns+` FROM items
			WHERE id > ? AND strlen(overview) >= ?
			ORDER BY id
			LIMIT ?`, afterID, keywords.MinTextLength, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (db *DB) queryItems(ctx context.Context, q string, args ...interface{}) ([]models.Item, error) {
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// attachKeywords loads stored keywords for a page of items.
func (db *DB) attachKeywords(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	byItem, err := db.ItemKeywordsFor(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Keywords = byItem[items[i].ID]
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item        models.Item
		tmdbID      sql.NullInt64
		platform    sql.NullString
		genres      string
		extractedAt sql.NullTime
	)
	if err := row.Scan(
		&item.ID, &tmdbID, &item.Title, &item.MediaType, &platform, &item.Overview, &genres,
		&item.Popularity, &item.TrendingRank, &item.UpdatedAt, &extractedAt,
	); err != nil {
		return nil, err
	}

	item.TMDBID = tmdbID.Int64
	item.Platform = platform.String
	item.UpdatedAt = item.UpdatedAt.UTC()
	if extractedAt.Valid {
		ts := extractedAt.Time.UTC()
		item.KeywordsExtractedAt = &ts
	}
	if genres != "" {
		if err := json.Unmarshal([]byte(genres), &item.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres of item %d: %w", item.ID, err)
		}
	}
	return &item, nil
}

func encodeGenres(genres []string) (string, error) {
	if len(genres) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("failed to encode genres: %w", err)
	}
	return string(data), nil
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
