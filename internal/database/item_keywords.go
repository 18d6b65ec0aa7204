// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/models"
)

// Limits for keyword listings.
const (
	DefaultKeywordLimit = 100
	MaxKeywordLimit     = 1000
)

// ReplaceItemKeywords stores kws as the complete keyword set of an item
// and stamps its extraction time. Keywords that normalize to the same text
// are merged, summing score and frequency and keeping the first position.
// An empty kws clears the item's keywords. Returns ErrItemNotFound when the
// item does not exist.
func (db *DB) ReplaceItemKeywords(ctx context.Context, itemID int64, kws []keywords.ExtractedKeyword) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	merged := mergeItemKeywords(kws)
	extractedAt := time.Now().UTC()

	return db.withConflictRetry(ctx, func() error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollbackQuietly(tx)

		res, err := tx.ExecContext(ctx, `UPDATE items SET keywords_extracted_at = ? WHERE id = ?`, extractedAt, itemID)
		if err != nil {
			return fmt.Errorf("failed to stamp item %d: %w", itemID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return ErrItemNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM item_keywords WHERE item_id = ?`, itemID); err != nil {
			return fmt.Errorf("failed to clear keywords of item %d: %w", itemID, err)
		}

		if len(merged) > 0 {
			stmt, err := tx.PrepareContext(ctx,
				`INSERT INTO item_keywords (item_id, keyword, score, frequency, rank) VALUES (?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("failed to prepare keyword insert: %w", err)
			}
			defer closeQuietly(stmt)

			for rank, kw := range merged {
				if _, err := stmt.ExecContext(ctx, itemID, kw.Keyword, kw.Score, kw.Frequency, rank); err != nil {
					return fmt.Errorf("failed to insert keyword %q of item %d: %w", kw.Keyword, itemID, err)
				}
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit keywords of item %d: %w", itemID, err)
		}
		return nil
	})
}

// mergeItemKeywords drops blank keywords and merges duplicates by their
// normalized form.
func mergeItemKeywords(kws []keywords.ExtractedKeyword) []keywords.ExtractedKeyword {
	out := make([]keywords.ExtractedKeyword, 0, len(kws))
	index := make(map[string]int, len(kws))
	for _, kw := range kws {
		key := keywords.NormalizeKeyword(kw.Keyword)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			out[i].Score += kw.Score
			out[i].Frequency += kw.Frequency
			continue
		}
		index[key] = len(out)
		out = append(out, keywords.ExtractedKeyword{Keyword: key, Score: kw.Score, Frequency: kw.Frequency})
	}
	return out
}

// ItemKeywords returns the stored keywords of one item in extraction order.
// An item without keywords, or an unknown item, yields an empty slice.
func (db *DB) ItemKeywords(ctx context.Context, itemID int64) ([]keywords.ExtractedKeyword, error) {
	byItem, err := db.ItemKeywordsFor(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	if kws, ok := byItem[itemID]; ok {
		return kws, nil
	}
	return []keywords.ExtractedKeyword{}, nil
}

// ItemKeywordsFor returns stored keywords for several items, keyed by item
// ID. Items without keywords map to an empty slice.
func (db *DB) ItemKeywordsFor(ctx context.Context, itemIDs []int64) (map[int64][]keywords.ExtractedKeyword, error) {
	out := make(map[int64][]keywords.ExtractedKeyword, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()

	placeholders := make([]string, len(itemIDs))
	args := make([]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		placeholders[i] = "?"
		args[i] = id
		out[id] = []keywords.ExtractedKeyword{}
	}

	err := db.withReconnect(ctx, func() error {
		rows, err := db.conn.QueryContext(ctx, `SELECT item_id, keyword, score, frequency FROM item_keywords
			WHERE item_id IN (`+strings.Join(placeholders, ", ")+`)
			ORDER BY item_id, rank`, args...)
		if err != nil {
			return fmt.Errorf("failed to query item keywords: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			var kw keywords.ExtractedKeyword
			if err := rows.Scan(&id, &kw.Keyword, &kw.Score, &kw.Frequency); err != nil {
				return fmt.Errorf("failed to scan item keyword: %w", err)
			}
			out[id] = append(out[id], kw)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KeywordCounts returns stored keywords with the number of items carrying
// each one, ordered by item count then total score. search narrows the
// result to keywords containing it, case-insensitively.
func (db *DB) KeywordCounts(ctx context.Context, search string, limit int) ([]models.KeywordCount, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	limit = clampKeywordLimit(limit)
	search = strings.ToLower(strings.TrimSpace(search))

	q := `SELECT keyword, COUNT(DISTINCT item_id) AS item_count, SUM(score) AS total_score, AVG(score) AS avg_score
		FROM item_keywords`
	args := []interface{}{}
	if search != "" {
		q += ` WHERE strpos(keyword, ?) > 0`
		args = append(args, search)
	}
	q += ` GROUP BY keyword ORDER BY item_count DESC, total_score DESC, keyword LIMIT ?`
	args = append(args, limit)

	counts := make([]models.KeywordCount, 0)
	err := db.withReconnect(ctx, func() error {
		counts = counts[:0]
		rows, err := db.conn.QueryContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("failed to query keyword counts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var kc models.KeywordCount
			if err := rows.Scan(&kc.Keyword, &kc.Count, &kc.TotalScore, &kc.AvgScore); err != nil {
				return fmt.Errorf("failed to scan keyword count: %w", err)
			}
			counts = append(counts, kc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// ItemsByKeyword returns items carrying keyword, best score first, with
// their stored keywords attached.
func (db *DB) ItemsByKeyword(ctx context.Context, keyword string, limit int) ([]models.Item, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	keyword = keywords.NormalizeKeyword(keyword)
	if keyword == "" {
		return []models.Item{}, nil
	}
	if limit <= 0 {
		limit = DefaultItemLimit
	}
	if limit > MaxItemLimit {
		limit = MaxItemLimit
	}

	var items []models.Item
	err := db.withReconnect(ctx, func() error {
		var err error
		items, err = db.queryItems(ctx, `SELECT `+qualifiedItemColumns+` FROM items i
			JOIN item_keywords k ON k.item_id = i.id
			WHERE k.keyword = ?
			ORDER BY k.score DESC, i.popularity DESC, i.id
			LIMIT ?`, keyword, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := db.attachKeywords(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

const qualifiedItemColumns = `i.id, i.tmdb_id, i.title, i.media_type, i.platform, i.overview, i.genres,
	i.popularity, i.trending_rank, i.updated_at, i.keywords_extracted_at`

// CatalogCounts returns the number of items and the number of items with
// at least one stored keyword.
func (db *DB) CatalogCounts(ctx context.Context) (totalItems, itemsWithKeywords int, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	err = db.withReconnect(ctx, func() error {
		return db.conn.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM items),
			(SELECT COUNT(DISTINCT item_id) FROM item_keywords)`).Scan(&totalItems, &itemsWithKeywords)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count catalog: %w", err)
	}
	return totalItems, itemsWithKeywords, nil
}

func clampKeywordLimit(limit int) int {
	if limit <= 0 {
		return DefaultKeywordLimit
	}
	if limit > MaxKeywordLimit {
		return MaxKeywordLimit
	}
	return limit
}
