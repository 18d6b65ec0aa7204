// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package indexer

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/models"
)

// categorizedKeywordLimit bounds the keywords fed to categorization in
// Stats, independent of the configured top-N.
const categorizedKeywordLimit = 200

// Stats summarizes stored keywords: catalog coverage, the top keywords by
// item count, and a wider keyword set grouped by category. Every category
// label is present in KeywordsByCategory, possibly with an empty list.
func (ix *Indexer) Stats(ctx context.Context) (models.KeywordStatsResponse, error) {
	total, withKeywords, err := ix.store.CatalogCounts(ctx)
	if err != nil {
		return models.KeywordStatsResponse{}, fmt.Errorf("catalog counts: %w", err)
	}

	topN := ix.engine.Config().TopKeywords
	limit := topN
	if limit < categorizedKeywordLimit {
		limit = categorizedKeywordLimit
	}
	counts, err := ix.store.KeywordCounts(ctx, "", limit)
	if err != nil {
		return models.KeywordStatsResponse{}, fmt.Errorf("keyword counts: %w", err)
	}

	ranked := make([]models.TopKeyword, len(counts))
	for i, c := range counts {
		ranked[i] = models.TopKeyword{Keyword: c.Keyword, Count: c.Count, Score: c.TotalScore}
	}

	top := ranked
	if len(top) > topN {
		top = top[:topN]
	}

	return models.KeywordStatsResponse{
		TotalItems:         total,
		ItemsWithKeywords:  withKeywords,
		TopKeywords:        top,
		KeywordsByCategory: CategorizeTop(ranked),
	}, nil
}

// CategorizeTop groups ranked keywords by category. Empty categories are
// omitted.
func CategorizeTop(ranked []models.TopKeyword) map[string][]models.TopKeyword {
	return keywords.Categorize(ranked, func(k models.TopKeyword) string { return k.Keyword })
}
