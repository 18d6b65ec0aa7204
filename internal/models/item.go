// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"

	"github.com/tomtom215/marquee/internal/keywords"
)

// Media types accepted for catalog items.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Item is a catalog entry: a movie or show with the synopsis keywords are
// extracted from.
//
// Keywords is populated when the item is read together with its stored
// keywords; it is ignored on upsert.
type Item struct {
	ID                  int64                       `json:"id" validate:"required,gt=0"`
	TMDBID              int64                       `json:"tmdb_id,omitempty" validate:"gte=0"`
	Title               string                      `json:"title" validate:"required,max=500"`
	MediaType           string                      `json:"media_type" validate:"required,oneof=movie tv"`
	Platform            string                      `json:"platform,omitempty" validate:"max=100"`
	Overview            string                      `json:"overview" validate:"max=20000"`
	Genres              []string                    `json:"genres,omitempty" validate:"max=20,dive,max=100"`
	Popularity          float64                     `json:"popularity" validate:"gte=0"`
	TrendingRank        int                         `json:"trending_rank,omitempty" validate:"gte=0"`
	UpdatedAt           time.Time                   `json:"updated_at"`
	KeywordsExtractedAt *time.Time                  `json:"keywords_extracted_at,omitempty"`
	Keywords            []keywords.ExtractedKeyword `json:"keywords,omitempty"`
}

// Document returns the extraction input for the item.
func (i *Item) Document() keywords.Document {
	return keywords.Document{ID: i.ID, Text: i.Overview}
}

// HasOverview reports whether the item has a synopsis to extract from.
func (i *Item) HasOverview() bool {
	return len(i.Overview) >= keywords.MinTextLength
}

// ItemKeyword is one stored keyword row for an item.
type ItemKeyword struct {
	ItemID    int64   `json:"item_id"`
	Keyword   string  `json:"keyword"`
	Score     float64 `json:"score"`
	Frequency int     `json:"frequency"`
}
