// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// Keyword payloads use camelCase field names; existing clients of the
// keyword endpoints depend on them.

// KeywordCount aggregates a stored keyword across the catalog.
type KeywordCount struct {
	Keyword    string  `json:"keyword"`
	Count      int     `json:"count"` // number of items carrying the keyword
	TotalScore float64 `json:"totalScore"`
	AvgScore   float64 `json:"avgScore"`
}

// TopKeyword is a ranked keyword in KeywordStatsResponse.
type TopKeyword struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Score   float64 `json:"score"`
}

// KeywordStatsResponse summarizes stored keywords for GET /keywords/stats.
type KeywordStatsResponse struct {
	TotalItems         int                     `json:"totalItems"`
	ItemsWithKeywords  int                     `json:"itemsWithKeywords"`
	TopKeywords        []TopKeyword            `json:"topKeywords"`
	KeywordsByCategory map[string][]TopKeyword `json:"keywordsByCategory"`
}

// KeywordListResponse is returned by GET /keywords/all and /suggestions.
type KeywordListResponse struct {
	Keywords []KeywordCount `json:"keywords"`
	Total    int            `json:"total"`
}

// ItemsByKeywordResponse is returned by GET /keywords/trending-by-keyword.
type ItemsByKeywordResponse struct {
	Keyword string `json:"keyword"`
	Items   []Item `json:"items"`
	Total   int    `json:"total"`
}

// RunResult reports a batch extraction over the catalog.
type RunResult struct {
	Processed  int   `json:"processed"`
	Updated    int   `json:"updated"`
	Errors     int   `json:"errors"`
	Skipped    int   `json:"skipped"`
	Canceled   bool  `json:"canceled,omitempty"`
	DurationMS int64 `json:"duration_ms"`
}
