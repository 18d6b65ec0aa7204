// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/indexer"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// Query defaults for keyword endpoints.
const (
	defaultCategorizedLimit = 200
	defaultTrendingLimit    = 20
	suggestionCorpusLimit   = database.MaxKeywordLimit
)

// KeywordStats returns catalog coverage, the top stored keywords and the
// keywords grouped by category.
func (h *Handler) KeywordStats(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, cache.GenerateKey("KeywordStats", nil), func() (interface{}, error) {
		return h.indexer.Stats(r.Context())
	})
}

// AllKeywords lists stored keywords with item counts. Query: search, limit.
func (h *Handler) AllKeywords(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	limit := clampLimit(getIntParam(r, "limit", database.DefaultKeywordLimit),
		database.DefaultKeywordLimit, database.MaxKeywordLimit)

	key := cache.GenerateKey("AllKeywords", map[string]any{"search": strings.ToLower(search), "limit": limit})
	h.respondCached(w, key, func() (interface{}, error) {
		counts, err := h.store.KeywordCounts(r.Context(), search, limit)
		if err != nil {
			return nil, err
		}
		return models.KeywordListResponse{Keywords: counts, Total: len(counts)}, nil
	})
}

// KeywordSuggestions returns stored keywords containing the partial query
// q. Queries shorter than two characters return the most common keywords.
func (h *Handler) KeywordSuggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := clampLimit(getIntParam(r, "limit", keywords.DefaultSuggestionLimit),
		keywords.DefaultSuggestionLimit, database.MaxKeywordLimit)

	key := cache.GenerateKey("KeywordSuggestions", map[string]any{"q": strings.ToLower(query), "limit": limit})
	h.respondCached(w, key, func() (interface{}, error) {
		corpus, err := h.store.KeywordCounts(r.Context(), "", suggestionCorpusLimit)
		if err != nil {
			return nil, err
		}
		suggestions := keywords.Suggest(query, corpus, func(k models.KeywordCount) string { return k.Keyword }, limit)
		return models.KeywordListResponse{Keywords: suggestions, Total: len(suggestions)}, nil
	})
}

// CategorizedKeywords groups the most common stored keywords by category,
// in category order. Empty categories are omitted.
func (h *Handler) CategorizedKeywords(w http.ResponseWriter, r *http.Request) {
	limit := clampLimit(getIntParam(r, "limit", defaultCategorizedLimit),
		defaultCategorizedLimit, database.MaxKeywordLimit)

	key := cache.GenerateKey("CategorizedKeywords", map[string]any{"limit": limit})
	h.respondCached(w, key, func() (interface{}, error) {
		counts, err := h.store.KeywordCounts(r.Context(), "", limit)
		if err != nil {
			return nil, err
		}
		return keywords.CategorizeOrdered(counts, func(k models.KeywordCount) string { return k.Keyword }), nil
	})
}

// ItemsByKeyword lists the items carrying a stored keyword, best score
// first. Query: keyword (required), limit.
func (h *Handler) ItemsByKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := keywords.NormalizeKeyword(r.URL.Query().Get("keyword"))
	if keyword == "" {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "keyword query parameter is required", nil)
		return
	}
	limit := clampLimit(getIntParam(r, "limit", defaultTrendingLimit),
		defaultTrendingLimit, database.MaxItemLimit)

	key := cache.GenerateKey("ItemsByKeyword", map[string]any{"keyword": keyword, "limit": limit})
	h.respondCached(w, key, func() (interface{}, error) {
		items, err := h.store.ItemsByKeyword(r.Context(), keyword, limit)
		if err != nil {
			return nil, err
		}
		return models.ItemsByKeywordResponse{Keyword: keyword, Items: items, Total: len(items)}, nil
	})
}

// ExtractAll re-extracts keywords for the whole catalog and returns the run
// result. The run continues if the client disconnects.
func (h *Handler) ExtractAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.indexer.ExtractAll(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, indexer.ErrRunInProgress):
		respondError(w, http.StatusConflict, ErrCodeRunInProgress, "An extraction run is already in progress", nil)
		return
	case errors.Is(err, indexer.ErrExtractionDisabled):
		respondError(w, http.StatusConflict, ErrCodeExtractionDisabled, "Keyword extraction is disabled", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Extraction run failed", err)
		return
	}

	h.ClearCache()
	logging.Ctx(r.Context()).Info().
		Int("processed", result.Processed).
		Int("updated", result.Updated).
		Int("errors", result.Errors).
		Msg("Extraction run triggered via API")
	respondSuccess(w, http.StatusOK, result, start)
}

// resolveExtractor maps a request strategy to an extractor; empty uses the
// configured strategy.
func (h *Handler) resolveExtractor(strategy string) keywords.Extractor {
	if strategy == "" {
		return h.engine.Extractor()
	}
	return h.engine.ExtractorFor(keywords.Strategy(strategy))
}

// Extract runs keyword extraction over posted text. Texts under ten
// characters, and any text while extraction is disabled, yield an empty
// list.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ExtractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ex := h.resolveExtractor(req.Strategy)
	respondSuccess(w, http.StatusOK, ExtractResponse{
		Strategy: string(ex.Strategy()),
		Keywords: h.engine.ExtractWith(ex, req.Text),
	}, start)
}

// Aggregate extracts from every posted document and merges the results
// into corpus statistics.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AggregateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	stats := h.engine.AggregateWith(r.Context(), h.resolveExtractor(req.Strategy), req.Documents)
	respondSuccess(w, http.StatusOK, stats, start)
}

// Filter returns the posted items matching any selected keyword. With no
// selected keywords every item matches.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FilterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mode, _ := keywords.ParseMatchMode(req.Mode)
	phrases := h.engine.ExtractorFor(keywords.StrategyRAKE)
	keywordsOf := func(item FilterItem) []string {
		if len(item.Keywords) > 0 {
			return item.Keywords
		}
		kws := h.engine.ExtractWith(phrases, item.Text)
		out := make([]string, len(kws))
		for i, kw := range kws {
			out[i] = kw.Keyword
		}
		return out
	}

	items := keywords.FilterItems(req.Items, req.Keywords, keywordsOf, mode)
	if items == nil {
		items = []FilterItem{}
	}
	modeName := "substring"
	if mode == keywords.MatchExact {
		modeName = "exact"
	}
	respondSuccess(w, http.StatusOK, FilterResponse{Items: items, Total: len(items), Mode: modeName}, start)
}

// Categorize groups posted keywords by category. Categories without
// members are omitted.
func (h *Handler) Categorize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CategorizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondSuccess(w, http.StatusOK, keywords.CategorizeStrings(req.Keywords), start)
}
