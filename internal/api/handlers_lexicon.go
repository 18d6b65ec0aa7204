// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/lexicon"
)

const (
	defaultAutocompleteLimit = 10
	maxAutocompleteLimit     = 100
)

// LexiconStatus reports whether a vocabulary is loaded and where it came
// from.
func (h *Handler) LexiconStatus(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	if h.lexicon == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Lexicon is not configured", nil)
		return
	}
	respondSuccess(w, http.StatusOK, h.lexicon.Status(), start)
}

// LoadLexicon loads the vocabulary from its source, replacing the current
// one on success. A failed load keeps the previous vocabulary.
func (h *Handler) LoadLexicon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.lexicon == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Lexicon is not configured", nil)
		return
	}

	err := h.lexicon.Load(r.Context())
	switch {
	case errors.Is(err, lexicon.ErrNoSource):
		respondError(w, http.StatusConflict, ErrCodeLexiconError, "No lexicon source is configured", nil)
		return
	case err != nil:
		respondError(w, http.StatusBadGateway, ErrCodeLexiconError, "Failed to load lexicon", err)
		return
	}
	respondSuccess(w, http.StatusOK, h.lexicon.Status(), start)
}

// LexiconAutocomplete returns vocabulary entries whose name starts with
// prefix. Query: prefix, limit.
func (h *Handler) LexiconAutocomplete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.lexicon == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Lexicon is not configured", nil)
		return
	}

	limit := clampLimit(getIntParam(r, "limit", defaultAutocompleteLimit),
		defaultAutocompleteLimit, maxAutocompleteLimit)
	respondSuccess(w, http.StatusOK, h.lexicon.Autocomplete(r.URL.Query().Get("prefix"), limit), start)
}
