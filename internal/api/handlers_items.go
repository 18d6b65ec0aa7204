// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/logging"
)

// ListItems returns a page of catalog items with their stored keywords.
//
// Query parameters: media_type and platform (comma-separated), search,
// extracted (true/false), updated_since (RFC 3339), limit, offset.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	req := ListItemsRequest{
		MediaTypes:   parseCommaSeparated(q.Get("media_type")),
		Platforms:    parseCommaSeparated(q.Get("platform")),
		Search:       strings.TrimSpace(q.Get("search")),
		Extracted:    q.Get("extracted"),
		UpdatedSince: q.Get("updated_since"),
		Limit:        getIntParam(r, "limit", database.DefaultItemLimit),
		Offset:       getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	filter := database.ItemFilter{
		MediaTypes: req.MediaTypes,
		Platforms:  req.Platforms,
		Search:     req.Search,
		Limit:      clampLimit(req.Limit, database.DefaultItemLimit, database.MaxItemLimit),
		Offset:     req.Offset,
	}
	if req.Extracted != "" {
		extracted := req.Extracted == "true"
		filter.Extracted = &extracted
	}
	if req.UpdatedSince != "" {
		since, err := time.Parse(time.RFC3339, req.UpdatedSince)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "updated_since must be an RFC 3339 timestamp", nil)
			return
		}
		filter.UpdatedSince = &since
	}

	items, total, err := h.store.ListItems(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to list items", err)
		return
	}
	respondSuccess(w, http.StatusOK, ItemListResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, start)
}

// parseItemID reads the {id} path parameter, writing a 400 response when it
// is not a positive integer.
func parseItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "item id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// GetItem returns one item with its stored keywords.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	item, err := h.store.GetItem(r.Context(), id)
	if errors.Is(err, database.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Item not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to get item", err)
		return
	}
	respondSuccess(w, http.StatusOK, item, start)
}

// UpsertItems publishes one upsert event per posted item. The ingest
// consumer stores the items and re-extracts their keywords.
func (h *Handler) UpsertItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Item ingest is not configured", nil)
		return
	}

	var req UpsertItemsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ids, err := h.publisher.PublishUpserts(r.Context(), req.Items)
	if err != nil {
		h.respondPublishError(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().Int("items", len(req.Items)).Msg("Item upserts published")
	respondSuccess(w, http.StatusAccepted, AcceptedResponse{MessageIDs: ids, Count: len(ids)}, start)
}

// DeleteItem publishes a delete event for the item.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Item ingest is not configured", nil)
		return
	}

	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	msgID, err := h.publisher.PublishDelete(r.Context(), id)
	if err != nil {
		h.respondPublishError(w, err)
		return
	}
	respondSuccess(w, http.StatusAccepted, AcceptedResponse{MessageIDs: []string{msgID}, Count: 1}, start)
}

func (h *Handler) respondPublishError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ingest.ErrPublisherUnavailable):
		w.Header().Set("Retry-After", "30")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Item ingest is temporarily unavailable", err)
	case errors.Is(err, ingest.ErrInvalidEvent), errors.Is(err, ingest.ErrUnknownEventType):
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
	default:
		respondError(w, http.StatusBadGateway, ErrCodePublishFailed, "Failed to publish item events", err)
	}
}
