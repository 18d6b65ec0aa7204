// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// ExtractRequest is the body of POST /api/v1/keywords/extract.
type ExtractRequest struct {
	Text     string `json:"text" validate:"max=20000"`
	Strategy string `json:"strategy" validate:"strategy"`
}

// ExtractResponse is the result of an ad-hoc extraction.
type ExtractResponse struct {
	Strategy string                      `json:"strategy"`
	Keywords []keywords.ExtractedKeyword `json:"keywords"`
}

// AggregateRequest is the body of POST /api/v1/keywords/aggregate.
type AggregateRequest struct {
	Documents []keywords.Document `json:"documents" validate:"max=1000,dive"`
	Strategy  string              `json:"strategy" validate:"strategy"`
}

// FilterItem is one candidate of a filter request. Items carrying keywords
// are matched on them; otherwise phrases are extracted from Text.
type FilterItem struct {
	ID       int64    `json:"id"`
	Text     string   `json:"text,omitempty" validate:"max=20000"`
	Keywords []string `json:"keywords,omitempty" validate:"max=200"`
}

// FilterRequest is the body of POST /api/v1/keywords/filter.
type FilterRequest struct {
	Items    []FilterItem `json:"items" validate:"max=1000,dive"`
	Keywords []string     `json:"keywords" validate:"max=100,dive,max=200"`
	Mode     string       `json:"mode" validate:"matchmode"`
}

// FilterResponse lists the matching items.
type FilterResponse struct {
	Items []FilterItem `json:"items"`
	Total int          `json:"total"`
	Mode  string       `json:"mode"`
}

// CategorizeRequest is the body of POST /api/v1/keywords/categorize.
type CategorizeRequest struct {
	Keywords []string `json:"keywords" validate:"max=1000,dive,max=200"`
}

// UpsertItemsRequest is the body of PUT /api/v1/items.
type UpsertItemsRequest struct {
	Items []models.Item `json:"items" validate:"required,min=1,max=500,dive"`
}

// AcceptedResponse reports published item events.
type AcceptedResponse struct {
	MessageIDs []string `json:"message_ids"`
	Count      int      `json:"count"`
}

// ListItemsRequest holds the query parameters of GET /api/v1/items.
type ListItemsRequest struct {
	MediaTypes   []string `json:"media_type" validate:"max=2,dive,oneof=movie tv"`
	Platforms    []string `json:"platform" validate:"max=20,dive,max=100"`
	Search       string   `json:"search" validate:"max=200"`
	Extracted    string   `json:"extracted" validate:"omitempty,oneof=true false"`
	UpdatedSince string   `json:"updated_since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit        int      `json:"limit" validate:"gte=0,lte=500"`
	Offset       int      `json:"offset" validate:"gte=0"`
}

// ItemListResponse is a page of catalog items.
type ItemListResponse struct {
	Items  []models.Item `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// errEmptyBody is returned by decodeJSON for a missing request body.
var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes a single JSON object from the request body into v,
// rejecting unknown fields and trailing data.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate decodes the body into v and validates it, writing a 400
// response on failure. It reports whether the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(r, v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrCodeBadRequest,
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit), nil)
			return false
		}
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// clampLimit bounds a limit query parameter to [1, maxLimit], using
// defaultLimit for non-positive values.
func clampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
