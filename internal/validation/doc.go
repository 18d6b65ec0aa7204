// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by all request handlers. It reports
// fields by their JSON names and translates failures into the API's
// VALIDATION_ERROR format.
//
// # Usage
//
//	type extractRequest struct {
//	    Text     string `json:"text" validate:"required,max=100000"`
//	    Strategy string `json:"strategy" validate:"strategy"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - keyword: text that is not blank after keyword normalization
//   - strategy: empty, rake, vocabulary or auto
//   - matchmode: empty, substring or exact
//
// Nested failures are reported with their path, e.g. "items[2].title".
package validation
