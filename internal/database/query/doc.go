// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder offers a fluent interface for parameterized WHERE clauses
// over the items table:
//
//	wb := query.NewWhereBuilder()
//	wb.AddMediaTypes([]string{"movie", "tv"})
//	wb.AddPlatforms([]string{"netflix"})
//	wb.AddTitleSearch("Heat")
//	whereClause, args := wb.Build()
//	// Result: "media_type IN (?, ?) AND platform IN (?) AND strpos(lower(title), ?) > 0"
//	// Args: ["movie", "tv", "netflix", "heat"]
//
// All values are bound as placeholders. Column names passed to AddIn and
// AddClause are never taken from user input.
//
// WhereBuilder is not safe for concurrent use; create one per query.
package query
