// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package query

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddMediaTypes([]string{"movie"})
//	wb.AddTitleSearch("heat")
//	whereClause, args := wb.Build()
//	// media_type IN (?) AND strpos(lower(title), ?) > 0
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
// This is useful for custom conditions not covered by helper methods.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds "column IN (?, ?, ...)" for the given values.
// An empty slice is skipped. column must be a trusted identifier.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddMediaTypes filters by media type ("movie", "tv").
func (wb *WhereBuilder) AddMediaTypes(mediaTypes []string) *WhereBuilder {
	return wb.AddIn("media_type", mediaTypes)
}

// AddPlatforms filters by streaming platform.
func (wb *WhereBuilder) AddPlatforms(platforms []string) *WhereBuilder {
	return wb.AddIn("platform", platforms)
}

// AddTitleSearch adds a case-insensitive substring match on the title.
// Blank search text is skipped.
func (wb *WhereBuilder) AddTitleSearch(search string) *WhereBuilder {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return wb
	}
	return wb.AddClause("strpos(lower(title), ?) > 0", search)
}

// AddUpdatedSince keeps items updated at or after since. Nil is skipped.
func (wb *WhereBuilder) AddUpdatedSince(since *time.Time) *WhereBuilder {
	if since == nil {
		return wb
	}
	return wb.AddClause("updated_at >= ?", since.UTC())
}

// AddExtracted filters on whether keywords have been extracted for the
// item. Nil is skipped.
func (wb *WhereBuilder) AddExtracted(extracted *bool) *WhereBuilder {
	if extracted == nil {
		return wb
	}
	if *extracted {
		return wb.AddClause("keywords_extracted_at IS NOT NULL")
	}
	return wb.AddClause("keywords_extracted_at IS NULL")
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
//
// Example:
//
//	whereClause, args := wb.Build()
//	query := fmt.Sprintf("SELECT * FROM items WHERE %s", whereClause)
//	db.Query(query, args...)
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
