// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// Event types.
const (
	EventUpsert = "upsert"
	EventDelete = "delete"
)

var (
	// ErrUnknownEventType is returned for events whose type is neither
	// upsert nor delete.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrInvalidEvent is returned for events that cannot be applied.
	ErrInvalidEvent = errors.New("invalid item event")
)

// Event is a change to one catalog item. Delete events only need Item.ID.
type Event struct {
	Type string      `json:"type"`
	Item models.Item `json:"item"`
}

// NewUpsertEvent returns an event storing item.
func NewUpsertEvent(item *models.Item) Event {
	return Event{Type: EventUpsert, Item: *item}
}

// NewDeleteEvent returns an event removing the item with id.
func NewDeleteEvent(id int64) Event {
	return Event{Type: EventDelete, Item: models.Item{ID: id}}
}

// Validate checks the fields the handler depends on. Full item validation
// happens at the API boundary before events are published.
func (e *Event) Validate() error {
	switch e.Type {
	case EventUpsert:
		if e.Item.ID <= 0 {
			return fmt.Errorf("%w: item id must be positive", ErrInvalidEvent)
		}
		if strings.TrimSpace(e.Item.Title) == "" {
			return fmt.Errorf("%w: item %d has no title", ErrInvalidEvent, e.Item.ID)
		}
	case EventDelete:
		if e.Item.ID <= 0 {
			return fmt.Errorf("%w: item id must be positive", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	return nil
}

// EncodeEvent validates and marshals an event.
func EncodeEvent(e *Event) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DecodeEvent unmarshals and validates an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
