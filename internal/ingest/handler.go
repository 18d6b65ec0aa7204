// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/indexer"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// ItemStore is the catalog write access the handler needs. *database.DB
// satisfies it.
type ItemStore interface {
	UpsertItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// ItemExtractor re-extracts keywords for a stored item. *indexer.Indexer
// satisfies it.
type ItemExtractor interface {
	ExtractItem(ctx context.Context, item *models.Item) ([]keywords.ExtractedKeyword, error)
}

// HandlerStats counts consumed events by outcome.
type HandlerStats struct {
	Upserts int64 `json:"upserts"`
	Deletes int64 `json:"deletes"`
	Invalid int64 `json:"invalid"`
	Failed  int64 `json:"failed"`
}

// Handler applies item events to the store.
type Handler struct {
	store     ItemStore
	extractor ItemExtractor
	logger    zerolog.Logger

	upserts atomic.Int64
	deletes atomic.Int64
	invalid atomic.Int64
	failed  atomic.Int64
}

// NewHandler creates a handler. extractor may be nil, in which case upserts
// only store the item.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(store ItemStore, extractor ItemExtractor, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// Handle implements message.NoPublishHandlerFunc. Returning an error nacks
// the message and triggers the router's retry middleware.
func (h *Handler) Handle(msg *message.Message) error {
	event, err := DecodeEvent(msg.Payload)
	if err != nil {
		h.invalid.Add(1)
		metrics.RecordIngestMessage("unknown", metrics.OutcomeInvalid)
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed item event")
		return nil
	}

	if err := h.Apply(msg.Context(), event); err != nil {
		h.failed.Add(1)
		metrics.RecordIngestMessage(event.Type, metrics.OutcomeError)
		return err
	}
	metrics.RecordIngestMessage(event.Type, metrics.OutcomeSuccess)
	return nil
}

// Apply performs one event against the store.
func (h *Handler) Apply(ctx context.Context, event *Event) error {
	switch event.Type {
	case EventUpsert:
		return h.upsert(ctx, &event.Item)
	case EventDelete:
		return h.delete(ctx, event.Item.ID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}
}

func (h *Handler) upsert(ctx context.Context, item *models.Item) error {
	if err := h.store.UpsertItem(ctx, item); err != nil {
		return fmt.Errorf("upsert item %d: %w", item.ID, err)
	}
	h.upserts.Add(1)

	if h.extractor == nil {
		return nil
	}
	kws, err := h.extractor.ExtractItem(ctx, item)
	switch {
	case errors.Is(err, indexer.ErrExtractionDisabled):
		return nil
	case errors.Is(err, database.ErrItemNotFound):
		// Deleted by a later event before extraction ran.
		return nil
	case err != nil:
		return fmt.Errorf("extract keywords of item %d: %w", item.ID, err)
	}

	h.logger.Debug().
		Int64("item_id", item.ID).
		Int("keywords", len(kws)).
		Msg("Item stored and keywords extracted")
	return nil
}

func (h *Handler) delete(ctx context.Context, id int64) error {
	err := h.store.DeleteItem(ctx, id)
	if err != nil && !errors.Is(err, database.ErrItemNotFound) {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	h.deletes.Add(1)
	h.logger.Debug().Int64("item_id", id).Bool("existed", err == nil).Msg("Item deleted")
	return nil
}

// Stats returns event counters since the handler was created.
func (h *Handler) Stats() HandlerStats {
	return HandlerStats{
		Upserts: h.upserts.Load(),
		Deletes: h.deletes.Load(),
		Invalid: h.invalid.Load(),
		Failed:  h.failed.Load(),
	}
}
