// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/models"
)

// ErrPublisherUnavailable is returned while the circuit breaker is open.
var ErrPublisherUnavailable = errors.New("item event publisher unavailable")

// CircuitBreakerConfig configures the breaker around event publishing.
type CircuitBreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Publisher sends item events to the ingest topic.
type Publisher struct {
	publisher message.Publisher
	topic     string
	breaker   *gobreaker.CircuitBreaker[struct{}]
	logger    zerolog.Logger
}

// NewPublisher wraps a Watermill publisher with a circuit breaker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(pub message.Publisher, topic string, cb CircuitBreakerConfig, logger zerolog.Logger) *Publisher {
	p := &Publisher{
		publisher: pub,
		topic:     topic,
		logger:    logger,
	}
	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "ingest-publisher",
		MaxRequests: cb.MaxRequests,
		Interval:    cb.Interval,
		Timeout:     cb.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cb.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Publisher circuit breaker state changed")
		},
	})
	return p
}

// PublishUpserts publishes one upsert event per item and returns the
// message IDs in item order.
func (p *Publisher) PublishUpserts(ctx context.Context, items []models.Item) ([]string, error) {
	events := make([]Event, len(items))
	for i := range items {
		events[i] = NewUpsertEvent(&items[i])
	}
	return p.Publish(ctx, events...)
}

// PublishDelete publishes a delete event for id.
func (p *Publisher) PublishDelete(ctx context.Context, id int64) (string, error) {
	ids, err := p.Publish(ctx, NewDeleteEvent(id))
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// Publish encodes and sends events in one call.
func (p *Publisher) Publish(ctx context.Context, events ...Event) ([]string, error) {
	if len(events) == 0 {
		return []string{}, nil
	}

	msgs := make([]*message.Message, len(events))
	ids := make([]string, len(events))
	for i := range events {
		payload, err := EncodeEvent(&events[i])
		if err != nil {
			return nil, err
		}
		msg := message.NewMessage(uuid.NewString(), payload)
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
		msg.Metadata.Set("event_type", events[i].Type)
		msg.SetContext(ctx)
		msgs[i] = msg
		ids[i] = msg.UUID
	}

	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(p.topic, msgs...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrPublisherUnavailable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("publish %d item events: %w", len(msgs), err)
	}
	return ids, nil
}

// BreakerState returns the circuit breaker state for health reporting.
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}
