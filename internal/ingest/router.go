// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

const handlerName = "catalog-items"

// RouterConfig holds configuration for the consumer's Watermill router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	// Retry configuration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// PoisonQueueSuffix is appended to the consumed topic to name the topic
	// receiving events that failed every retry. Empty disables it.
	PoisonQueueSuffix string

	// Deduplication of successfully handled message IDs
	DeduplicationEnabled bool
	DeduplicationTTL     time.Duration
	DeduplicationSize    int
}

// DefaultRouterConfig returns production defaults for the router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
		RetryMultiplier:      2.0,
		PoisonQueueSuffix:    ".failed",
		DeduplicationEnabled: true,
		DeduplicationTTL:     5 * time.Minute,
		DeduplicationSize:    10000,
	}
}

// RouterConfigFrom maps the NATS section of the application config onto
// router settings. The same settings apply to the in-process transport.
func RouterConfigFrom(cfg *config.NATSConfig) RouterConfig {
	rc := DefaultRouterConfig()
	rc.RetryMaxRetries = cfg.RouterRetryCount
	if cfg.RouterRetryInitialInterval > 0 {
		rc.RetryInitialInterval = cfg.RouterRetryInitialInterval
	}
	if cfg.RouterCloseTimeout > 0 {
		rc.CloseTimeout = cfg.RouterCloseTimeout
	}
	rc.DeduplicationEnabled = cfg.RouterDeduplicationEnabled
	if cfg.RouterDeduplicationTTL > 0 {
		rc.DeduplicationTTL = cfg.RouterDeduplicationTTL
	}
	return rc
}

// Consumer builds router sessions that feed item events to a Handler. A
// Watermill router cannot be run twice, so each (re)start of the ingest
// service asks for a fresh Session. The deduplication cache outlives
// sessions.
type Consumer struct {
	cfg       RouterConfig
	topic     string
	transport *Transport
	handler   *Handler
	seen      *cache.LRUCache
	logger    watermill.LoggerAdapter
}

// NewConsumer creates a consumer reading topic from transport.
func NewConsumer(cfg RouterConfig, topic string, transport *Transport, handler *Handler, logger watermill.LoggerAdapter) *Consumer {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	c := &Consumer{
		cfg:       cfg,
		topic:     topic,
		transport: transport,
		handler:   handler,
		logger:    logger,
	}
	if cfg.DeduplicationEnabled {
		c.seen = cache.NewLRUCache(cfg.DeduplicationSize, cfg.DeduplicationTTL)
	}
	return c
}

// Session is one run of the consumer router.
type Session struct {
	router     *message.Router
	subscriber message.Subscriber
}

// NewSession subscribes to the transport and assembles a router with the
// middleware chain described in the package documentation.
func (c *Consumer) NewSession() (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sub, err := c.transport.NewSubscriber(ctx)
	if err != nil {
		return nil, err
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: c.cfg.CloseTimeout}, c.logger)
	if err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	if c.cfg.PoisonQueueSuffix != "" {
		poison, err := middleware.PoisonQueue(c.transport.Publisher(), PoisonTopic(c.topic, c.cfg))
		if err != nil {
			_ = sub.Close()
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		router.AddMiddleware(poison)
	}

	router.AddMiddleware(middleware.Recoverer)

	if c.seen != nil {
		router.AddMiddleware(c.deduplicate)
	}

	retry := middleware.Retry{
		MaxRetries:      c.cfg.RetryMaxRetries,
		InitialInterval: c.cfg.RetryInitialInterval,
		MaxInterval:     c.cfg.RetryMaxInterval,
		Multiplier:      c.cfg.RetryMultiplier,
		Logger:          c.logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler(handlerName, c.topic, sub, c.handler.Handle)

	return &Session{router: router, subscriber: sub}, nil
}

// PoisonTopic returns the topic receiving events that failed every retry,
// or "" when the poison queue is disabled.
func PoisonTopic(topic string, cfg RouterConfig) string {
	if cfg.PoisonQueueSuffix == "" {
		return ""
	}
	return topic + cfg.PoisonQueueSuffix
}

// deduplicate skips messages whose ID was already handled successfully.
// IDs are recorded only after success so failed messages stay eligible for
// redelivery.
func (c *Consumer) deduplicate(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		if c.seen.Contains(msg.UUID) {
			metrics.RecordIngestMessage("unknown", metrics.OutcomeDuplicate)
			c.logger.Debug("Skipping duplicate item event", watermill.LogFields{"message_uuid": msg.UUID})
			return nil, nil
		}
		out, err := h(msg)
		if err == nil {
			c.seen.IsDuplicate(msg.UUID)
		}
		return out, err
	}
}

// Run processes messages until ctx is canceled, then closes the router and
// the session's subscriber.
func (s *Session) Run(ctx context.Context) error {
	defer func() { _ = s.subscriber.Close() }()
	return s.router.Run(ctx)
}

// Running is closed once the router's handlers are subscribed.
func (s *Session) Running() chan struct{} {
	return s.router.Running()
}
