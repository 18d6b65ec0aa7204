// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Transport pairs the publisher used by the API with a source of
// subscribers for consumer sessions.
type Transport struct {
	name          string
	publisher     message.Publisher
	newSubscriber func(ctx context.Context) (message.Subscriber, error)
	closers       []func() error
}

// Name is "channel" or "nats".
func (t *Transport) Name() string {
	return t.name
}

// Publisher returns the raw Watermill publisher.
func (t *Transport) Publisher() message.Publisher {
	return t.publisher
}

// NewSubscriber returns a subscriber for one consumer session. The caller
// closes it when the session ends.
func (t *Transport) NewSubscriber(ctx context.Context) (message.Subscriber, error) {
	return t.newSubscriber(ctx)
}

// Close releases the publisher and any shared connections.
func (t *Transport) Close() error {
	var errs []error
	for i := len(t.closers) - 1; i >= 0; i-- {
		if err := t.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewChannelTransport returns an in-process transport. Messages published
// while no session is subscribed are dropped, so the consumer must be
// running before the API accepts writes.
func NewChannelTransport(bufferSize int64, logger watermill.LoggerAdapter) *Transport {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            bufferSize,
		BlockPublishUntilSubscriberAck: false,
	}, logger)

	return &Transport{
		name:      "channel",
		publisher: ch,
		newSubscriber: func(context.Context) (message.Subscriber, error) {
			return sharedSubscriber{ch}, nil
		},
		closers: []func() error{ch.Close},
	}
}

// sharedSubscriber keeps sessions from closing the pub/sub shared with the
// publisher.
type sharedSubscriber struct {
	*gochannel.GoChannel
}

func (sharedSubscriber) Close() error { return nil }
