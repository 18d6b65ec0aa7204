// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/marquee/internal/config"
)

// NATS client defaults.
const (
	natsMaxReconnects   = -1 // Unlimited
	natsReconnectWait   = 2 * time.Second
	natsAckWait         = 30 * time.Second
	natsMaxDeliver      = 5
	natsMaxAckPending   = 1000
	natsDuplicateWindow = 2 * time.Minute
)

// StreamName derives the JetStream stream name from the event topic.
// Stream names cannot contain dots.
func StreamName(topic string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "*", "", ">", "").Replace(topic))
}

// NewNATSTransport returns a JetStream transport. The publisher connects
// lazily; the stream is created or updated each time a consumer session
// starts so a restarted broker gets its stream back.
func NewNATSTransport(cfg *config.NATSConfig, routerCfg RouterConfig, logger watermill.LoggerAdapter) (*Transport, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	stream := StreamName(cfg.Topic)

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOptions("publisher", logger),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	subjects := []string{cfg.Topic}
	if poison := PoisonTopic(cfg.Topic, routerCfg); poison != "" {
		subjects = append(subjects, poison)
	}
	streamCfg := jetstream.StreamConfig{
		Name:       stream,
		Subjects:   subjects,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     time.Duration(cfg.StreamRetentionDays) * 24 * time.Hour,
		Duplicates: natsDuplicateWindow,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}

	newSubscriber := func(ctx context.Context) (message.Subscriber, error) {
		if err := EnsureStream(ctx, cfg.URL, streamCfg); err != nil {
			return nil, err
		}
		sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
			URL:              cfg.URL,
			QueueGroupPrefix: cfg.QueueGroup,
			SubscribersCount: cfg.SubscribersCount,
			AckWaitTimeout:   natsAckWait,
			CloseTimeout:     routerCfg.CloseTimeout,
			NatsOptions:      natsOptions("subscriber", logger),
			Unmarshaler:      &wmNats.NATSMarshaler{},
			JetStream: wmNats.JetStreamConfig{
				AutoProvision: false,
				AckAsync:      false,
				SubscribeOptions: []natsgo.SubOpt{
					natsgo.BindStream(stream),
					natsgo.MaxDeliver(natsMaxDeliver),
					natsgo.MaxAckPending(natsMaxAckPending),
					natsgo.AckWait(natsAckWait),
					natsgo.DeliverAll(),
				},
				DurablePrefix: cfg.DurableName,
			},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create watermill subscriber: %w", err)
		}
		return sub, nil
	}

	return &Transport{
		name:          "nats",
		publisher:     pub,
		newSubscriber: newSubscriber,
		closers:       []func() error{pub.Close},
	}, nil
}

func natsOptions(role string, logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name("marquee-" + role),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(natsMaxReconnects),
		natsgo.ReconnectWait(natsReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS "+role+" disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS "+role+" reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
}

// EnsureStream creates the stream or updates it to cfg. Calling it
// repeatedly is safe.
func EnsureStream(ctx context.Context, url string, cfg jetstream.StreamConfig) error {
	nc, err := natsgo.Connect(url, natsgo.Name("marquee-provisioner"), natsgo.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	if _, err := js.CreateOrUpdateStream(ctx, cfg); err != nil {
		return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
	}
	return nil
}
