// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
)

// ServerConfig holds embedded NATS server settings.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
	ReadyTimeout      time.Duration
}

// ServerConfigFrom derives embedded server settings from the client URL so
// the publisher and subscriber reach the server they started.
func ServerConfigFrom(cfg *config.NATSConfig) (ServerConfig, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("parse NATS URL: %w", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		host, portStr = u.Host, "4222"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("parse NATS port %q: %w", portStr, err)
	}
	return ServerConfig{
		Host:              host,
		Port:              port,
		StoreDir:          cfg.StoreDir,
		JetStreamMaxMem:   cfg.MaxMemory,
		JetStreamMaxStore: cfg.MaxStore,
		ReadyTimeout:      30 * time.Second,
	}, nil
}

// EmbeddedServer runs a NATS JetStream server inside the process for
// single-instance deployments.
type EmbeddedServer struct {
	config ServerConfig
	logger zerolog.Logger

	mu     sync.Mutex
	server *server.Server
}

// NewEmbeddedServer creates a stopped server.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEmbeddedServer(cfg ServerConfig, logger zerolog.Logger) *EmbeddedServer {
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = 30 * time.Second
	}
	return &EmbeddedServer{config: cfg, logger: logger}
}

// Start boots the server and waits until it accepts connections. Starting
// a running server is a no-op.
func (s *EmbeddedServer) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil && s.server.Running() {
		return nil
	}

	opts := &server.Options{
		ServerName:         "marquee-events",
		Host:               s.config.Host,
		Port:               s.config.Port,
		JetStream:          true,
		StoreDir:           s.config.StoreDir,
		JetStreamMaxMemory: s.config.JetStreamMaxMem,
		JetStreamMaxStore:  s.config.JetStreamMaxStore,
		MaxPayload:         8 * 1024 * 1024,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return fmt.Errorf("create NATS server: %w", err)
	}
	ns.ConfigureLogger()

	go ns.Start()

	if !ns.ReadyForConnections(s.config.ReadyTimeout) {
		ns.Shutdown()
		return fmt.Errorf("NATS server not ready within %s", s.config.ReadyTimeout)
	}

	s.server = ns
	s.logger.Info().
		Str("client_url", ns.ClientURL()).
		Str("store_dir", s.config.StoreDir).
		Msg("Embedded NATS server started")
	return nil
}

// Shutdown stops the server and waits for it to exit unless ctx ends first.
func (s *EmbeddedServer) Shutdown(ctx context.Context) {
	s.mu.Lock()
	ns := s.server
	s.server = nil
	s.mu.Unlock()

	if ns == nil {
		return
	}
	ns.Shutdown()

	done := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info().Msg("Embedded NATS server stopped")
	case <-ctx.Done():
		s.logger.Warn().Err(ctx.Err()).Msg("Embedded NATS server shutdown timed out")
	}
}

// ClientURL returns the connection URL, or "" while stopped.
func (s *EmbeddedServer) ClientURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return ""
	}
	return s.server.ClientURL()
}

// IsRunning reports server health.
func (s *EmbeddedServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil && s.server.Running()
}
