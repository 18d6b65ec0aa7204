// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"
	"time"
)

// NATSServerRunner matches the embedded NATS server lifecycle.
//
// Satisfied by *ingest.EmbeddedServer:
//   - Start(ctx context.Context) error - starts the server and waits until ready
//   - Shutdown(ctx context.Context) - drains clients and stops the server
type NATSServerRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
}

// NATSServerService wraps the embedded NATS server as a supervised service.
//
// It adapts the Start/Shutdown lifecycle to suture's Serve pattern:
//  1. Calls Start(ctx) to boot the server
//  2. Waits for context cancellation
//  3. Calls Shutdown with a fresh timeout context
type NATSServerService struct {
	server          NATSServerRunner
	shutdownTimeout time.Duration
	name            string
}

// NewNATSServerService creates the wrapper. A non-positive timeout uses 10s.
func NewNATSServerService(server NATSServerRunner, shutdownTimeout time.Duration) *NATSServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &NATSServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "nats-server",
	}
}

// Serve implements suture.Service.
//
// If Start() fails, the error is returned immediately, causing suture to
// restart the service according to its backoff policy.
func (s *NATSServerService) Serve(ctx context.Context) error {
	if err := s.server.Start(ctx); err != nil {
		return fmt.Errorf("NATS server start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.server.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *NATSServerService) String() string {
	return s.name
}
