// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"
)

// MessageRouter runs until ctx is canceled. Satisfied by
// *message.Router from watermill.
type MessageRouter interface {
	Run(ctx context.Context) error
}

// RouterFactory builds a fresh router. A watermill router cannot run
// twice, so every restart asks for a new one.
type RouterFactory func() (MessageRouter, error)

// RouterService supervises the ingest message router.
type RouterService struct {
	factory RouterFactory
	name    string
}

// NewRouterService creates the wrapper.
func NewRouterService(factory RouterFactory) *RouterService {
	return &RouterService{factory: factory, name: "ingest-router"}
}

// Serve implements suture.Service.
func (s *RouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	err = router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("router stopped: %w", err)
	}
	// The router was closed from elsewhere; let suture restart it.
	return fmt.Errorf("router stopped unexpectedly")
}

// String implements fmt.Stringer for logging.
func (s *RouterService) String() string {
	return s.name
}
