// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra provides container fixtures for integration tests.
//
// Every file is guarded by the integration build tag, so the package and
// its testcontainers dependency only compile for:
//
//	go test -tags integration ./...
//
// # NATS Container
//
// NATSContainer runs a JetStream-enabled NATS server for exercising the
// ingest transport against a real broker:
//
//	func TestIngestOverNATS(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nc, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, nc)
//
//	    transport, err := ingest.NewNATSTransport(&config.NATSConfig{URL: nc.URL, ...}, ...)
//	    // ...
//	}
package testinfra
