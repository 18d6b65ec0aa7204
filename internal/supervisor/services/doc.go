// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper translates a component lifecycle (Start/Shutdown, Run,
ListenAndServe, one-shot load) into suture's context-aware Serve and
implements fmt.Stringer so supervisor events name the service.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown bounded by a timeout

Lexicon Loader (LexiconLoaderService):
  - Loads the vocabulary lexicon with exponential backoff between attempts
  - Exits with suture.ErrDoNotRestart once the lexicon is loaded

Keyword Re-extraction (ReextractService):
  - Runs a catalog-wide extraction on startup (optional) and on an interval
  - Run failures are logged; the service keeps its schedule

NATS Server (NATSServerService):
  - Wraps the embedded NATS server Start/Shutdown lifecycle

Ingest Router (RouterService):
  - Builds a fresh watermill router per start and runs it until canceled

# Example

	tree.AddDataService(services.NewLexiconLoaderService(lex, 5*time.Second, 5*time.Minute, logger))
	tree.AddDataService(services.NewReextractService(ix, services.ReextractServiceConfig{
	    Interval: 24 * time.Hour,
	}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
*/
package services
