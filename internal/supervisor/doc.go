// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

# Overview

Long-running services live in a three-layer tree:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── LexiconLoaderService
	│   └── ReextractService (if KEYWORD_REEXTRACT_INTERVAL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── NATSServerService (if NATS_ENABLED and NATS_EMBEDDED)
	│   └── RouterService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff; each layer counts
failures independently. Supervisor events are logged through sutureslog
on a slog handler backed by zerolog (logging.NewSlogLogger).

# Usage Example

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(&cfg.Supervisor))
	tree.AddDataService(services.NewLexiconLoaderService(lex, 5*time.Second, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

See the services subpackage for the wrappers.
*/
package supervisor
