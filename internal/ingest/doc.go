// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package ingest consumes catalog item events and keeps stored keywords in step
with the catalog.

Events are JSON documents of the form

	{"type": "upsert", "item": {...}}
	{"type": "delete", "item": {"id": 42}}

published on a single topic (catalog.items by default). An upsert stores the
item and re-extracts its keywords; a delete removes the item together with
its keywords.

# Transport

Two transports carry events:

  - In-process: a Watermill gochannel pub/sub, used when NATS is disabled.
    Events published through the HTTP API are consumed in the same process.
  - NATS JetStream: watermill-nats publisher and durable queue subscriber,
    optionally against an EmbeddedServer started by the process itself.

# Router

Each consumer session runs a Watermill router with this middleware chain
(outer to inner):

 1. PoisonQueue: moves events that failed every retry to <topic>.failed
 2. Recoverer: converts handler panics into errors
 3. Deduplicator: skips message IDs already handled successfully
 4. Retry: exponential backoff for transient store failures

Only successfully handled IDs are remembered, so a message that exhausted
its retries is processed again when the broker redelivers it.

Malformed events are logged and acknowledged; redelivering them cannot
succeed.
*/
package ingest
