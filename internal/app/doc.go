// Package app provides the orchestration layer for uplogview.
//
// # Overview
//
// Run is the composition root: it loads configuration, applies flag
// overrides, opens the optional debug log, builds the GraphQL gateway
// client from an explicit options object, and hands everything to the UI.
// No package-level state is created anywhere in the process; the client
// and config are constructed once here and threaded through.
//
// # Error handling
//
// Everything up to UI start is fatal and returned from Run: an unreadable
// config file, an unopenable debug log, a malformed endpoint. Once the UI
// is running, gateway failures are recoverable — they show up in the
// status line and the debug log, and the viewer keeps whatever data it
// already has.
//
// # Fetch sequencing
//
// Unlike a free-running poller, fetching is driven from the UI update
// loop: a follow tick or an explicit key issues a fetch only when no fetch
// is in flight, and each result is applied to the session's log buffer in
// a single step. That guarantee is what lets the buffer stay lock-free.
package app
