// Package logbuffer maintains the authoritative record history for one
// viewing session and a cheap, always-current view of it for rendering.
//
// # Overview
//
// The viewer fetches a session's records in pages. Each page lands in a
// Buffer via Replace (initial load) or Append (every later page). After
// every mutation the buffer restores its invariants — history ascending by
// record id, one record per id — and synchronously recomputes the visible
// view: the history filtered by an optional regular expression against
// category or message, then truncated to the trailing RetentionLimit
// records.
//
// Filtering happens on the full history before truncation. A narrow
// filter can therefore surface records older than the last RetentionLimit
// unfiltered records would show, which is exactly what an operator
// hunting an old error wants.
//
// # Lifecycle
//
// A Buffer is created when a session view opens and discarded when it
// closes; nothing persists across runs. HighestID provides the pagination
// cursor (highest seen id, so the next fetch starts at HighestID()+1) and
// is the only operation that can fail — ErrEmpty before any data loaded.
//
// # Concurrency
//
// The buffer is intentionally lock-free and not safe for concurrent use.
// The UI update loop is the only mutator and sequences fetches so at most
// one result is applied at a time.
package logbuffer
