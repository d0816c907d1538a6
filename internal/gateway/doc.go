// Package gateway provides a GraphQL client for the uplog tools server.
//
// # Overview
//
// The uplog tools server records logging sessions and exposes them through
// a small GraphQL query surface. This package wraps that surface in two
// typed calls:
//
//   - Sessions: the storages() query, listing every known recording
//     session with creation and last-write timestamps.
//   - ReadAt: the storageReadAt(name, start, length) query, returning an
//     ordered batch of log records for one session beginning at the given
//     pagination cursor.
//
// Record ids are unique per session and assigned monotonically by the
// server, so callers use the highest id they have seen, plus one, as the
// next cursor.
//
// # Configuration
//
// A Client is built from an explicit Options value (endpoint URL, request
// headers, timeout) constructed once at application start and threaded
// through. There is no package-level client and no ambient state.
//
// # Wire shape
//
// Responses decode into SessionViewInfo and LogRecord, which mirror the
// server schema field for field:
//
//	{ id, record { level elapsed category message modulePath file line kv { json } } }
//
// Levels arrive as the enum strings TRACE, DEBUG, INFO, WARN, ERROR.
// Elapsed is float seconds since the session started. modulePath, file,
// line and kv are optional and stay pointers so absence is distinguishable
// from zero values. Timestamps stay RFC3339 strings on the wire; use the
// Parsed helpers for time.Time.
//
// # Error handling
//
// All errors — transport failures, HTTP status errors and GraphQL errors
// alike — are wrapped with the failing query's name and returned to the
// caller. An empty record batch is not an error. The client performs no
// retries and keeps no cache; the caller owns fetch cadence.
package gateway
