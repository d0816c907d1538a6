// Package ui provides the terminal user interface for uplogview.
//
// # Architecture
//
// The UI is a single bubbletea Model with two screens: the session list
// and the log view for one open session. Files are split per concern:
//
//   - ui.go: Model, message routing, layout constants, Run
//   - sessions.go: session list fetching, navigation and rendering
//   - logs.go: log view state, sequenced page fetching, follow mode,
//     row rendering
//   - filter.go: the regex filter prompt
//   - detail.go: the record detail overlay with kv pretty-printing
//   - theme.go: Dracula and Slate palettes and their lipgloss styles
//   - format.go: pure formatting and windowing helpers
//
// # Fetch sequencing
//
// The log view owns exactly one logbuffer.Buffer and is its only mutator.
// Fetches run as bubbletea commands, but their results funnel back through
// the single update loop: each batch is applied in one Replace or Append,
// a batch for a session that has since been closed is discarded whole, and
// the fetching flag guarantees at most one request in flight. Follow mode
// rides a tick that only issues a fetch when the view is idle.
//
// # Filtering
//
// "/" opens a prompt; the pattern is compiled with regexp.Compile when
// submitted. A syntax error is shown beside the prompt and nothing else
// changes — the buffer never sees an invalid pattern. Empty input clears
// the filter.
//
// # Key bindings
//
//   - sessions: enter open, j/k move, g/G jump, r refresh, q quit
//   - logs: j/k move, ctrl+d/u page, g/G jump, space toggle follow,
//     n fetch next page, / filter, enter detail, esc back
//   - anywhere: T cycles the theme, ctrl+c quits
package ui
