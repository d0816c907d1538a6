package logbuffer

import (
	"errors"
	"regexp"
	"sort"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

// RetentionLimit bounds how many records the visible view may hold.
const RetentionLimit = 10000

// ErrEmpty is returned by HighestID before any records have been loaded.
var ErrEmpty = errors.New("logbuffer: no records loaded")

// Buffer accumulates the fetched record history for one viewing session
// and derives a filtered, retention-bounded view from it. It is not safe
// for concurrent use: the UI driver guarantees at most one in-flight
// mutation at a time, so the buffer carries no lock.
type Buffer struct {
	all     []gateway.LogRecord
	pattern *regexp.Regexp
	limit   int
	visible []gateway.LogRecord
}

// New returns an empty buffer with the standard retention limit.
func New() *Buffer {
	return newBuffer(RetentionLimit)
}

func newBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = RetentionLimit
	}
	return &Buffer{limit: limit}
}

// Replace discards any prior history and makes records the new one.
// Used for the initial page load.
func (b *Buffer) Replace(records []gateway.LogRecord) {
	b.all = append([]gateway.LogRecord(nil), records...)
	b.normalize()
	b.recompute()
}

// Append adds the next fetched page to the history. An empty batch is a
// no-op apart from recomputing the view.
func (b *Buffer) Append(records []gateway.LogRecord) {
	b.all = append(b.all, records...)
	b.normalize()
	b.recompute()
}

// SetFilter stores the pattern and recomputes the view. A nil pattern
// clears the filter. Compiling the pattern is the caller's problem;
// a syntax error never reaches the buffer.
func (b *Buffer) SetFilter(pattern *regexp.Regexp) {
	b.pattern = pattern
	b.recompute()
}

// Filter returns the active pattern, or nil when no filter is set.
func (b *Buffer) Filter() *regexp.Regexp {
	return b.pattern
}

// View returns the current filtered, retention-bounded view. The slice is
// owned by the buffer and rebuilt on every mutation; it never aliases the
// history, so mutating it cannot corrupt the buffer.
func (b *Buffer) View() []gateway.LogRecord {
	return b.visible
}

// Len reports how many records the full history holds.
func (b *Buffer) Len() int {
	return len(b.all)
}

// HighestID returns the maximum record id seen so far, the basis for the
// next pagination cursor. It fails with ErrEmpty until the first
// successful Replace or Append delivers data.
func (b *Buffer) HighestID() (int, error) {
	if len(b.all) == 0 {
		return 0, ErrEmpty
	}
	return b.all[len(b.all)-1].ID, nil
}

// normalize restores the history invariant: ascending by id, one record
// per id. The server does not document uniqueness across overlapping
// pagination windows, so duplicates are dropped here, keeping the
// first-fetched copy. A full re-sort per mutation is deliberate; at the
// retention scale involved an incremental merge is not worth its
// complexity.
func (b *Buffer) normalize() {
	sort.SliceStable(b.all, func(i, j int) bool { return b.all[i].ID < b.all[j].ID })
	out := b.all[:0]
	for _, r := range b.all {
		if n := len(out); n > 0 && out[n-1].ID == r.ID {
			continue
		}
		out = append(out, r)
	}
	b.all = out
}

// recompute derives visible from the full history: filter first, then keep
// the trailing limit records. Filtering before truncation means a narrow
// filter can surface records older than the unfiltered tail would show.
func (b *Buffer) recompute() {
	src := b.all
	if b.pattern != nil {
		matched := make([]gateway.LogRecord, 0, len(b.all))
		for _, r := range b.all {
			if b.pattern.MatchString(r.Record.Category) || b.pattern.MatchString(r.Record.Message) {
				matched = append(matched, r)
			}
		}
		src = matched
	}
	if len(src) > b.limit {
		src = src[len(src)-b.limit:]
	}
	b.visible = append([]gateway.LogRecord(nil), src...)
}
