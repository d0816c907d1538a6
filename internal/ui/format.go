package ui

import (
	"fmt"
	"strings"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

// formatElapsed renders elapsed seconds with millisecond precision and a
// stable width for column alignment.
func formatElapsed(seconds float64) string {
	return fmt.Sprintf("%10.3fs", seconds)
}

// formatLevel pads the level to the widest enum value so rows line up.
func formatLevel(level gateway.Level) string {
	return fmt.Sprintf("%-5s", string(level))
}

// truncate cuts s to at most width cells, appending an ellipsis when
// anything was dropped. Width below 1 yields the empty string.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// pad right-pads s with spaces to exactly width cells, truncating first
// when s is too long.
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// window computes the [start, end) row range to draw for a list of total
// rows inside a viewport of height rows, keeping cursor visible. offset is
// the previous top row; the returned offset is the adjusted one.
func window(total, height, cursor, offset int) (start, end, newOffset int) {
	if total <= 0 || height <= 0 {
		return 0, 0, 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	if offset > total-1 {
		offset = total - 1
	}
	if offset < 0 {
		offset = 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	end = offset + height
	if end > total {
		end = total
	}
	return offset, end, offset
}

// clampCursor keeps a cursor inside [0, total).
func clampCursor(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= total {
		return total - 1
	}
	return cursor
}
