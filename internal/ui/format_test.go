package ui

import (
	"testing"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "     0.000s"},
		{name: "millis", seconds: 1.5, want: "     1.500s"},
		{name: "large", seconds: 12345.678, want: " 12345.678s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatElapsed(tt.seconds); got != tt.want {
				t.Errorf("formatElapsed(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatLevel(t *testing.T) {
	if got := formatLevel(gateway.LevelWarn); got != "WARN " {
		t.Errorf("formatLevel(WARN) = %q, want %q", got, "WARN ")
	}
	if got := formatLevel(gateway.LevelError); got != "ERROR" {
		t.Errorf("formatLevel(ERROR) = %q, want %q", got, "ERROR")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{name: "fits", input: "hello", width: 10, want: "hello"},
		{name: "exact", input: "hello", width: 5, want: "hello"},
		{name: "cut", input: "hello world", width: 8, want: "hello w…"},
		{name: "one", input: "hello", width: 1, want: "…"},
		{name: "zero", input: "hello", width: 0, want: ""},
		{name: "multibyte", input: "ログビューア", width: 4, want: "ログビ…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 5); got != "ab   " {
		t.Errorf("pad = %q, want %q", got, "ab   ")
	}
	if got := pad("abcdef", 4); got != "abc…" {
		t.Errorf("pad = %q, want %q", got, "abc…")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		height    int
		cursor    int
		offset    int
		wantStart int
		wantEnd   int
	}{
		{name: "empty", total: 0, height: 10, cursor: 0, offset: 0, wantStart: 0, wantEnd: 0},
		{name: "fits", total: 5, height: 10, cursor: 3, offset: 0, wantStart: 0, wantEnd: 5},
		{name: "cursor below window", total: 100, height: 10, cursor: 25, offset: 0, wantStart: 16, wantEnd: 26},
		{name: "cursor above window", total: 100, height: 10, cursor: 5, offset: 40, wantStart: 5, wantEnd: 15},
		{name: "cursor at end", total: 100, height: 10, cursor: 99, offset: 0, wantStart: 90, wantEnd: 100},
		{name: "cursor clamped", total: 10, height: 4, cursor: 50, offset: 0, wantStart: 6, wantEnd: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, _ := window(tt.total, tt.height, tt.cursor, tt.offset)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("window(%d, %d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.total, tt.height, tt.cursor, tt.offset, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestClampCursor(t *testing.T) {
	if got := clampCursor(-1, 10); got != 0 {
		t.Errorf("clampCursor(-1, 10) = %d, want 0", got)
	}
	if got := clampCursor(10, 10); got != 9 {
		t.Errorf("clampCursor(10, 10) = %d, want 9", got)
	}
	if got := clampCursor(3, 0); got != 0 {
		t.Errorf("clampCursor(3, 0) = %d, want 0", got)
	}
}
