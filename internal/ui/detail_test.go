package ui

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

func TestPrettyKV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "object sorted by key",
			input: `{"retries":3,"addr":"10.0.0.1","ok":true}`,
			want:  []string{`addr: "10.0.0.1"`, `ok: true`, `retries: 3`},
		},
		{
			name:  "nested values kept as json",
			input: `{"peer":{"host":"a","port":1}}`,
			want:  []string{`peer: {"host":"a","port":1}`},
		},
		{
			name:  "non-object returned raw",
			input: `[1,2,3]`,
			want:  []string{`[1,2,3]`},
		},
		{
			name:  "malformed returned raw",
			input: `{"broken":`,
			want:  []string{`{"broken":`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prettyKV(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("prettyKV(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestThemeCycle(t *testing.T) {
	if GetTheme("nope").Name != "Dracula" {
		t.Errorf("unknown theme did not fall back to Dracula")
	}
	if GetTheme("Slate").Name != "Slate" {
		t.Errorf("GetTheme(Slate) returned wrong theme")
	}
	if next := NextTheme("Dracula"); next != "Slate" {
		t.Errorf("NextTheme(Dracula) = %q, want Slate", next)
	}
	if next := NextTheme("Slate"); next != "Dracula" {
		t.Errorf("NextTheme(Slate) = %q, want Dracula", next)
	}
}

func TestLevelStylesAreDistinct(t *testing.T) {
	styles := draculaTheme().Styles()
	levels := []gateway.Level{
		gateway.LevelTrace,
		gateway.LevelDebug,
		gateway.LevelInfo,
		gateway.LevelWarn,
		gateway.LevelError,
	}
	seen := map[string]bool{}
	for _, level := range levels {
		key := fmt.Sprintf("%v", styles.LevelStyle(level).GetForeground())
		if seen[key] {
			t.Errorf("level %s shares a color with another level", level)
		}
		seen[key] = true
	}
}
