package gateway

import (
	"strconv"
	"strings"
	"time"
)

// Level mirrors the server's log level enum.
type Level string

// Levels in ascending severity order, as the enum serializes on the wire.
const (
	LevelTrace Level = "TRACE"
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Severity returns a sortable rank for the level. Unknown levels rank
// below TRACE so they are never mistaken for problems.
func (l Level) Severity() int {
	switch l {
	case LevelTrace:
		return 1
	case LevelDebug:
		return 2
	case LevelInfo:
		return 3
	case LevelWarn:
		return 4
	case LevelError:
		return 5
	default:
		return 0
	}
}

// SessionViewInfo mirrors one entry of the storages() query result.
type SessionViewInfo struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (s SessionViewInfo) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

// ParsedUpdatedAt returns the last-write timestamp as time.Time when possible.
func (s SessionViewInfo) ParsedUpdatedAt() time.Time {
	return parseTime(s.UpdatedAt)
}

// LogRecord mirrors one entry of the storageReadAt() query result. The id
// is unique within a session and assigned monotonically by the server, so
// it doubles as the pagination cursor.
type LogRecord struct {
	ID     int        `json:"id"`
	Record RecordBody `json:"record"`
}

// RecordBody carries the record payload. ModulePath, File, Line and KV are
// only present when the producing logger captured them.
type RecordBody struct {
	Level      Level     `json:"level"`
	Elapsed    float64   `json:"elapsed"` // seconds since session start
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	ModulePath *string   `json:"modulePath"`
	File       *string   `json:"file"`
	Line       *int      `json:"line"`
	KV         *KeyValue `json:"kv"`
}

// KeyValue wraps the structured payload attached to a record. The server
// ships it pre-serialized as a JSON document.
type KeyValue struct {
	JSON string `json:"json"`
}

// ElapsedDuration returns the elapsed field as a time.Duration.
func (r RecordBody) ElapsedDuration() time.Duration {
	return time.Duration(r.Elapsed * float64(time.Second))
}

// Location renders the source position ("file:line") when captured.
func (r RecordBody) Location() string {
	if r.File == nil {
		return ""
	}
	loc := *r.File
	if r.Line != nil {
		loc += ":" + strconv.Itoa(*r.Line)
	}
	return loc
}

func parseTime(value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
