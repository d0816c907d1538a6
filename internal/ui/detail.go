package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/valyala/fastjson"
)

// renderDetail renders the record detail overlay for the selected row.
func (m Model) renderDetail(height int) string {
	records := m.logs.buffer.View()
	if len(records) == 0 {
		return m.styles.MutedText.Render("no record selected")
	}
	record := records[clampCursor(m.logs.cursor, len(records))]
	body := record.Record

	var b strings.Builder
	writeField := func(label, value string) {
		b.WriteString(m.styles.MutedText.Render(pad(label, 12)))
		b.WriteString(m.styles.Text.Render(value))
		b.WriteString("\n")
	}

	writeField("id", fmt.Sprintf("%d", record.ID))
	b.WriteString(m.styles.MutedText.Render(pad("level", 12)))
	b.WriteString(m.styles.LevelStyle(body.Level).Render(string(body.Level)))
	b.WriteString("\n")
	writeField("elapsed", body.ElapsedDuration().String())
	writeField("category", body.Category)
	writeField("message", body.Message)
	if body.ModulePath != nil {
		writeField("module", *body.ModulePath)
	}
	if loc := body.Location(); loc != "" {
		writeField("source", loc)
	}
	if body.KV != nil {
		b.WriteString(m.styles.MutedText.Render("kv"))
		b.WriteString("\n")
		for _, line := range prettyKV(body.KV.JSON) {
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(truncate(line, m.width-6)))
			b.WriteString("\n")
		}
	}

	inner := strings.TrimRight(b.String(), "\n")
	boxWidth := m.width - 4
	if boxWidth < 20 {
		boxWidth = m.width
	}
	return m.styles.Overlay.Width(boxWidth).Render(inner)
}

// prettyKV expands a kv JSON document into one "key: value" line per
// entry, sorted by key. Anything that is not a JSON object — including a
// payload that fails to parse — is returned as a single raw line rather
// than an error; the overlay is a viewer, not a validator.
func prettyKV(raw string) []string {
	parsed, err := fastjson.Parse(raw)
	if err != nil || parsed.Type() != fastjson.TypeObject {
		return []string{raw}
	}
	obj, err := parsed.Object()
	if err != nil {
		return []string{raw}
	}
	var lines []string
	obj.Visit(func(key []byte, value *fastjson.Value) {
		lines = append(lines, fmt.Sprintf("%s: %s", key, value.String()))
	})
	sort.Strings(lines)
	return lines
}
