package ui

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleFilterKey processes keyboard input while the filter prompt is
// open.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.logs.prompting = false
		m.logs.filterErr = ""
		m.logs.prompt.Blur()
		return m, nil

	case "enter":
		if m.applyFilter(m.logs.prompt.Value()) {
			m.logs.prompting = false
			m.logs.prompt.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.prompt, cmd = m.logs.prompt.Update(msg)
	return m, cmd
}

// applyFilter compiles the pattern and hands it to the buffer. A syntax
// error is shown next to the prompt and the buffer is left untouched; the
// prompt stays open so the pattern can be fixed. Empty input clears the
// filter. Reports whether the prompt should close.
func (m *Model) applyFilter(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		m.logs.buffer.SetFilter(nil)
		m.logs.filterText = ""
		m.logs.filterErr = ""
		m.resetLogCursor()
		return true
	}

	pattern, err := regexp.Compile(trimmed)
	if err != nil {
		m.logs.filterErr = err.Error()
		m.logger.Debug().Err(err).Str("pattern", trimmed).Msg("filter rejected")
		return false
	}

	m.logs.buffer.SetFilter(pattern)
	m.logs.filterText = trimmed
	m.logs.filterErr = ""
	m.resetLogCursor()
	m.logger.Debug().Str("pattern", trimmed).Msg("filter applied")
	return true
}

func (m *Model) resetLogCursor() {
	total := len(m.logs.buffer.View())
	m.logs.cursor = clampCursor(total-1, total)
	m.logs.offset = 0
}
