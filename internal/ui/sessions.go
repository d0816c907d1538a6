package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uplog-tools/uplogview/internal/gateway"
)

const sessionTimeLayout = "2006-01-02 15:04:05"

// sessionsState holds state for the session list view.
type sessionsState struct {
	infos   []gateway.SessionViewInfo
	cursor  int
	offset  int
	loading bool
	err     error
}

func newSessionsState() sessionsState {
	return sessionsState{loading: true}
}

// Session list messages

type sessionsMsg struct {
	infos []gateway.SessionViewInfo
}

type sessionsErrMsg struct {
	err error
}

func (m Model) fetchSessionsCmd() tea.Cmd {
	client := m.client
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(parent)
		defer cancel()
		infos, err := client.Sessions(ctx)
		if err != nil {
			return sessionsErrMsg{err: err}
		}
		return sessionsMsg{infos: infos}
	}
}

func (m Model) handleSessions(msg sessionsMsg) (tea.Model, tea.Cmd) {
	m.sessions.infos = msg.infos
	m.sessions.loading = false
	m.sessions.err = nil
	m.sessions.cursor = clampCursor(m.sessions.cursor, len(msg.infos))
	m.logger.Debug().Int("count", len(msg.infos)).Msg("sessions refreshed")
	return m, nil
}

func (m Model) handleSessionsErr(msg sessionsErrMsg) (tea.Model, tea.Cmd) {
	m.sessions.loading = false
	m.sessions.err = msg.err
	m.logger.Error().Err(msg.err).Msg("session list fetch failed")
	return m, nil
}

// handleSessionsKey processes keyboard input for the session list.
func (m Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "j", "down":
		m.sessions.cursor = clampCursor(m.sessions.cursor+1, len(m.sessions.infos))
		return m, nil

	case "k", "up":
		m.sessions.cursor = clampCursor(m.sessions.cursor-1, len(m.sessions.infos))
		return m, nil

	case "g":
		m.sessions.cursor = 0
		return m, nil

	case "G":
		m.sessions.cursor = clampCursor(len(m.sessions.infos)-1, len(m.sessions.infos))
		return m, nil

	case "r":
		m.sessions.loading = true
		return m, m.fetchSessionsCmd()

	case "enter":
		if len(m.sessions.infos) == 0 {
			return m, nil
		}
		name := m.sessions.infos[m.sessions.cursor].Name
		m.openSession(name)
		return m, m.fetchInitialCmd(name)
	}
	return m, nil
}

// renderSessions renders the session list view.
func (m Model) renderSessions() string {
	var b strings.Builder

	title := fmt.Sprintf("uplogview — %d sessions", len(m.sessions.infos))
	b.WriteString(m.styles.Header.Width(m.width).Render(truncate(title, m.width-2)))
	b.WriteString("\n")

	height := m.bodyHeight()
	switch {
	case m.sessions.loading && len(m.sessions.infos) == 0:
		b.WriteString(fillLines(m.styles.MutedText.Render("loading sessions…"), height))
	case len(m.sessions.infos) == 0:
		b.WriteString(fillLines(m.styles.MutedText.Render("no sessions recorded yet"), height))
	default:
		b.WriteString(m.renderSessionRows(height))
	}
	b.WriteString("\n")

	hint := "enter open · j/k move · r refresh · T theme · q quit"
	if m.sessions.err != nil {
		hint = truncate(fmt.Sprintf("error: %v", m.sessions.err), m.width-2)
		b.WriteString(m.styles.Footer.Width(m.width).Render(m.styles.DangerText.Render(hint)))
		return b.String()
	}
	b.WriteString(m.styles.Footer.Width(m.width).Render(truncate(hint, m.width-2)))
	return b.String()
}

func (m Model) renderSessionRows(height int) string {
	nameWidth := m.width / 3
	if nameWidth < 12 {
		nameWidth = 12
	}

	start, end, _ := window(len(m.sessions.infos), height, m.sessions.cursor, m.sessions.offset)
	rows := make([]string, 0, height)
	for i := start; i < end; i++ {
		info := m.sessions.infos[i]
		created := "-"
		if t := info.ParsedCreatedAt(); !t.IsZero() {
			created = t.Local().Format(sessionTimeLayout)
		}
		updated := "-"
		if t := info.ParsedUpdatedAt(); !t.IsZero() {
			updated = t.Local().Format(sessionTimeLayout)
		}
		row := fmt.Sprintf("  %s  created %s  updated %s", pad(info.Name, nameWidth), created, updated)
		row = pad(row, m.width)
		if i == m.sessions.cursor {
			rows = append(rows, m.styles.Selected.Render(row))
		} else {
			rows = append(rows, m.styles.Text.Render(row))
		}
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// fillLines pads content with blank lines up to height rows.
func fillLines(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
