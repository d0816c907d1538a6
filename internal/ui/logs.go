package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/uplog-tools/uplogview/internal/gateway"
	"github.com/uplog-tools/uplogview/internal/logbuffer"
)

// logsState holds state for the log view of the open session. The buffer
// is created when the session opens and discarded when the view closes;
// nothing survives navigation.
type logsState struct {
	session string
	buffer  *logbuffer.Buffer

	loaded    bool // first batch applied
	fetching  bool // a fetch is in flight; no new one may start
	follow    bool
	tickArmed bool

	cursor int
	offset int

	prompt     textinput.Model
	prompting  bool
	filterText string
	filterErr  string

	showDetail bool
	err        error
}

func newLogsState() logsState {
	prompt := textinput.New()
	prompt.Prompt = "/"
	prompt.Placeholder = "regex on category or message"
	prompt.CharLimit = 256
	return logsState{prompt: prompt}
}

// openSession switches to the log view for the named session with a fresh
// buffer.
func (m *Model) openSession(name string) {
	m.current = viewLogs
	prompt := m.logs.prompt
	prompt.SetValue("")
	prompt.Blur()
	m.logs = logsState{
		session:  name,
		buffer:   logbuffer.New(),
		fetching: true,
		follow:   true,
		prompt:   prompt,
	}
	m.logger.Info().Str("session", name).Msg("session opened")
}

// closeSession tears the log view down and returns to the session list.
func (m *Model) closeSession() {
	m.logger.Info().Str("session", m.logs.session).Msg("session closed")
	prompt := m.logs.prompt
	m.logs = logsState{prompt: prompt}
	m.current = viewSessions
	m.sessions.loading = true
}

// Log view messages

type logBatchMsg struct {
	session string
	records []gateway.LogRecord
	initial bool
}

type logErrMsg struct {
	session string
	err     error
}

type followTickMsg struct{}

func (m Model) fetchInitialCmd(session string) tea.Cmd {
	return m.fetchCmd(session, 0, true)
}

// fetchNextCmd issues the next page fetch from the current cursor. The
// caller must have checked that no fetch is in flight.
func (m Model) fetchNextCmd() tea.Cmd {
	start, err := m.logs.buffer.HighestID()
	if err != nil {
		// Nothing loaded yet; fetch from the beginning.
		return m.fetchCmd(m.logs.session, 0, !m.logs.loaded)
	}
	return m.fetchCmd(m.logs.session, start+1, false)
}

func (m Model) fetchCmd(session string, start int, initial bool) tea.Cmd {
	client := m.client
	parent := m.ctx
	length := m.pageLength
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(parent)
		defer cancel()
		records, err := client.ReadAt(ctx, session, start, length)
		if err != nil {
			return logErrMsg{session: session, err: err}
		}
		return logBatchMsg{session: session, records: records, initial: initial}
	}
}

func (m Model) followTick() tea.Cmd {
	return tea.Tick(m.followEvery, func(time.Time) tea.Msg {
		return followTickMsg{}
	})
}

// handleLogBatch applies a fetched page. A batch for a session that is no
// longer open is discarded whole; partial application never happens.
func (m Model) handleLogBatch(msg logBatchMsg) (tea.Model, tea.Cmd) {
	if m.current != viewLogs || msg.session != m.logs.session {
		return m, nil
	}
	m.logs.fetching = false
	m.logs.err = nil

	if msg.initial {
		m.logs.buffer.Replace(msg.records)
		m.logs.loaded = true
	} else {
		m.logs.buffer.Append(msg.records)
	}
	m.logger.Debug().
		Str("session", msg.session).
		Int("records", len(msg.records)).
		Bool("initial", msg.initial).
		Msg("batch applied")

	total := len(m.logs.buffer.View())
	if m.logs.follow {
		m.logs.cursor = clampCursor(total-1, total)
	} else {
		m.logs.cursor = clampCursor(m.logs.cursor, total)
	}

	if m.logs.follow && !m.logs.tickArmed {
		m.logs.tickArmed = true
		return m, m.followTick()
	}
	return m, nil
}

func (m Model) handleLogErr(msg logErrMsg) (tea.Model, tea.Cmd) {
	if m.current != viewLogs || msg.session != m.logs.session {
		return m, nil
	}
	m.logs.fetching = false
	m.logs.err = msg.err
	m.logger.Error().Err(msg.err).Str("session", msg.session).Msg("fetch failed")

	// Keep following; the next tick retries.
	if m.logs.follow && !m.logs.tickArmed {
		m.logs.tickArmed = true
		return m, m.followTick()
	}
	return m, nil
}

// handleFollowTick issues the next fetch when idle and re-arms the tick.
func (m Model) handleFollowTick() (tea.Model, tea.Cmd) {
	m.logs.tickArmed = false
	if m.current != viewLogs || !m.logs.follow {
		return m, nil
	}
	m.logs.tickArmed = true
	if m.logs.fetching {
		return m, m.followTick()
	}
	m.logs.fetching = true
	return m, tea.Batch(m.fetchNextCmd(), m.followTick())
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.showDetail {
		switch msg.String() {
		case "esc", "enter", "q":
			m.logs.showDetail = false
		}
		return m, nil
	}

	total := len(m.logs.buffer.View())
	page := m.bodyHeight()

	switch msg.String() {
	case "q", "esc":
		m.closeSession()
		return m, m.fetchSessionsCmd()

	case "j", "down":
		m.logs.follow = false
		m.logs.cursor = clampCursor(m.logs.cursor+1, total)
		return m, nil

	case "k", "up":
		m.logs.follow = false
		m.logs.cursor = clampCursor(m.logs.cursor-1, total)
		return m, nil

	case "ctrl+d", "pgdown":
		m.logs.follow = false
		m.logs.cursor = clampCursor(m.logs.cursor+page/2, total)
		return m, nil

	case "ctrl+u", "pgup":
		m.logs.follow = false
		m.logs.cursor = clampCursor(m.logs.cursor-page/2, total)
		return m, nil

	case "g":
		m.logs.follow = false
		m.logs.cursor = 0
		return m, nil

	case "G":
		m.logs.cursor = clampCursor(total-1, total)
		return m, nil

	case " ":
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.cursor = clampCursor(total-1, total)
			if !m.logs.tickArmed {
				m.logs.tickArmed = true
				return m, m.followTick()
			}
		}
		return m, nil

	case "n", "right":
		if m.logs.fetching || !m.logs.loaded {
			return m, nil
		}
		m.logs.fetching = true
		return m, m.fetchNextCmd()

	case "/":
		m.logs.prompting = true
		m.logs.filterErr = ""
		m.logs.prompt.SetValue(m.logs.filterText)
		return m, m.logs.prompt.Focus()

	case "enter":
		if total > 0 {
			m.logs.showDetail = true
		}
		return m, nil
	}
	return m, nil
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Width(m.width).Render(truncate(m.logsTitle(), m.width-2)))
	b.WriteString("\n")

	height := m.bodyHeight()
	if m.logs.showDetail {
		b.WriteString(fillLines(m.renderDetail(height), height))
	} else {
		b.WriteString(m.renderLogRows(height))
	}
	b.WriteString("\n")

	if m.logs.prompting {
		line := m.logs.prompt.View()
		if m.logs.filterErr != "" {
			line += "  " + m.styles.DangerText.Render(m.logs.filterErr)
		}
		b.WriteString(truncate(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Width(m.width).Render(truncate(m.logsFooter(), m.width-2)))
	return b.String()
}

func (m Model) logsTitle() string {
	visible := len(m.logs.buffer.View())
	total := m.logs.buffer.Len()
	title := fmt.Sprintf("%s — %d/%d records", m.logs.session, visible, total)
	if id, err := m.logs.buffer.HighestID(); err == nil {
		title += fmt.Sprintf(" · id ≤ %d", id)
	}
	if m.logs.filterText != "" {
		title += fmt.Sprintf(" · filter /%s/", m.logs.filterText)
	}
	if m.logs.follow {
		title += " · following"
	}
	return title
}

func (m Model) logsFooter() string {
	if m.logs.err != nil {
		return fmt.Sprintf("error: %v", m.logs.err)
	}
	if !m.logs.loaded {
		return "loading…"
	}
	return "enter detail · / filter · space follow · n next page · j/k move · esc back"
}

func (m Model) renderLogRows(height int) string {
	records := m.logs.buffer.View()
	if len(records) == 0 {
		text := "no records"
		if m.logs.filterText != "" {
			text = "no records match the filter"
		}
		if !m.logs.loaded {
			text = "loading…"
		}
		return fillLines(m.styles.MutedText.Render(text), height)
	}

	start, end, _ := window(len(records), height, m.logs.cursor, m.logs.offset)
	rows := make([]string, 0, height)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderLogRow(records[i], i == m.logs.cursor))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLogRow(record gateway.LogRecord, selected bool) string {
	body := record.Record
	category := pad(body.Category, 18)
	line := fmt.Sprintf("%7d %s %s %s %s",
		record.ID,
		formatElapsed(body.Elapsed),
		formatLevel(body.Level),
		category,
		body.Message,
	)
	line = pad(line, m.width)
	if selected {
		return m.styles.Selected.Render(line)
	}
	return m.styles.LevelStyle(body.Level).Render(line)
}
