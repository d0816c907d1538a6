package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/uplog-tools/uplogview/internal/config"
	"github.com/uplog-tools/uplogview/internal/gateway"
)

// view identifies the active screen.
type view int

const (
	viewSessions view = iota
	viewLogs
)

const (
	headerHeight = 1
	footerHeight = 1

	fetchTimeout       = 5 * time.Second
	defaultFollowEvery = 2 * time.Second
)

// Options configure the UI.
type Options struct {
	Context     context.Context
	Client      gateway.SessionReader
	Config      config.Config
	Logger      zerolog.Logger
	Session     string // open this session immediately when non-empty
	FollowEvery time.Duration
}

// Model is the bubbletea model for the whole application.
type Model struct {
	ctx         context.Context
	client      gateway.SessionReader
	logger      zerolog.Logger
	theme       Theme
	styles      Styles
	pageLength  int
	followEvery time.Duration

	width   int
	height  int
	current view

	sessions sessionsState
	logs     logsState
}

// NewModel builds the initial model from the options.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	followEvery := opts.FollowEvery
	if followEvery <= 0 {
		followEvery = defaultFollowEvery
	}
	pageLength := opts.Config.PageLength
	if pageLength <= 0 {
		pageLength = 500
	}
	theme := GetTheme(opts.Config.Theme)

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		logger:      opts.Logger,
		theme:       theme,
		styles:      theme.Styles(),
		pageLength:  pageLength,
		followEvery: followEvery,
		current:     viewSessions,
		sessions:    newSessionsState(),
		logs:        newLogsState(),
	}
	if opts.Session != "" {
		m.openSession(opts.Session)
	}
	return m
}

// Run starts the TUI and blocks until it exits or the context is
// cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Cancellation is a normal shutdown, not a failure.
		return nil
	}
	return err
}

// Init kicks off the first fetch.
func (m Model) Init() tea.Cmd {
	if m.current == viewLogs {
		return m.fetchInitialCmd(m.logs.session)
	}
	return m.fetchSessionsCmd()
}

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionsMsg:
		return m.handleSessions(msg)

	case sessionsErrMsg:
		return m.handleSessionsErr(msg)

	case logBatchMsg:
		return m.handleLogBatch(msg)

	case logErrMsg:
		return m.handleLogErr(msg)

	case followTickMsg:
		return m.handleFollowTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter prompt captures everything except its own exit keys.
	if m.current == viewLogs && m.logs.prompting {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		return m, nil
	}

	switch m.current {
	case viewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleSessionsKey(msg)
	}
}

// View renders the active screen.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	switch m.current {
	case viewLogs:
		return m.renderLogs()
	default:
		return m.renderSessions()
	}
}

// bodyHeight returns the rows available between header and footer.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if m.current == viewLogs && m.logs.prompting {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, fetchTimeout)
}
