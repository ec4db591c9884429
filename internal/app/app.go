package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/ai"
	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/keys"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/portfolio"
	"github.com/nhle/portfolio-term/internal/session"
	"github.com/nhle/portfolio-term/internal/ui"
	helpview "github.com/nhle/portfolio-term/internal/ui/help"
	"github.com/nhle/portfolio-term/internal/ui/terminal"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewTerminal ViewState = iota
	ViewHelp
)

// DataSink receives the portfolio snapshot once it has loaded.
type DataSink interface {
	SetData(data *model.PortfolioData)
}

// Deps are the collaborators of the root model.
type Deps struct {
	Config *model.AppConfig
	// Source provides the portfolio snapshot. Nil leaves the terminal in
	// its loading state.
	Source portfolio.Source
	// Responder answers AI questions. Nil makes every question fail with
	// the connectivity notice.
	Responder ai.Responder
	// Sinks are told about the snapshot, e.g. a direct Gemini assistant.
	Sinks  []DataSink
	Opener Opener
	Logger *zap.Logger
}

// Model is the root Bubble Tea model: the terminal view, the help overlay
// and the side effects the session asks for.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	keys        *keys.KeyMap
	session     *session.Session
	terminal    terminal.Model
	helpView    helpview.Model

	source    portfolio.Source
	responder ai.Responder
	sinks     []DataSink
	opener    Opener
	logger    *zap.Logger

	title string
	ready bool
}

// New creates the root application model.
func New(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opener := deps.Opener
	if opener == nil {
		opener = BrowserOpener{}
	}

	id := command.IdentityFromConfig(cfg.Identity)
	proc := command.New(id)
	sess := session.New(proc, cfg.AI.DailyCredits, logger.Named("session"))
	km := keys.DefaultKeyMap()

	return Model{
		currentView: ViewTerminal,
		keys:        km,
		session:     sess,
		terminal:    terminal.New(sess, km, id.User, Prompt(id), cfg.Display.Markdown, 80, 22, logger.Named("terminal")),
		helpView:    helpview.New(km, 80, 22),
		source:      deps.Source,
		responder:   deps.Responder,
		sinks:       deps.Sinks,
		opener:      opener,
		logger:      logger,
		title:       id.User + "@" + id.Host + ": ~/portfolio",
	}
}

// Prompt returns the shell prompt for id.
func Prompt(id command.Identity) string {
	return id.User + "@" + id.Host + ":~$"
}

// Session exposes the session state, mainly for tests.
func (m Model) Session() *session.Session {
	return m.session
}

// Init loads the portfolio and starts the terminal view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.terminal.Init(),
		m.loadPortfolio(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.terminal.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.terminal.SetOffset(m.layout.HeaderHeight)
		m.helpView.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, nil

	case portfolioLoadedMsg:
		if msg.err != nil {
			m.logger.Error("loading portfolio", zap.Error(msg.err))
			m.terminal.SetNotice(loadFailureNotice(msg.err))
			return m, nil
		}
		m.session.SetData(msg.data)
		for _, s := range m.sinks {
			s.SetData(msg.data)
		}
		m.logger.Info("portfolio loaded", zap.String("name", msg.data.Personal.Name))
		m.terminal.Refresh()
		return m, nil

	case terminal.EffectsMsg:
		return m, m.perform(msg.Effects)

	case urlOpenedMsg:
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = ViewTerminal
			} else {
				m.currentView = ViewHelp
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp {
				m.currentView = ViewTerminal
				return m, nil
			}
		}

		if m.currentView == ViewHelp {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.terminal, cmd = m.terminal.Update(msg)
	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := "● AI online"
	if m.session.Awaiting() {
		status = "● AI thinking"
	}
	header := m.layout.RenderHeader(m.title, status)
	statusBar := m.layout.RenderStatusBar(m.session.Credits(), m.session.MaxCredits(), m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHelp:
		return m.helpView.View()
	default:
		return m.terminal.View()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "f1 close help | esc back"
	default:
		if m.terminal.LastEquivalent() != "" {
			return "ctrl+r run suggested | f1 help"
		}
		return "tab complete | f1 help | ctrl+c quit"
	}
}
