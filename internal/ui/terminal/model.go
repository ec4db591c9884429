// Package terminal is the interactive shell view: a scrolling transcript,
// the autocomplete dropdown and the input row.
package terminal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/keys"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/session"
	"github.com/nhle/portfolio-term/internal/theme"
	"github.com/nhle/portfolio-term/internal/ui"
)

// maxDropdownRows bounds how many suggestions are visible at once.
const maxDropdownRows = 8

// EffectsMsg carries session effects to the owner of the view.
type EffectsMsg struct {
	Effects []session.Effect
}

// AIResultMsg is the outcome of an AI question, fed back into the session.
type AIResultMsg struct {
	EntryID uint64
	Reply   model.AIReply
	Err     error
}

// Model is the terminal view.
type Model struct {
	sess     *session.Session
	keys     *keys.KeyMap
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *ui.Renderer
	logger   *zap.Logger

	user     string
	prompt   string
	markdown bool
	width    int
	height   int
	offsetY  int

	notice         string
	markdownFailed bool
}

// New creates a terminal view bound to sess. user names the shell owner in
// the boot banner; prompt is printed before echoed commands.
func New(sess *session.Session, km *keys.KeyMap, user, prompt string, markdown bool, width, height int, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = prompt + " "
	ti.PromptStyle = theme.PromptStyle
	ti.TextStyle = theme.CommandStyle
	ti.Placeholder = "type a command or ask anything..."
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorPurple)

	vp := viewport.New(width, height)

	m := Model{
		sess:     sess,
		keys:     km,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		logger:   logger,
		user:     user,
		prompt:   prompt,
		markdown: markdown,
	}
	m.SetSize(width, height)
	return m
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages for the terminal view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if row, ok := m.dropdownRowAt(msg.Y); ok {
				m.sess.SelectSuggestion(row)
				m.syncInput()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.sess.Awaiting() {
			m.Refresh()
		}
		return m, cmd

	case AIResultMsg:
		effects := m.sess.ResolveAI(msg.EntryID, msg.Reply, msg.Err)
		m.Refresh()
		return m, emit(effects)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.input.Value() != m.sess.Input() {
			m.sess.SetInput(m.input.Value())
		}
		effects := m.sess.Submit()
		m.input.Reset()
		m.Refresh()
		return m, emit(effects)

	case key.Matches(msg, m.keys.Complete):
		m.sess.Complete()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.sess.HistoryPrev()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.sess.HistoryNext()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.RunEquivalent):
		cmd := m.LastEquivalent()
		if cmd == "" {
			return m, nil
		}
		effects := m.sess.RunEquivalent(cmd)
		m.Refresh()
		return m, emit(effects)

	case key.Matches(msg, m.keys.Clear):
		effects := m.sess.RunEquivalent("clear")
		m.Refresh()
		return m, emit(effects)

	case key.Matches(msg, m.keys.Back):
		m.input.Reset()
		m.sess.SetInput("")
		m.layoutRows()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.sess.SetInput(m.input.Value())
		m.layoutRows()
	}
	return m, cmd
}

// syncInput copies the session buffer into the text input after history or
// autocomplete navigation.
func (m *Model) syncInput() {
	if m.input.Value() != m.sess.Input() {
		m.input.SetValue(m.sess.Input())
		m.input.CursorEnd()
	}
	m.layoutRows()
}

func emit(effects []session.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	return func() tea.Msg {
		return EffectsMsg{Effects: effects}
	}
}

// LastEquivalent returns the equivalent command proposed by the most recent
// AI answer still in the transcript.
func (m Model) LastEquivalent() string {
	lines := m.sess.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Payload.Kind == model.PayloadReply {
			return lines[i].Payload.Reply.EquivalentCmd
		}
	}
	return ""
}

// Refresh re-renders the transcript into the viewport and scrolls to the
// bottom.
func (m *Model) Refresh() {
	m.layoutRows()
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	body := m.entries()
	if m.notice == "" {
		return body
	}
	notice := m.renderer.Output(model.Output{Blocks: []model.Block{
		model.Text(model.ToneAccent, "⚠ "+m.notice),
	}})
	return notice + "\n\n" + body
}

// SetNotice pins a message above the transcript, e.g. a setup hint when the
// portfolio could not be loaded. An empty text removes it.
func (m *Model) SetNotice(text string) {
	m.notice = text
	m.Refresh()
}

func (m Model) entries() string {
	lines := m.sess.Lines()
	if len(lines) == 0 {
		return m.welcome()
	}

	thinking := m.sess.ThinkingID()
	parts := make([]string, 0, len(lines))
	for _, e := range lines {
		state := ui.EntryState{Thinking: m.spinner.View(), Active: e.ID == thinking}
		parts = append(parts, m.renderer.Entry(e, state))
	}
	return strings.Join(parts, "\n\n")
}

// BootLines are printed above an empty transcript.
func BootLines(user string) []model.Block {
	return []model.Block{
		model.Text(model.ToneAccent, "✦ "+user+"-code v1.0 — portfolio mode"),
		model.Text(model.ToneDefault, "  Loading portfolio modules..."),
		model.Text(model.ToneSuccess, "  ✓ skills    ✓ experience    ✓ projects    ✓ ai-agent"),
		model.Text(model.ToneSuccess, "  All systems operational."),
		model.Text(model.ToneDefault, ""),
		model.Text(model.ToneDefault, "  Ready. Here's how to get started:"),
		model.Text(model.ToneDefault, ""),
		model.Text(model.ToneDefault, "  💡 Type 'help' to see all available commands"),
		model.Text(model.ToneDefault, "  💬 Or just ask anything, e.g. \"tell me about this person\""),
	}
}

// samplePrompts are offered while the transcript is empty.
var samplePrompts = []string{"skills", "projects", "whoami", "tell me about this person", "curl resume.pdf"}

func (m Model) welcome() string {
	out := model.Output{Blocks: BootLines(m.user)}
	if m.sess.Data() == nil {
		out = out.Add(model.Text(model.ToneMuted, "  Loading portfolio data..."))
	}
	chips := make([]string, 0, len(samplePrompts))
	for _, p := range samplePrompts {
		chips = append(chips, "❯ "+p)
	}
	out = out.Add(
		model.Text(model.ToneDefault, ""),
		model.Block{Kind: model.BlockTags, Tone: model.ToneAccent, Items: chips},
	)
	return m.renderer.Output(out)
}

// dropdown renders the visible autocomplete rows, or "" when closed.
func (m Model) dropdown() string {
	matches := m.sess.Suggestions()
	if len(matches) == 0 {
		return ""
	}

	start, end := m.dropdownWindow(len(matches))
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := matches[i]
		style := theme.SuggestionStyle
		if i == m.sess.AutocompleteIndex() {
			style = theme.SelectedSuggestionStyle
		}
		rows = append(rows, style.Render(e.Icon+" "+lipgloss.NewStyle().Width(26).Render(e.Command))+
			theme.HelpStyle.Render(e.Description))
	}
	return theme.DropdownStyle.Width(max(m.width-2, 0)).Render(strings.Join(rows, "\n"))
}

// dropdownWindow keeps the highlighted suggestion inside the visible rows.
func (m Model) dropdownWindow(n int) (int, int) {
	if n <= maxDropdownRows {
		return 0, n
	}
	start := 0
	if idx := m.sess.AutocompleteIndex(); idx >= maxDropdownRows {
		start = idx - maxDropdownRows + 1
	}
	return start, start + maxDropdownRows
}

func (m Model) dropdownHeight() int {
	n := len(m.sess.Suggestions())
	if n == 0 {
		return 0
	}
	return min(n, maxDropdownRows) + 2
}

// dropdownRowAt maps a screen row to a suggestion index.
func (m Model) dropdownRowAt(y int) (int, bool) {
	n := len(m.sess.Suggestions())
	if n == 0 {
		return 0, false
	}
	top := m.offsetY + m.viewport.Height + 1
	row := y - top
	start, end := m.dropdownWindow(n)
	if row < 0 || row >= end-start {
		return 0, false
	}
	return start + row, true
}

// layoutRows shrinks the viewport to leave room for the dropdown and the
// input row.
func (m *Model) layoutRows() {
	m.viewport.Height = max(m.height-m.dropdownHeight()-1, 1)
}

// View renders the transcript, dropdown and input row.
func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if dd := m.dropdown(); dd != "" {
		parts = append(parts, dd)
	}
	parts = append(parts, m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.input.Width = max(width-lipgloss.Width(m.input.Prompt)-1, 1)
	r, err := ui.NewRenderer(width, m.prompt, m.markdown)
	if err != nil && !m.markdownFailed {
		m.markdownFailed = true
		m.logger.Warn("markdown unavailable, answers render as plain text", zap.Error(err))
	}
	m.renderer = r
	m.Refresh()
}

// SetOffset records the screen row where the view starts, for mouse hits.
func (m *Model) SetOffset(y int) {
	m.offsetY = y
}
