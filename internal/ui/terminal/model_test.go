package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/keys"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/session"
	"github.com/nhle/portfolio-term/tests/testutil"
)

func newTerminal(t *testing.T) (Model, *session.Session) {
	t.Helper()
	id := command.IdentityFromConfig(model.DefaultAppConfig().Identity)
	sess := session.New(command.New(id), 5, nil)
	sess.SetData(testutil.SamplePortfolio())
	return New(sess, keys.DefaultKeyMap(), id.User, "suraj@host:~$", false, 100, 30, nil), sess
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestView_WelcomeWhileEmpty(t *testing.T) {
	m, _ := newTerminal(t)
	view := m.View()

	assert.Contains(t, view, "suraj-code v1.0")
	assert.Contains(t, view, "curl resume.pdf")
	assert.NotContains(t, view, "Loading portfolio data...")
}

func TestView_WelcomeShowsLoadingWithoutData(t *testing.T) {
	m, sess := newTerminal(t)
	sess.SetData(nil)
	m.Refresh()
	assert.Contains(t, m.View(), "Loading portfolio data...")
}

func TestSetNotice_PinnedAboveTranscript(t *testing.T) {
	m, sess := newTerminal(t)
	sess.SetData(nil)
	m.SetNotice("Run `portfolio-term setup`")
	assert.Contains(t, m.View(), "portfolio-term setup")

	sess.SetInput("pwd")
	sess.Submit()
	m.Refresh()
	assert.Contains(t, m.View(), "portfolio-term setup")

	m.SetNotice("")
	assert.NotContains(t, m.View(), "portfolio-term setup")
}

func TestTyping_UpdatesSessionAndDropdown(t *testing.T) {
	m, sess := newTerminal(t)
	m = typeText(m, "ex")

	assert.Equal(t, "ex", sess.Input())
	view := m.View()
	assert.Contains(t, view, "experience --short")
	assert.Equal(t, 4, m.dropdownHeight())
}

func TestSubmit_HighlightedSuggestionWins(t *testing.T) {
	m, sess := newTerminal(t)
	m = typeText(m, "ex")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, sess.AutocompleteIndex())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "experience --short", lines[0].Input)
	assert.Empty(t, m.input.Value())
}

func TestSubmit_EmitsEffects(t *testing.T) {
	m, _ := newTerminal(t)
	m = typeText(m, "who is suraj")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(EffectsMsg)
	require.True(t, ok)
	require.Len(t, msg.Effects, 1)
	ask, ok := msg.Effects[0].(session.AskAI)
	require.True(t, ok)
	assert.Equal(t, "who is suraj", ask.Message)
}

func TestAIResult_PatchesEntry(t *testing.T) {
	m, sess := newTerminal(t)
	m = typeText(m, "who is suraj")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	id := sess.ThinkingID()
	require.NotZero(t, id)
	assert.Contains(t, m.View(), "thinking...")

	m, _ = m.Update(AIResultMsg{EntryID: id, Reply: model.AIReply{Message: "An engineer.", EquivalentCmd: "whoami"}})

	assert.Zero(t, sess.ThinkingID())
	assert.Equal(t, "whoami", m.LastEquivalent())
	assert.Contains(t, m.View(), "An engineer.")
}

func TestHistoryKeys_FillInput(t *testing.T) {
	m, _ := newTerminal(t)
	m = typeText(m, "pwd")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "pwd", m.input.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.input.Value())
}

func TestEsc_ClosesDropdown(t *testing.T) {
	m, sess := newTerminal(t)
	m = typeText(m, "c")
	require.NotEmpty(t, sess.Suggestions())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, sess.Suggestions())
	assert.Zero(t, m.dropdownHeight())
}

func TestMouse_ClickSelectsSuggestion(t *testing.T) {
	m, sess := newTerminal(t)
	m.SetOffset(1)
	m = typeText(m, "ex")

	top := 1 + m.viewport.Height + 1
	m, _ = m.Update(tea.MouseMsg{X: 5, Y: top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, "experience --short", sess.Input())
	assert.Equal(t, "experience --short", m.input.Value())
}

func TestDropdownWindow_FollowsHighlight(t *testing.T) {
	m, sess := newTerminal(t)
	m = typeText(m, "/")
	n := len(sess.Suggestions())
	require.Greater(t, n, maxDropdownRows)

	start, end := m.dropdownWindow(n)
	assert.Equal(t, 0, start)
	assert.Equal(t, maxDropdownRows, end)

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	start, end = m.dropdownWindow(n)
	assert.Equal(t, sess.AutocompleteIndex()+1, end)
	assert.Equal(t, end-maxDropdownRows, start)
}

func TestBootLines(t *testing.T) {
	lines := BootLines("ada")
	require.NotEmpty(t, lines)
	assert.Equal(t, "✦ ada-code v1.0 — portfolio mode", lines[0].Text)
}
