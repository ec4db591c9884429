package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/keys"
	"github.com/nhle/portfolio-term/internal/theme"
)

// Model is the help overlay view: keyboard shortcuts followed by the
// command catalog.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorAccent).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	shortcuts := m.help.View(m.keys)

	var rows []string
	for _, e := range command.Catalog() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(3).Render(e.Icon),
			lipgloss.NewStyle().Foreground(theme.ColorGreen).Width(26).Render(e.Command),
			theme.HelpStyle.Render(e.Description),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		shortcuts,
		"",
		titleStyle.Render("Commands"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		MaxHeight(max(m.height, 1)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
