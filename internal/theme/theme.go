package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio-term/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#e87040", Light: "#C05621"}
	ColorPurple  = lipgloss.AdaptiveColor{Dark: "#c084fc", Light: "#805AD5"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#4ade80", Light: "#2F855A"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#f87171", Light: "#C53030"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#67e8f9", Light: "#2B6CB0"}
	ColorCommand = lipgloss.AdaptiveColor{Dark: "#e8e0d4", Light: "#1A202C"}
	ColorOutput  = lipgloss.AdaptiveColor{Dark: "#8a8a9a", Light: "#4A5568"}
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#5a5a7a", Light: "#718096"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#2d2d50", Light: "#E2E8F0"}
	ColorHeader  = lipgloss.AdaptiveColor{Dark: "#1e1e3a", Light: "#EDF2F7"}
)

// HeaderStyle is used for the title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorCommand).
	Background(ColorHeader).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Background(ColorHeader).
	Padding(0, 1)

// PanelStyle wraps overlays such as the help screen.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// PromptStyle renders the "user@host:~$" prompt.
var PromptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// CommandStyle renders echoed command text.
var CommandStyle = lipgloss.NewStyle().
	Foreground(ColorCommand)

// AIPromptStyle marks a line that was routed to the AI layer.
var AIPromptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorPurple)

// BubbleStyle frames an AI answer.
var BubbleStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), false, false, false, true).
	BorderForeground(ColorPurple)

// CardStyle frames card blocks such as the hire-me card.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorGreen)

// TagStyle is the chip used for skills and project technologies.
var TagStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(ColorBorder)

// SuggestionStyle is an autocomplete dropdown row.
var SuggestionStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	Foreground(ColorOutput)

// SelectedSuggestionStyle highlights the focused dropdown row.
var SelectedSuggestionStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorAccent).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorAccent)

// DropdownStyle frames the autocomplete dropdown.
var DropdownStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Italic(true)

// ToneColor maps an output tone to its palette color.
func ToneColor(tone model.Tone) lipgloss.TerminalColor {
	switch tone {
	case model.ToneMuted:
		return ColorMuted
	case model.ToneAccent:
		return ColorAccent
	case model.ToneSuccess:
		return ColorGreen
	case model.ToneDanger:
		return ColorRed
	case model.ToneInfo:
		return ColorCyan
	case model.TonePurple:
		return ColorPurple
	default:
		return ColorOutput
	}
}

// ToneStyle returns a foreground style for the given output tone.
func ToneStyle(tone model.Tone) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ToneColor(tone))
}

// CreditsStyle colors the remaining AI prompt counter by level.
func CreditsStyle(remaining int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case remaining <= 1:
		return base.Foreground(ColorRed)
	case remaining <= 3:
		return base.Foreground(ColorAccent)
	default:
		return base.Foreground(ColorGreen)
	}
}
