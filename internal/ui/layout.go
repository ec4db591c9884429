package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio-term/internal/theme"
)

// Disclaimer is shown next to the AI prompt counter.
const Disclaimer = "AI can make mistakes. Verify important info."

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// RenderHeader renders the title bar with a title and a right-aligned status.
func (l Layout) RenderHeader(title string, status string) string {
	return l.bar(theme.HeaderStyle, theme.HeaderStyle.Render(title), theme.HeaderStyle.Render(status))
}

// RenderStatusBar renders the bottom status bar: the AI prompt counter and
// disclaimer on the left, keyboard hints on the right.
func (l Layout) RenderStatusBar(credits, maxCredits int, hints string) string {
	counter := theme.StatusBarStyle.Render(
		theme.CreditsStyle(credits).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(CreditsLabel(credits, maxCredits)) +
			theme.StatusBarStyle.UnsetPadding().Render("  "+Disclaimer),
	)
	return l.bar(theme.StatusBarStyle, counter, theme.StatusBarStyle.Render(hints))
}

// CreditsLabel formats the remaining AI prompt counter.
func CreditsLabel(credits, maxCredits int) string {
	return fmt.Sprintf("🤖 %d/%d AI prompts left today", credits, maxCredits)
}

func (l Layout) bar(style lipgloss.Style, left, right string) string {
	gap := l.Width -
		lipgloss.Width(left) -
		lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		filler,
		right,
	)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
