package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/theme"
)

// Renderer turns structured command output and transcript entries into
// styled terminal text.
type Renderer struct {
	width    int
	prompt   string
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping text at width. prompt is the
// shell prompt printed before echoed commands. AI answers are rendered as
// markdown when markdown is set.
//
// The returned Renderer is always usable: when the markdown renderer cannot
// be built the error is returned alongside a Renderer that prints answers
// as plain text.
func NewRenderer(width int, prompt string, markdown bool) (*Renderer, error) {
	r := &Renderer{width: width, prompt: prompt}
	if !markdown {
		return r, nil
	}
	md, err := newMarkdown(max(width-4, 20))
	if err != nil {
		return r, fmt.Errorf("creating markdown renderer: %w", err)
	}
	r.markdown = md
	return r, nil
}

var newMarkdown = func(wrap int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Output renders a command's blocks, one or more lines per block.
func (r *Renderer) Output(out model.Output) string {
	lines := make([]string, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		lines = append(lines, r.Block(b))
	}
	return strings.Join(lines, "\n")
}

// Block renders a single output block.
func (r *Renderer) Block(b model.Block) string {
	tone := theme.ToneStyle(b.Tone)

	switch b.Kind {
	case model.BlockError:
		return theme.ToneStyle(model.ToneDanger).Render(b.Text)

	case model.BlockHint:
		return tone.Render(b.Label) +
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent).Render(b.Command) +
			tone.Render(b.Text)

	case model.BlockHeading:
		return tone.Bold(true).Render(b.Text)

	case model.BlockTags:
		chips := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			chips = append(chips, theme.TagStyle.Foreground(theme.ToneColor(b.Tone)).Render(item))
		}
		return r.wrapChips(chips)

	case model.BlockBullet:
		return "  " + tone.Render(b.Label) + " " + theme.ToneStyle(model.ToneDefault).Render(b.Text)

	case model.BlockPair:
		return tone.Bold(true).Render(b.Label) + "  " + theme.ToneStyle(model.ToneDefault).Render(b.Text)

	case model.BlockCard:
		body := []string{tone.Bold(true).Render(b.Label), ""}
		for _, item := range b.Items {
			body = append(body, theme.CommandStyle.Render(item))
		}
		if b.Text != "" {
			body = append(body, "", theme.ToneStyle(model.ToneMuted).Render(b.Text))
		}
		return theme.CardStyle.BorderForeground(theme.ToneColor(b.Tone)).
			Render(strings.Join(body, "\n"))

	case model.BlockBanner:
		rows := make([]string, 0, len(b.Items))
		for _, row := range b.Items {
			rows = append(rows, tone.Render(row))
		}
		return strings.Join(rows, "\n")

	case model.BlockLink:
		return tone.Render(b.Label) + " " +
			lipgloss.NewStyle().Underline(true).Foreground(theme.ColorCyan).Render(b.Text)

	default:
		return tone.Width(r.width).Render(b.Text)
	}
}

// wrapChips lays chips out left to right, breaking lines at the renderer
// width.
func (r *Renderer) wrapChips(chips []string) string {
	var (
		lines []string
		line  string
	)
	for _, chip := range chips {
		candidate := chip
		if line != "" {
			candidate = line + " " + chip
		}
		if line != "" && r.width > 0 && lipgloss.Width(candidate) > r.width {
			lines = append(lines, line)
			candidate = chip
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// EntryState tells Entry how to draw a pending AI entry.
type EntryState struct {
	// Thinking is the spinner frame shown on the most recent pending entry.
	Thinking string
	// Active is set on that entry; other pending entries show as queued.
	Active bool
}

// Entry renders one transcript entry: the echoed input line followed by its
// payload.
func (r *Renderer) Entry(e model.LineEntry, state EntryState) string {
	var head string
	if e.Mode == model.ModeAI {
		head = theme.AIPromptStyle.Render("✦ ask") + " " + theme.CommandStyle.Render(e.Input)
	} else {
		head = theme.PromptStyle.Render(r.prompt) + " " + theme.CommandStyle.Render(e.Input)
	}

	body := r.Payload(e.Payload, state)
	if body == "" {
		return head
	}
	return head + "\n" + body
}

// Payload renders what appears below an entry's input line.
func (r *Renderer) Payload(p model.Payload, state EntryState) string {
	switch p.Kind {
	case model.PayloadPending:
		if state.Active {
			return theme.ToneStyle(model.TonePurple).Render(state.Thinking + " thinking...")
		}
		return theme.ToneStyle(model.ToneMuted).Render("⋯ queued")
	case model.PayloadReply:
		return r.Reply(p.Reply)
	default:
		return r.Output(p.Output)
	}
}

// Reply renders an AI answer bubble with its equivalent command footer.
func (r *Renderer) Reply(reply model.AIReply) string {
	message := strings.TrimSpace(reply.Message)
	if r.markdown != nil {
		if md, err := r.markdown.Render(message); err == nil {
			message = strings.Trim(md, "\n")
		}
	} else {
		message = theme.CommandStyle.Width(max(r.width-4, 20)).Render(message)
	}

	parts := []string{message}
	if reply.EquivalentCmd != "" {
		parts = append(parts, r.Block(model.Hint("💡 Equivalent command: ", reply.EquivalentCmd, "  (ctrl+r to run)")))
	}
	if reply.OpenURL != "" {
		parts = append(parts, r.Block(model.Block{
			Kind:  model.BlockLink,
			Tone:  model.ToneMuted,
			Label: "↗ Opened",
			Text:  reply.OpenURL,
		}))
	}
	return theme.BubbleStyle.Render(strings.Join(parts, "\n"))
}
