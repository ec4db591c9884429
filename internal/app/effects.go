package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/session"
	"github.com/nhle/portfolio-term/internal/ui/terminal"
)

// askTimeout bounds a single AI question.
const askTimeout = 60 * time.Second

var errNoResponder = errors.New("no ai responder configured")

// perform turns session effects into commands.
func (m *Model) perform(effects []session.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		switch e := e.(type) {
		case session.AskAI:
			cmds = append(cmds, m.askAI(e))
		case session.OpenURL:
			cmds = append(cmds, m.openURL(e.URL))
		case session.Cleared:
			m.resetConversation()
		}
	}
	return tea.Batch(cmds...)
}

// resetter is implemented by responders that remember the conversation.
type resetter interface {
	Reset()
}

func (m *Model) resetConversation() {
	if r, ok := m.responder.(resetter); ok {
		r.Reset()
		m.logger.Debug("conversation memory cleared")
	}
}

// askAI returns a command that sends one question and reports the outcome
// as a terminal.AIResultMsg.
func (m *Model) askAI(q session.AskAI) tea.Cmd {
	r := m.responder
	logger := m.logger
	return func() tea.Msg {
		if r == nil {
			return terminal.AIResultMsg{EntryID: q.EntryID, Err: errNoResponder}
		}
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		start := time.Now()
		reply, err := r.Ask(ctx, q.Message)
		logger.Debug("ai answered",
			zap.Uint64("entry", q.EntryID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("ok", err == nil),
		)
		if err != nil {
			return terminal.AIResultMsg{EntryID: q.EntryID, Err: err}
		}
		return terminal.AIResultMsg{EntryID: q.EntryID, Reply: reply}
	}
}

// urlOpenedMsg reports the outcome of opening a link.
type urlOpenedMsg struct {
	url string
	err error
}

func (m *Model) openURL(url string) tea.Cmd {
	o := m.opener
	logger := m.logger
	return func() tea.Msg {
		err := o.Open(url)
		if err != nil {
			logger.Warn("opening url", zap.String("url", url), zap.Error(err))
		}
		return urlOpenedMsg{url: url, err: err}
	}
}
