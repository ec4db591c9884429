// Package session holds the state of one terminal session: the transcript,
// the submission history, the input buffer with its autocomplete cursor,
// and the queue of AI questions awaiting an answer.
//
// A Session is not safe for concurrent use. It is owned by the UI loop and
// talks to the outside world only through the effects it returns.
package session

import (
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/classify"
	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/model"
)

// Messages shown when the AI collaborator cannot be reached.
const (
	FailureMessage = "Couldn't connect to the AI layer. Try a direct command instead."
	FailureHint    = "Type 'help' to see all available commands."
)

// Processor runs a command line against the portfolio snapshot.
type Processor interface {
	Process(input string, data *model.PortfolioData, history []string) command.Result
}

// Effect is a side effect the owner of the session must carry out.
type Effect interface {
	effect()
}

// AskAI asks the owner to send Message to the AI collaborator and report
// the outcome with ResolveAI(EntryID, ...).
type AskAI struct {
	EntryID uint64
	Message string
}

// OpenURL asks the owner to open URL in a browser.
type OpenURL struct {
	URL string
}

// Cleared tells the owner the transcript was cleared, so any conversation
// memory kept outside the session can be dropped too.
type Cleared struct{}

func (AskAI) effect()   {}
func (OpenURL) effect() {}
func (Cleared) effect() {}

type queuedQuestion struct {
	id      uint64
	message string
}

// Session is the state machine behind the terminal view.
type Session struct {
	proc   Processor
	logger *zap.Logger
	seq    Sequence

	lines   []model.LineEntry
	history []string
	histIdx int
	input   string
	acIdx   int

	inflight uint64
	queue    []queuedQuestion

	credits    int
	maxCredits int
	data       *model.PortfolioData
}

// New creates an empty session. credits seeds the AI prompt counter.
func New(proc Processor, credits int, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		proc:       proc,
		logger:     logger,
		histIdx:    -1,
		acIdx:      -1,
		credits:    credits,
		maxCredits: credits,
	}
}

// SetData installs the portfolio snapshot. Commands run before this see a
// loading notice.
func (s *Session) SetData(data *model.PortfolioData) {
	s.data = data
}

// Data returns the current snapshot, nil while not loaded.
func (s *Session) Data() *model.PortfolioData {
	return s.data
}

// SetInput replaces the input buffer and drops the autocomplete highlight.
func (s *Session) SetInput(text string) {
	s.input = text
	s.acIdx = -1
}

// Input returns the input buffer.
func (s *Session) Input() string {
	return s.input
}

// Suggestions returns the autocomplete matches for the current buffer.
func (s *Session) Suggestions() []command.CatalogEntry {
	return command.Suggest(s.input)
}

// AutocompleteIndex returns the highlighted suggestion, -1 for none.
func (s *Session) AutocompleteIndex() int {
	return s.acIdx
}

// Lines returns a copy of the transcript, oldest first.
func (s *Session) Lines() []model.LineEntry {
	out := make([]model.LineEntry, len(s.lines))
	copy(out, s.lines)
	return out
}

// History returns a copy of the submission history, oldest first.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Credits returns the remaining AI prompts.
func (s *Session) Credits() int {
	return s.credits
}

// MaxCredits returns the daily AI prompt allowance the session started with.
func (s *Session) MaxCredits() int {
	return s.maxCredits
}

// Awaiting reports whether any AI question is unanswered.
func (s *Session) Awaiting() bool {
	return s.inflight != 0 || len(s.queue) > 0
}

// ThinkingID returns the id of the most recent pending AI entry still in
// the transcript, or 0.
func (s *Session) ThinkingID() uint64 {
	for i := len(s.lines) - 1; i >= 0; i-- {
		if s.lines[i].Pending() {
			return s.lines[i].ID
		}
	}
	return 0
}

// Submit accepts the current buffer, or the highlighted suggestion when
// there is one. Empty input and the bare "/" sentinel are ignored.
func (s *Session) Submit() []Effect {
	text := s.input
	if matches := s.Suggestions(); s.acIdx >= 0 && s.acIdx < len(matches) {
		text = matches[s.acIdx].Command
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == command.ShowAllSentinel {
		return nil
	}

	s.history = append(s.history, trimmed)
	s.histIdx = -1
	s.input = ""
	s.acIdx = -1

	mode := classify.Classify(trimmed)
	s.logger.Debug("submit", zap.String("input", trimmed), zap.Stringer("mode", mode))

	if mode == model.ModeCLI {
		return s.runCommand(trimmed)
	}
	return s.ask(trimmed)
}

// RunEquivalent submits cmd as a command regardless of how it would be
// classified. It is used when the visitor accepts the command an AI answer
// proposed.
func (s *Session) RunEquivalent(cmd string) []Effect {
	trimmed := strings.TrimSpace(cmd)
	if trimmed == "" {
		return nil
	}
	s.history = append(s.history, trimmed)
	s.histIdx = -1
	return s.runCommand(trimmed)
}

func (s *Session) runCommand(cmd string) []Effect {
	res := s.proc.Process(cmd, s.data, s.history)
	if res.Clear {
		s.clear()
		return []Effect{Cleared{}}
	}

	s.lines = append(s.lines, model.LineEntry{
		ID:      s.seq.Next(),
		Input:   cmd,
		Mode:    model.ModeCLI,
		Payload: model.Payload{Kind: model.PayloadOutput, Output: res.Output},
	})

	if res.OpenURL != "" {
		return []Effect{OpenURL{URL: res.OpenURL}}
	}
	return nil
}

// clear empties the transcript. Questions not yet sent are dropped with
// their entries; an answer already on the wire is still awaited so the
// next question can go out once it lands.
func (s *Session) clear() {
	if len(s.queue) > 0 {
		s.logger.Debug("dropping queued questions on clear", zap.Int("count", len(s.queue)))
	}
	s.lines = nil
	s.queue = nil
}

func (s *Session) ask(message string) []Effect {
	id := s.seq.Next()
	s.lines = append(s.lines, model.LineEntry{
		ID:      id,
		Input:   message,
		Mode:    model.ModeAI,
		Payload: model.Payload{Kind: model.PayloadPending},
	})
	s.queue = append(s.queue, queuedQuestion{id: id, message: message})
	return s.dispatch()
}

// dispatch sends the oldest queued question when nothing is in flight.
func (s *Session) dispatch() []Effect {
	if s.inflight != 0 || len(s.queue) == 0 {
		return nil
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.inflight = next.id
	return []Effect{AskAI{EntryID: next.id, Message: next.message}}
}

// ResolveAI records the outcome of the AI call for entry id and starts the
// next queued call, if any. A nil err means reply holds the answer. Only
// the call in flight can be resolved; any other id is logged and ignored,
// so each entry's payload changes at most once.
func (s *Session) ResolveAI(id uint64, reply model.AIReply, err error) []Effect {
	if id == 0 || s.inflight != id {
		s.logger.Warn("ai reply for entry not in flight", zap.Uint64("entry", id), zap.Uint64("inflight", s.inflight))
		return nil
	}
	s.inflight = 0

	var effects []Effect
	payload := model.Payload{Kind: model.PayloadReply, Reply: reply}
	if err != nil {
		s.logger.Error("ai request failed", zap.Uint64("entry", id), zap.Error(err))
		payload = model.Payload{
			Kind: model.PayloadFailure,
			Output: model.Output{Blocks: []model.Block{
				model.Error(FailureMessage),
				model.Text(model.ToneMuted, FailureHint),
			}},
		}
	} else {
		if reply.Remaining != nil && *reply.Remaining < s.credits {
			s.credits = *reply.Remaining
		}
		if reply.OpenURL != "" {
			effects = append(effects, OpenURL{URL: reply.OpenURL})
		}
	}

	if i := s.indexOf(id); i >= 0 {
		s.lines[i].Payload = payload
	} else {
		s.logger.Debug("ai reply for cleared entry", zap.Uint64("entry", id))
	}

	return append(effects, s.dispatch()...)
}

func (s *Session) indexOf(id uint64) int {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// HistoryPrev handles the up arrow: it moves the autocomplete highlight
// when suggestions are showing, otherwise it steps back through history.
func (s *Session) HistoryPrev() {
	if n := len(s.Suggestions()); n > 0 {
		s.acIdx = max(s.acIdx-1, 0)
		return
	}
	if len(s.history) == 0 {
		return
	}
	if s.histIdx == -1 {
		s.histIdx = len(s.history) - 1
	} else {
		s.histIdx = max(s.histIdx-1, 0)
	}
	s.SetInput(s.history[s.histIdx])
}

// HistoryNext handles the down arrow, mirroring HistoryPrev. Stepping past
// the newest entry leaves history mode with an empty buffer.
func (s *Session) HistoryNext() {
	if n := len(s.Suggestions()); n > 0 {
		s.acIdx = min(s.acIdx+1, n-1)
		return
	}
	if s.histIdx == -1 {
		return
	}
	s.histIdx++
	if s.histIdx >= len(s.history) {
		s.histIdx = -1
		s.SetInput("")
		return
	}
	s.SetInput(s.history[s.histIdx])
}

// Complete fills the buffer with the highlighted suggestion, or the first
// one when nothing is highlighted.
func (s *Session) Complete() {
	matches := s.Suggestions()
	if len(matches) == 0 {
		return
	}
	i := s.acIdx
	if i < 0 || i >= len(matches) {
		i = 0
	}
	s.SetInput(matches[i].Command)
}

// SelectSuggestion fills the buffer with suggestion i.
func (s *Session) SelectSuggestion(i int) {
	matches := s.Suggestions()
	if i < 0 || i >= len(matches) {
		return
	}
	s.SetInput(matches[i].Command)
}
