package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/tests/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	proc := command.New(command.IdentityFromConfig(model.DefaultAppConfig().Identity))
	s := New(proc, 5, zap.NewNop())
	s.SetData(testutil.SamplePortfolio())
	return s
}

func submit(s *Session, text string) []Effect {
	s.SetInput(text)
	return s.Submit()
}

func intPtr(n int) *int { return &n }

func TestSequence_StartsAtOneAndIncreases(t *testing.T) {
	var seq Sequence
	assert.Equal(t, uint64(1), seq.Next())
	assert.Equal(t, uint64(2), seq.Next())
	assert.Equal(t, uint64(3), seq.Next())
}

func TestSubmit_RejectsEmptyAndSentinel(t *testing.T) {
	s := newTestSession(t)

	for _, input := range []string{"", "   ", "/", " / "} {
		assert.Nil(t, submit(s, input))
	}
	assert.Empty(t, s.History())
	assert.Empty(t, s.Lines())
}

func TestSubmit_CommandAppendsOutput(t *testing.T) {
	s := newTestSession(t)

	effects := submit(s, "  skills ")
	assert.Empty(t, effects)
	assert.Equal(t, []string{"skills"}, s.History())
	assert.Equal(t, "", s.Input())

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint64(1), lines[0].ID)
	assert.Equal(t, "skills", lines[0].Input)
	assert.Equal(t, model.ModeCLI, lines[0].Mode)
	assert.Equal(t, model.PayloadOutput, lines[0].Payload.Kind)
	assert.False(t, lines[0].Payload.Output.IsEmpty())
}

func TestSubmit_BeforeDataLoadedShowsLoading(t *testing.T) {
	proc := command.New(command.IdentityFromConfig(model.DefaultAppConfig().Identity))
	s := New(proc, 5, nil)

	submit(s, "skills")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Loading portfolio data...", lines[0].Payload.Output.Blocks[0].Text)
}

func TestSubmit_ClearEmptiesTranscriptKeepsHistory(t *testing.T) {
	s := newTestSession(t)

	submit(s, "help")
	submit(s, "whoami")
	require.Len(t, s.Lines(), 2)

	assert.Equal(t, []Effect{Cleared{}}, submit(s, "clear"))
	assert.Empty(t, s.Lines())
	assert.Equal(t, []string{"help", "whoami", "clear"}, s.History())
}

func TestSubmit_CurlEmitsOpenURL(t *testing.T) {
	s := newTestSession(t)

	effects := submit(s, "curl resume.pdf")
	require.Len(t, effects, 1)
	assert.Equal(t, OpenURL{URL: model.DefaultAppConfig().Identity.ResumeURL}, effects[0])
}

func TestSubmit_HighlightedSuggestionWins(t *testing.T) {
	s := newTestSession(t)

	s.SetInput("exp")
	s.HistoryNext()
	s.HistoryNext()
	assert.Equal(t, 1, s.AutocompleteIndex())

	s.Submit()
	assert.Equal(t, []string{"experience --short"}, s.History())
	assert.Equal(t, -1, s.AutocompleteIndex())
}

func TestSubmit_QuestionIsPendingUntilResolved(t *testing.T) {
	s := newTestSession(t)

	effects := submit(s, "tell me about his work")
	require.Len(t, effects, 1)
	ask, ok := effects[0].(AskAI)
	require.True(t, ok)
	assert.Equal(t, "tell me about his work", ask.Message)

	assert.True(t, s.Awaiting())
	assert.Equal(t, ask.EntryID, s.ThinkingID())
	require.Len(t, s.Lines(), 1)
	assert.True(t, s.Lines()[0].Pending())

	effects = s.ResolveAI(ask.EntryID, model.AIReply{
		Message:       "He builds things.",
		EquivalentCmd: "experience",
		Remaining:     intPtr(4),
	}, nil)
	assert.Empty(t, effects)
	assert.False(t, s.Awaiting())
	assert.Zero(t, s.ThinkingID())
	assert.Equal(t, 4, s.Credits())

	line := s.Lines()[0]
	assert.Equal(t, model.PayloadReply, line.Payload.Kind)
	assert.Equal(t, "He builds things.", line.Payload.Reply.Message)
	assert.Equal(t, "experience", line.Payload.Reply.EquivalentCmd)
}

func TestResolveAI_FailureRendersConnectivityError(t *testing.T) {
	s := newTestSession(t)

	ask := submit(s, "what does he do")[0].(AskAI)
	s.ResolveAI(ask.EntryID, model.AIReply{}, errors.New("dial tcp: refused"))

	line := s.Lines()[0]
	assert.Equal(t, model.PayloadFailure, line.Payload.Kind)
	require.Len(t, line.Payload.Output.Blocks, 2)
	assert.Equal(t, FailureMessage, line.Payload.Output.Blocks[0].Text)
	assert.Equal(t, FailureHint, line.Payload.Output.Blocks[1].Text)
	assert.Equal(t, 5, s.Credits())
}

func TestResolveAI_OpenURLEffect(t *testing.T) {
	s := newTestSession(t)

	ask := submit(s, "give me his resume")[0].(AskAI)
	effects := s.ResolveAI(ask.EntryID, model.AIReply{Message: "Here.", OpenURL: "https://example.dev/cv"}, nil)

	assert.Equal(t, []Effect{OpenURL{URL: "https://example.dev/cv"}}, effects)
}

func TestResolveAI_StaleCreditsNeverRaise(t *testing.T) {
	s := newTestSession(t)

	first := submit(s, "who is he")[0].(AskAI)
	s.ResolveAI(first.EntryID, model.AIReply{Message: "a", Remaining: intPtr(2)}, nil)
	assert.Equal(t, 2, s.Credits())

	second := submit(s, "where does he live")[0].(AskAI)
	s.ResolveAI(second.EntryID, model.AIReply{Message: "b", Remaining: intPtr(3)}, nil)
	assert.Equal(t, 2, s.Credits())

	third := submit(s, "how old is he")[0].(AskAI)
	s.ResolveAI(third.EntryID, model.AIReply{Message: "c"}, nil)
	assert.Equal(t, 2, s.Credits())
}

func TestSubmit_QuestionsAreQueuedInOrder(t *testing.T) {
	s := newTestSession(t)

	first := submit(s, "what are his skills")
	require.Len(t, first, 1)
	firstAsk := first[0].(AskAI)

	assert.Empty(t, submit(s, "where did he study"))
	assert.Empty(t, submit(s, "how can I reach him"))

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, lines[2].ID, s.ThinkingID())

	// A command still runs while questions wait.
	assert.Empty(t, submit(s, "pwd"))
	require.Len(t, s.Lines(), 4)

	next := s.ResolveAI(firstAsk.EntryID, model.AIReply{Message: "Go"}, nil)
	require.Len(t, next, 1)
	secondAsk := next[0].(AskAI)
	assert.Equal(t, "where did he study", secondAsk.Message)
	assert.Equal(t, lines[1].ID, secondAsk.EntryID)

	next = s.ResolveAI(secondAsk.EntryID, model.AIReply{Message: "DTU"}, nil)
	require.Len(t, next, 1)
	thirdAsk := next[0].(AskAI)
	assert.Equal(t, "how can I reach him", thirdAsk.Message)

	assert.Empty(t, s.ResolveAI(thirdAsk.EntryID, model.AIReply{Message: "email"}, nil))
	assert.False(t, s.Awaiting())
}

func TestResolveAI_AfterClearOnlyReleasesSlot(t *testing.T) {
	s := newTestSession(t)

	ask := submit(s, "tell me something")[0].(AskAI)
	assert.Empty(t, submit(s, "show me more"))
	submit(s, "clear")
	assert.Empty(t, s.Lines())

	effects := s.ResolveAI(ask.EntryID, model.AIReply{Message: "late", Remaining: intPtr(1)}, nil)
	assert.Empty(t, effects)
	assert.Empty(t, s.Lines())
	assert.False(t, s.Awaiting())
	assert.Equal(t, 1, s.Credits())

	next := submit(s, "tell me again")
	require.Len(t, next, 1)
	assert.Greater(t, next[0].(AskAI).EntryID, ask.EntryID)
}

func TestResolveAI_IgnoresEntryNotInFlight(t *testing.T) {
	s := newTestSession(t)

	first := submit(s, "what are his skills")[0].(AskAI)
	assert.Empty(t, submit(s, "where did he study"))
	queuedID := s.Lines()[1].ID

	assert.Empty(t, s.ResolveAI(queuedID, model.AIReply{Message: "early"}, nil))
	assert.Equal(t, model.PayloadPending, s.Lines()[1].Payload.Kind)
	assert.Empty(t, s.ResolveAI(9999, model.AIReply{Message: "unknown"}, nil))

	next := s.ResolveAI(first.EntryID, model.AIReply{Message: "Go"}, nil)
	require.Len(t, next, 1)
	assert.Equal(t, queuedID, next[0].(AskAI).EntryID)
	assert.Equal(t, model.PayloadPending, s.Lines()[1].Payload.Kind)

	assert.Empty(t, s.ResolveAI(queuedID, model.AIReply{Message: "DTU"}, nil))
	assert.Equal(t, "DTU", s.Lines()[1].Payload.Reply.Message)

	assert.Empty(t, s.ResolveAI(queuedID, model.AIReply{Message: "again"}, nil))
	assert.Equal(t, "DTU", s.Lines()[1].Payload.Reply.Message)
	assert.False(t, s.Awaiting())
}

func TestRunEquivalent_ForcesCommand(t *testing.T) {
	s := newTestSession(t)

	effects := s.RunEquivalent("experience --short")
	assert.Empty(t, effects)
	assert.Equal(t, []string{"experience --short"}, s.History())
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, model.ModeCLI, s.Lines()[0].Mode)

	// Would classify as a question, still runs as a command.
	s.RunEquivalent("tell me everything")
	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, model.ModeCLI, lines[1].Mode)
	assert.Equal(t, "bash: tell: command not found", lines[1].Payload.Output.Blocks[0].Text)

	assert.Nil(t, s.RunEquivalent("  "))
}

func TestHistory_PrevOnEmptyIsNoop(t *testing.T) {
	s := newTestSession(t)

	s.HistoryPrev()
	assert.Equal(t, "", s.Input())
	s.HistoryNext()
	assert.Equal(t, "", s.Input())
}

func TestHistory_Navigation(t *testing.T) {
	s := newTestSession(t)
	for _, cmd := range []string{"pwd", "date", "ls"} {
		submit(s, cmd)
	}

	s.HistoryPrev()
	assert.Equal(t, "ls", s.Input())
	s.HistoryPrev()
	assert.Equal(t, "date", s.Input())
	s.HistoryPrev()
	assert.Equal(t, "pwd", s.Input())
	s.HistoryPrev()
	assert.Equal(t, "pwd", s.Input(), "clamped at the oldest entry")

	s.HistoryNext()
	assert.Equal(t, "date", s.Input())
	s.HistoryNext()
	assert.Equal(t, "ls", s.Input())
	s.HistoryNext()
	assert.Equal(t, "", s.Input(), "past the newest entry leaves history mode")
	s.HistoryNext()
	assert.Equal(t, "", s.Input())
}

func TestHistory_ArrowsMoveAutocompleteWhenShowing(t *testing.T) {
	s := newTestSession(t)
	submit(s, "pwd")

	s.SetInput("c")
	n := len(s.Suggestions())
	require.Greater(t, n, 2)

	s.HistoryPrev()
	assert.Equal(t, 0, s.AutocompleteIndex())
	assert.Equal(t, "c", s.Input(), "history untouched")

	for i := 0; i < n+3; i++ {
		s.HistoryNext()
	}
	assert.Equal(t, n-1, s.AutocompleteIndex())

	s.HistoryPrev()
	assert.Equal(t, n-2, s.AutocompleteIndex())
}

func TestComplete(t *testing.T) {
	s := newTestSession(t)

	s.SetInput("zzz")
	s.Complete()
	assert.Equal(t, "zzz", s.Input())

	s.SetInput("proj")
	s.Complete()
	assert.Equal(t, "projects", s.Input())
	assert.Equal(t, -1, s.AutocompleteIndex())

	s.SetInput("proj")
	s.HistoryNext()
	s.HistoryNext()
	s.Complete()
	assert.Equal(t, "projects --ls", s.Input())
}

func TestSelectSuggestion(t *testing.T) {
	s := newTestSession(t)

	s.SetInput("/")
	s.SelectSuggestion(1)
	assert.Equal(t, "whoami", s.Input())

	s.SelectSuggestion(99)
	assert.Equal(t, "whoami", s.Input())
}

func TestSetInput_ResetsHighlight(t *testing.T) {
	s := newTestSession(t)

	s.SetInput("c")
	s.HistoryNext()
	require.Equal(t, 0, s.AutocompleteIndex())

	s.SetInput("ca")
	assert.Equal(t, -1, s.AutocompleteIndex())
}

func TestHistoryCommandSeesItself(t *testing.T) {
	s := newTestSession(t)
	submit(s, "pwd")
	submit(s, "history")

	blocks := s.Lines()[1].Payload.Output.Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, "history", blocks[1].Text)
}
