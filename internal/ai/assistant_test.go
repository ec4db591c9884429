package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nhle/portfolio-term/tests/testutil"
)

type fakeGenerator struct {
	text     string
	err      error
	calls    int
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.text, genai.RoleModel),
		}},
	}, nil
}

func TestAssistant_AskDecodesStructuredReply(t *testing.T) {
	gen := &fakeGenerator{text: `{"message":"He knows Go.","equivalentCmd":"skills","openUrl":""}`}
	a := newAssistant(gen, "", 3)
	a.SetData(testutil.SamplePortfolio())

	reply, err := a.Ask(context.Background(), "what does he know")
	require.NoError(t, err)
	assert.Equal(t, "He knows Go.", reply.Message)
	assert.Equal(t, "skills", reply.EquivalentCmd)
	require.NotNil(t, reply.Remaining)
	assert.Equal(t, 2, *reply.Remaining)

	require.NotNil(t, gen.config)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "Suraj Kumar")
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "cat about.txt")
}

func TestAssistant_KeepsConversation(t *testing.T) {
	gen := &fakeGenerator{text: `{"message":"First answer","equivalentCmd":""}`}
	a := newAssistant(gen, "gemini-test", 5)

	_, err := a.Ask(context.Background(), "first question")
	require.NoError(t, err)
	_, err = a.Ask(context.Background(), "second question")
	require.NoError(t, err)

	require.Len(t, gen.contents, 3)
	assert.Equal(t, "first question", gen.contents[0].Parts[0].Text)
	assert.Equal(t, "First answer", gen.contents[1].Parts[0].Text)
	assert.Equal(t, "second question", gen.contents[2].Parts[0].Text)

	a.Reset()
	_, err = a.Ask(context.Background(), "third")
	require.NoError(t, err)
	assert.Len(t, gen.contents, 1)
}

func TestAssistant_OutOfCreditsDoesNotCallModel(t *testing.T) {
	gen := &fakeGenerator{text: `{"message":"ok","equivalentCmd":""}`}
	a := newAssistant(gen, "", 1)

	_, err := a.Ask(context.Background(), "one")
	require.NoError(t, err)

	reply, err := a.Ask(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	require.NotNil(t, reply.Remaining)
	assert.Zero(t, *reply.Remaining)
	assert.Equal(t, "help", reply.EquivalentCmd)
}

func TestAssistant_ErrorsDoNotSpendCredits(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	a := newAssistant(gen, "", 2)

	_, err := a.Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Zero(t, a.context.Len())

	gen.err = nil
	gen.text = "   "
	_, err = a.Ask(context.Background(), "q")
	assert.Error(t, err)

	gen.text = `{"message":"fine","equivalentCmd":""}`
	reply, err := a.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 1, *reply.Remaining)
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
		cmd     string
	}{
		{"plain json", `{"message":"hi","equivalentCmd":"contact"}`, "hi", "contact"},
		{"fenced json", "```json\n{\"message\":\"hi\",\"equivalentCmd\":\"projects --ls\"}\n```", "hi", "projects --ls"},
		{"unknown command dropped", `{"message":"hi","equivalentCmd":"rmdir /"}`, "hi", ""},
		{"not json", "just text", "just text", ""},
		{"empty message", `{"message":"","equivalentCmd":"help"}`, `{"message":"","equivalentCmd":"help"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseReply(tt.text)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.cmd, got.EquivalentCmd)
			assert.Nil(t, got.Remaining)
		})
	}
}

func TestBuildSystemPrompt_WithoutData(t *testing.T) {
	assert.Contains(t, buildSystemPrompt(nil), "has not loaded yet")
}
