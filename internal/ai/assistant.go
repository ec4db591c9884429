package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nhle/portfolio-term/internal/classify"
	"github.com/nhle/portfolio-term/internal/command"
	"github.com/nhle/portfolio-term/internal/model"
)

const defaultModel = "gemini-2.0-flash"

// generator is the part of the Gemini models service the assistant uses.
type generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Assistant answers questions with Gemini, grounded on the portfolio
// snapshot. It keeps a short conversation memory and its own daily prompt
// allowance.
type Assistant struct {
	gen     generator
	model   string
	context *ConversationContext

	mu        sync.Mutex
	data      *model.PortfolioData
	remaining int
	allowance int
}

// NewAssistant creates a Gemini-backed assistant. credits is the number of
// questions it will answer before replying with a rate-limit notice.
func NewAssistant(ctx context.Context, apiKey, modelName string, credits int) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newAssistant(client.Models, modelName, credits), nil
}

func newAssistant(gen generator, modelName string, credits int) *Assistant {
	if modelName == "" {
		modelName = defaultModel
	}
	return &Assistant{
		gen:       gen,
		model:     modelName,
		context:   NewConversationContext(20),
		remaining: credits,
		allowance: credits,
	}
}

// SetData installs the portfolio snapshot the answers are grounded on.
func (a *Assistant) SetData(data *model.PortfolioData) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = data
}

// Reset clears the conversation history.
func (a *Assistant) Reset() {
	a.context.Reset()
}

// Ask sends the question along with the recent conversation and decodes the
// structured answer.
func (a *Assistant) Ask(ctx context.Context, message string) (model.AIReply, error) {
	a.mu.Lock()
	if a.remaining <= 0 {
		a.mu.Unlock()
		zero := 0
		return model.AIReply{
			Message:       fmt.Sprintf("You've used all %d AI prompts for today. Direct commands still work!", a.allowance),
			EquivalentCmd: "help",
			Remaining:     &zero,
		}, nil
	}
	data := a.data
	a.mu.Unlock()

	contents := a.buildContents(message)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemPrompt(data), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    replySchema,
	}

	resp, err := a.gen.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return model.AIReply{}, fmt.Errorf("generating content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return model.AIReply{}, fmt.Errorf("empty response from %s", a.model)
	}
	reply := parseReply(text)

	a.mu.Lock()
	a.remaining--
	left := a.remaining
	a.mu.Unlock()
	reply.Remaining = &left

	a.context.AddMessage(RoleUser, message)
	a.context.AddMessage(RoleModel, reply.Message)

	return reply, nil
}

func (a *Assistant) buildContents(message string) []*genai.Content {
	history := a.context.GetMessages()
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

var replySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"message":       {Type: genai.TypeString, Description: "Answer shown to the visitor."},
		"equivalentCmd": {Type: genai.TypeString, Description: "Terminal command showing the same information, or empty."},
		"openUrl":       {Type: genai.TypeString, Description: "URL to open for the visitor, or empty."},
	},
	Required: []string{"message", "equivalentCmd"},
}

// parseReply decodes the model's JSON answer. Anything that is not the
// expected object is shown verbatim.
func parseReply(text string) model.AIReply {
	var reply model.AIReply
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "```"), "```")

	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil || reply.Message == "" {
		return model.AIReply{Message: strings.TrimSpace(text)}
	}

	cmd := strings.TrimSpace(reply.EquivalentCmd)
	if fields := strings.Fields(strings.ToLower(cmd)); len(fields) == 0 || !classify.IsCommand(fields[0]) {
		cmd = ""
	}
	reply.EquivalentCmd = cmd
	reply.Remaining = nil
	return reply
}

func buildSystemPrompt(data *model.PortfolioData) string {
	var b strings.Builder
	b.WriteString("You are the AI layer of a terminal-style developer portfolio. ")
	b.WriteString("Answer visitor questions about the portfolio owner in a friendly, concise way (at most a few short paragraphs, markdown allowed). ")
	b.WriteString("Only use facts from the portfolio below; if something is not covered, say so.\n\n")
	b.WriteString("Reply with a JSON object: {\"message\": string, \"equivalentCmd\": string, \"openUrl\": string}. ")
	b.WriteString("equivalentCmd is the terminal command that shows the same information (empty if none). ")
	b.WriteString("openUrl is set only when the visitor explicitly asks to open a link such as the resume.\n\n")

	b.WriteString("Terminal commands:\n")
	for _, entry := range command.Catalog() {
		fmt.Fprintf(&b, "- %s: %s\n", entry.Command, entry.Description)
	}
	b.WriteString("\n")

	if data == nil {
		b.WriteString("The portfolio data has not loaded yet; suggest the visitor try again shortly.\n")
		return b.String()
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		b.WriteString("The portfolio data could not be encoded.\n")
		return b.String()
	}
	b.WriteString("Portfolio:\n")
	b.Write(raw)
	b.WriteString("\n")
	return b.String()
}
