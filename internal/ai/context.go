package ai

import "sync"

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message represents a single turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// ConversationContext keeps the most recent turns of the conversation so
// follow-up questions ("and before that?") have something to refer to.
type ConversationContext struct {
	mu          sync.Mutex
	messages    []Message
	maxMessages int
}

// NewConversationContext creates a context holding at most maxMessages
// turns. A non-positive maxMessages means 20.
func NewConversationContext(maxMessages int) *ConversationContext {
	if maxMessages <= 0 {
		maxMessages = 20
	}
	return &ConversationContext{
		messages:    make([]Message, 0, maxMessages),
		maxMessages: maxMessages,
	}
}

// AddMessage appends a turn, dropping the oldest ones past the limit.
func (c *ConversationContext) AddMessage(role Role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, Message{Role: role, Content: content})
	if excess := len(c.messages) - c.maxMessages; excess > 0 {
		c.messages = append(c.messages[:0:0], c.messages[excess:]...)
	}
}

// GetMessages returns a copy of the current conversation messages.
func (c *ConversationContext) GetMessages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// Reset clears all messages from the conversation context.
func (c *ConversationContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = c.messages[:0]
}

// Len returns the number of messages in the conversation context.
func (c *ConversationContext) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.messages)
}
