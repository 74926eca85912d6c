package agent

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/llm"
)

var (
	// ErrOrphanToolResult is returned when a tool result does not directly
	// follow the tool request it answers.
	ErrOrphanToolResult = errors.New("tool result does not answer the preceding tool request")

	// ErrUnansweredToolRequest is returned when a message other than the
	// matching tool result follows a tool request.
	ErrUnansweredToolRequest = errors.New("tool request must be followed by its result")
)

// Conversation is the ordered, append-only message history of a session.
// The whole history is replayed to the model on every call and is never
// trimmed. It is owned by a single Loop and is not safe for concurrent use.
type Conversation struct {
	messages []llm.Message
}

// NewConversation starts a conversation, seeded with a system message when
// system is not empty.
func NewConversation(system string) *Conversation {
	c := &Conversation{}
	if system != "" {
		c.messages = append(c.messages, llm.SystemMessage(system))
	}
	return c
}

// Append adds m to the end of the history. The message must be valid for its
// variant, a tool result must immediately follow the request it answers, and
// nothing else may follow a tool request.
func (c *Conversation) Append(m llm.Message) error {
	if err := m.Validate(); err != nil {
		return toolchat.NewValidationError("Conversation.Append", err)
	}

	last, hasLast := c.Last()
	pending := hasLast && last.Kind() == llm.KindToolRequest

	switch {
	case m.Kind() == llm.KindToolResult && !m.Answers(last):
		return toolchat.NewValidationError("Conversation.Append",
			fmt.Errorf("%w: call id %q", ErrOrphanToolResult, m.ToolCallID))
	case pending && m.Kind() != llm.KindToolResult:
		return toolchat.NewValidationError("Conversation.Append",
			fmt.Errorf("%w: call id %q", ErrUnansweredToolRequest, last.ToolCall.ID))
	}

	c.messages = append(c.messages, m.Clone())
	return nil
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []llm.Message {
	return llm.CloneMessages(c.messages)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message.
func (c *Conversation) Last() (llm.Message, bool) {
	if len(c.messages) == 0 {
		return llm.Message{}, false
	}
	return c.messages[len(c.messages)-1].Clone(), true
}
