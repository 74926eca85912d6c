package llm

import "fmt"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	// RoleSystem represents system-level instructions or context.
	RoleSystem Role = "system"

	// RoleUser represents messages from the user.
	RoleUser Role = "user"

	// RoleAssistant represents messages from the AI assistant, either final
	// text or a request to call a tool.
	RoleAssistant Role = "assistant"

	// RoleTool represents tool execution results.
	RoleTool Role = "tool"
)

// Kind identifies which variant of the message union a Message holds.
type Kind string

const (
	KindSystem        Kind = "system"
	KindUser          Kind = "user"
	KindAssistantText Kind = "assistant_text"
	KindToolRequest   Kind = "tool_request"
	KindToolResult    Kind = "tool_result"
)

// Message represents a single message in a conversation.
//
// Messages are built with the constructors below, which fix the variant;
// code outside this package should treat the fields as read-only.
type Message struct {
	// Role indicates who sent the message.
	Role Role

	// Content is the text of a system, user or assistant text message,
	// or the output of a tool result.
	Content string

	// ToolCall is the tool invocation requested by the assistant.
	// Only set on assistant tool-request messages.
	ToolCall *ToolCall

	// ToolCallID links a tool result to the request it answers.
	// Only set when Role is RoleTool.
	ToolCallID string

	// Name identifies the tool that produced this message.
	// Only set when Role is RoleTool.
	Name string
}

// SystemMessage creates a system instruction message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant text message. Content may be empty.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolRequestMessage creates an assistant message requesting a tool call.
func ToolRequestMessage(call ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCall: &call}
}

// ToolResultMessage creates the message carrying a tool's output back to the model.
func ToolResultMessage(callID, name, output string) Message {
	return Message{
		Role:       RoleTool,
		Content:    output,
		ToolCallID: callID,
		Name:       name,
	}
}

// Kind returns the union variant of the message.
func (m Message) Kind() Kind {
	switch m.Role {
	case RoleSystem:
		return KindSystem
	case RoleUser:
		return KindUser
	case RoleAssistant:
		if m.ToolCall != nil {
			return KindToolRequest
		}
		return KindAssistantText
	case RoleTool:
		return KindToolResult
	default:
		return ""
	}
}

// Validate checks that the message has exactly the fields of its variant.
func (m Message) Validate() error {
	switch m.Kind() {
	case KindSystem, KindUser:
		if m.Content == "" {
			return fmt.Errorf("%s message content cannot be empty", m.Role)
		}
		if m.ToolCallID != "" || m.Name != "" {
			return fmt.Errorf("%s message cannot carry tool fields", m.Role)
		}
	case KindAssistantText:
		if m.ToolCallID != "" || m.Name != "" {
			return fmt.Errorf("assistant message cannot carry tool result fields")
		}
	case KindToolRequest:
		if m.Content != "" {
			return fmt.Errorf("tool request message cannot carry text content")
		}
		if m.ToolCall.ID == "" {
			return fmt.Errorf("tool request message requires a call id")
		}
	case KindToolResult:
		if m.ToolCallID == "" {
			return fmt.Errorf("tool result message requires a call id")
		}
	default:
		return fmt.Errorf("invalid message role %q", m.Role)
	}
	return nil
}

// Answers reports whether m is the tool result for the request message req.
func (m Message) Answers(req Message) bool {
	if m.Kind() != KindToolResult || req.Kind() != KindToolRequest {
		return false
	}
	return m.ToolCallID == req.ToolCall.ID && m.Name == req.ToolCall.Name
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	out := m
	if m.ToolCall != nil {
		call := *m.ToolCall
		out.ToolCall = &call
	}
	return out
}

// CloneMessages returns deep copies of all messages.
func CloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// String returns a string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}
