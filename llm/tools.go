package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToolDef is the wire form of a tool advertised to the model.
type ToolDef struct {
	// Name is the unique identifier for this tool.
	Name string

	// Description explains what the tool does and when to use it.
	Description string

	// Parameters is a JSON Schema describing the tool's input parameters.
	Parameters map[string]any
}

// Validate checks if the tool definition is valid.
func (t *ToolDef) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if t.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	if t.Parameters == nil {
		return fmt.Errorf("tool parameters cannot be nil")
	}
	return nil
}

// ToolCall represents a completed request from the model to invoke a tool.
type ToolCall struct {
	// ID identifies this call so the result can be matched back to it.
	ID string

	// Name is the name of the tool to invoke. It may be empty if the model
	// omitted it; the dispatcher reports that as an unknown tool.
	Name string

	// Arguments is the raw argument text exactly as streamed by the model.
	// It is only interpreted by the dispatcher.
	Arguments string
}

// ParseArguments decodes the raw argument text as a JSON object.
// Blank text and a JSON null both decode to an empty map. Anything that is
// not a JSON object is an error.
func (c *ToolCall) ParseArguments() (map[string]any, error) {
	raw := strings.TrimSpace(c.Arguments)
	if raw == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("invalid JSON in arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// ToolChoice represents how the LLM should use tools.
type ToolChoice string

const (
	// ToolChoiceNone means the LLM will not use any tools.
	ToolChoiceNone ToolChoice = "none"

	// ToolChoiceAuto means the LLM decides whether to use tools.
	ToolChoiceAuto ToolChoice = "auto"

	// ToolChoiceRequired means the LLM must use a tool.
	ToolChoiceRequired ToolChoice = "required"
)

// String returns the string representation of the tool choice.
func (tc ToolChoice) String() string {
	return string(tc)
}

// IsValid checks if the tool choice is valid.
func (tc ToolChoice) IsValid() bool {
	switch tc {
	case ToolChoiceNone, ToolChoiceAuto, ToolChoiceRequired:
		return true
	default:
		return false
	}
}
