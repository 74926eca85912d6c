package tool

import (
	"context"
	"time"

	"github.com/zero-day-ai/toolchat/llm"
	"github.com/zero-day-ai/toolchat/schema"
)

// Executor runs a tool with decoded arguments and returns its string output.
// Errors are turned into string results by the Dispatcher; they never end a turn.
type Executor interface {
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, args map[string]any) (string, error)

// Execute calls f(ctx, args).
func (f ExecutorFunc) Execute(ctx context.Context, args map[string]any) (string, error) {
	return f(ctx, args)
}

// Spec describes a tool to the model.
type Spec struct {
	// Name is the unique identifier the model uses to call the tool.
	Name string

	// Description explains what the tool does and when to use it.
	Description string

	// Parameters is the schema of the argument object.
	Parameters schema.JSON
}

// Definition renders the spec in the form advertised to the model.
func (s Spec) Definition() llm.ToolDef {
	params := s.Parameters
	if params.Type == "" {
		params = schema.Object(map[string]schema.JSON{})
	}
	return llm.ToolDef{
		Name:        s.Name,
		Description: s.Description,
		Parameters:  params.ToMap(),
	}
}

// Entry binds a spec to the executor that implements it.
type Entry struct {
	Spec     Spec
	Executor Executor

	// Timeout bounds a single execution. Zero means the dispatcher default.
	Timeout time.Duration

	validator *schema.Validator
}

// Name returns the tool name.
func (e *Entry) Name() string {
	return e.Spec.Name
}

// ValidateArgs checks decoded arguments against the parameter schema.
func (e *Entry) ValidateArgs(args map[string]any) error {
	if e.validator == nil {
		return nil
	}
	return e.validator.Validate(args)
}
