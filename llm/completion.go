package llm

import "fmt"

// CompletionRequest represents a request for LLM completion.
type CompletionRequest struct {
	// Messages contains the conversation history.
	Messages []Message

	// Model names the model to use. Empty means the provider default.
	Model string

	// Temperature controls randomness in the output (0.0 to 2.0).
	Temperature *float64

	// FrequencyPenalty penalizes tokens by how often they already appeared.
	FrequencyPenalty *float64

	// PresencePenalty penalizes tokens that already appeared at all.
	PresencePenalty *float64

	// Tools contains tool definitions available for the model to use.
	Tools []ToolDef

	// ToolChoice controls whether the model may call tools. Empty means auto.
	ToolChoice ToolChoice
}

// CompletionResponse represents a response from an LLM completion.
type CompletionResponse struct {
	// Content is the generated text content.
	Content string

	// ToolCall is the tool invocation requested by the model, if any.
	// When set, Content is empty.
	ToolCall *ToolCall

	// FinishReason indicates why the generation stopped.
	// Common values: "stop", "length", "tool_calls", "content_filter"
	FinishReason string

	// Usage contains token usage statistics.
	Usage TokenUsage
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// InputTokens is the number of tokens in the input/prompt.
	InputTokens int

	// OutputTokens is the number of tokens generated in the response.
	OutputTokens int

	// TotalTokens is the sum of input and output tokens.
	TotalTokens int
}

// CompletionOption is a functional option for configuring CompletionRequest.
type CompletionOption func(*CompletionRequest)

// WithTemperature sets the temperature for the completion request.
// Temperature controls randomness (0.0 to 2.0).
func WithTemperature(t float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Temperature = &t
	}
}

// WithFrequencyPenalty sets the frequency penalty (-2.0 to 2.0).
func WithFrequencyPenalty(p float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.FrequencyPenalty = &p
	}
}

// WithPresencePenalty sets the presence penalty (-2.0 to 2.0).
func WithPresencePenalty(p float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.PresencePenalty = &p
	}
}

// WithModel sets the model name.
func WithModel(name string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Model = name
	}
}

// WithToolChoice sets how the model should use tools.
func WithToolChoice(tc ToolChoice) CompletionOption {
	return func(r *CompletionRequest) {
		r.ToolChoice = tc
	}
}

// WithTools sets the available tools for the completion request.
func WithTools(tools ...ToolDef) CompletionOption {
	return func(r *CompletionRequest) {
		r.Tools = tools
	}
}

// ApplyOptions applies a set of options to the completion request.
func (r *CompletionRequest) ApplyOptions(opts ...CompletionOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// Validate checks the request before it is sent.
func (r *CompletionRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("completion request requires at least one message")
	}
	for i, m := range r.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	for i := range r.Tools {
		if err := r.Tools[i].Validate(); err != nil {
			return fmt.Errorf("tool %d: %w", i, err)
		}
	}
	if r.ToolChoice != "" && !r.ToolChoice.IsValid() {
		return fmt.Errorf("invalid tool choice %q", r.ToolChoice)
	}
	return nil
}

// NewCompletionRequest creates a new CompletionRequest with the given messages and options.
func NewCompletionRequest(messages []Message, opts ...CompletionOption) *CompletionRequest {
	req := &CompletionRequest{
		Messages: messages,
	}
	req.ApplyOptions(opts...)
	return req
}

// HasToolCall returns true if the response is a tool call request.
func (r *CompletionResponse) HasToolCall() bool {
	return r.ToolCall != nil
}

// Add combines two TokenUsage instances.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}
