package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionRequest(t *testing.T) {
	messages := []Message{SystemMessage("sys"), UserMessage("hi")}
	tools := []ToolDef{{Name: "getWeather", Description: "weather", Parameters: map[string]any{"type": "object"}}}

	req := NewCompletionRequest(messages,
		WithModel("gpt-4o"),
		WithTemperature(0.1),
		WithFrequencyPenalty(0.0),
		WithPresencePenalty(0.6),
		WithTools(tools...),
		WithToolChoice(ToolChoiceAuto),
	)

	assert.Equal(t, messages, req.Messages)
	assert.Equal(t, "gpt-4o", req.Model)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.1, *req.Temperature, 1e-9)
	require.NotNil(t, req.FrequencyPenalty)
	assert.Zero(t, *req.FrequencyPenalty)
	require.NotNil(t, req.PresencePenalty)
	assert.InDelta(t, 0.6, *req.PresencePenalty, 1e-9)
	assert.Equal(t, tools, req.Tools)
	assert.Equal(t, ToolChoiceAuto, req.ToolChoice)
}

func TestNewCompletionRequest_NoOptions(t *testing.T) {
	req := NewCompletionRequest([]Message{UserMessage("hi")})

	assert.Nil(t, req.Temperature)
	assert.Nil(t, req.FrequencyPenalty)
	assert.Nil(t, req.PresencePenalty)
	assert.Empty(t, req.Tools)
}

func TestCompletionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *CompletionRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  NewCompletionRequest([]Message{UserMessage("hi")}),
		},
		{
			name:    "no messages",
			req:     NewCompletionRequest(nil),
			wantErr: "at least one message",
		},
		{
			name:    "bad message",
			req:     NewCompletionRequest([]Message{UserMessage("")}),
			wantErr: "message 0",
		},
		{
			name:    "bad tool",
			req:     NewCompletionRequest([]Message{UserMessage("hi")}, WithTools(ToolDef{Name: "x"})),
			wantErr: "tool 0",
		},
		{
			name:    "bad tool choice",
			req:     NewCompletionRequest([]Message{UserMessage("hi")}, WithToolChoice("maybe")),
			wantErr: "invalid tool choice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCompletionResponse(t *testing.T) {
	text := CompletionResponse{Content: "It's sunny", FinishReason: "stop"}
	assert.False(t, text.HasToolCall())

	call := CompletionResponse{ToolCall: &ToolCall{ID: "c1", Name: "getWeather"}, FinishReason: "tool_calls"}
	assert.True(t, call.HasToolCall())
}

func TestTokenUsage_Add(t *testing.T) {
	a := TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
	b := TokenUsage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5}

	assert.Equal(t, TokenUsage{InputTokens: 13, OutputTokens: 7, TotalTokens: 20}, a.Add(b))
	assert.Equal(t, a, a.Add(TokenUsage{}))
}
