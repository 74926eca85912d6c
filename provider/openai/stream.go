package openai

import (
	"log/slog"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/zero-day-ai/toolchat/llm"
)

// stream adapts an SSE chunk stream to llm.Stream.
type stream struct {
	sse     *ssestream.Stream[oai.ChatCompletionChunk]
	logger  *slog.Logger
	current llm.StreamChunk
	warned  bool
}

var _ llm.Stream = (*stream)(nil)

func newStream(sse *ssestream.Stream[oai.ChatCompletionChunk], logger *slog.Logger) *stream {
	return &stream{sse: sse, logger: logger}
}

func (s *stream) Next() bool {
	if !s.sse.Next() {
		return false
	}
	s.current = s.convert(s.sse.Current())
	return true
}

func (s *stream) Current() llm.StreamChunk {
	return s.current
}

func (s *stream) Err() error {
	return s.sse.Err()
}

func (s *stream) Close() error {
	return s.sse.Close()
}

func (s *stream) convert(chunk oai.ChatCompletionChunk) llm.StreamChunk {
	var out llm.StreamChunk

	if chunk.Usage.TotalTokens > 0 {
		out.Usage = &llm.TokenUsage{
			InputTokens:  int(chunk.Usage.PromptTokens),
			OutputTokens: int(chunk.Usage.CompletionTokens),
			TotalTokens:  int(chunk.Usage.TotalTokens),
		}
	}

	if len(chunk.Choices) == 0 {
		return out
	}
	choice := chunk.Choices[0]
	out.Delta = choice.Delta.Content
	out.FinishReason = choice.FinishReason

	for _, tc := range choice.Delta.ToolCalls {
		if tc.Index != 0 {
			if !s.warned {
				s.warned = true
				s.logger.Warn("ignoring parallel tool call", "index", tc.Index, "tool", tc.Function.Name)
			}
			continue
		}
		out.ToolCall = &llm.ToolCallDelta{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}
	}
	return out
}
