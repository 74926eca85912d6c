package llm

import (
	"io"
)

// DefaultEchoLabel is written once before the first echoed text fragment.
const DefaultEchoLabel = "AI: "

// StreamChunk is one delta event received during a streaming completion.
type StreamChunk struct {
	// Delta contains the incremental text content for this chunk.
	Delta string

	// ToolCall carries a fragment of the function call the model is building.
	// Names and arguments may be split across any number of chunks.
	ToolCall *ToolCallDelta

	// FinishReason indicates why the generation stopped.
	// Only set on the final chunk. Common values: "stop", "length", "tool_calls", "content_filter"
	FinishReason string

	// Usage contains token usage statistics.
	// Typically only set on the final chunk.
	Usage *TokenUsage
}

// ToolCallDelta is a fragment of a tool call. Any field may be empty.
type ToolCallDelta struct {
	ID        string
	Name      string
	Arguments string
}

// Stream is a pull-based sequence of delta events. Next blocks until the
// next event is available and returns false at the end of the stream or on
// error; Err reports the error, if any.
type Stream interface {
	Next() bool
	Current() StreamChunk
	Err() error
	Close() error
}

// AccumulatorOption configures a StreamAccumulator.
type AccumulatorOption func(*StreamAccumulator)

// WithEcho makes the accumulator write every text fragment to w as it
// arrives. The label is written once, before the first fragment.
func WithEcho(w io.Writer, label string) AccumulatorOption {
	return func(a *StreamAccumulator) {
		a.echo = w
		a.label = label
	}
}

// StreamAccumulator folds delta events into a final response.
//
// Text and tool-call tracking are independent: a stream may carry both, in
// which case the tool call wins when the response is built.
type StreamAccumulator struct {
	content      []byte
	sawToolCall  bool
	callID       string
	callName     []byte
	callArgs     []byte
	finishReason string
	usage        *TokenUsage

	echo     io.Writer
	label    string
	labelled bool
	echoErr  error
}

// NewStreamAccumulator creates a new accumulator for streaming responses.
func NewStreamAccumulator(opts ...AccumulatorOption) *StreamAccumulator {
	a := &StreamAccumulator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add processes a new chunk and updates the accumulator state.
func (a *StreamAccumulator) Add(chunk StreamChunk) {
	if chunk.Delta != "" {
		a.content = append(a.content, chunk.Delta...)
		a.write(chunk.Delta)
	}

	if tc := chunk.ToolCall; tc != nil {
		a.sawToolCall = true
		if a.callID == "" {
			a.callID = tc.ID
		}
		a.callName = append(a.callName, tc.Name...)
		a.callArgs = append(a.callArgs, tc.Arguments...)
	}

	if chunk.FinishReason != "" {
		a.finishReason = chunk.FinishReason
	}
	if chunk.Usage != nil {
		u := *chunk.Usage
		a.usage = &u
	}
}

func (a *StreamAccumulator) write(fragment string) {
	if a.echo == nil || a.echoErr != nil {
		return
	}
	if !a.labelled {
		a.labelled = true
		if _, err := io.WriteString(a.echo, a.label); err != nil {
			a.echoErr = err
			return
		}
	}
	if _, err := io.WriteString(a.echo, fragment); err != nil {
		a.echoErr = err
	}
}

// Content returns the text accumulated so far.
func (a *StreamAccumulator) Content() string {
	return string(a.content)
}

// ToolCall returns the accumulated tool call, or nil if no tool-call
// fragment has been seen. The name may be empty.
func (a *StreamAccumulator) ToolCall() *ToolCall {
	if !a.sawToolCall {
		return nil
	}
	return &ToolCall{
		ID:        a.callID,
		Name:      string(a.callName),
		Arguments: string(a.callArgs),
	}
}

// Echoed reports whether any text has been echoed.
func (a *StreamAccumulator) Echoed() bool {
	return a.labelled
}

// EchoErr returns the first error from the echo writer. Echoing stops after it.
func (a *StreamAccumulator) EchoErr() error {
	return a.echoErr
}

// ToResponse converts the accumulated state to a CompletionResponse.
func (a *StreamAccumulator) ToResponse() CompletionResponse {
	usage := TokenUsage{}
	if a.usage != nil {
		usage = *a.usage
	}

	resp := CompletionResponse{
		FinishReason: a.finishReason,
		Usage:        usage,
	}
	if call := a.ToolCall(); call != nil {
		resp.ToolCall = call
	} else {
		resp.Content = a.Content()
	}
	return resp
}

// Accumulate drains the stream into acc and returns the resulting response.
// The caller owns the stream and must close it.
func Accumulate(stream Stream, acc *StreamAccumulator) (CompletionResponse, error) {
	for stream.Next() {
		acc.Add(stream.Current())
	}
	if err := stream.Err(); err != nil {
		return CompletionResponse{}, err
	}
	return acc.ToResponse(), nil
}
