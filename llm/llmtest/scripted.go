// Package llmtest provides deterministic streaming models for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/zero-day-ai/toolchat/llm"
)

// Response configures one model call in a scripted sequence.
type Response struct {
	// Chunks are replayed in order by the returned stream.
	Chunks []llm.StreamChunk

	// Err fails the call before a stream is returned.
	Err error

	// StreamErr is reported by the stream after all chunks are delivered.
	StreamErr error
}

// Text scripts a plain text answer split into the given fragments.
func Text(fragments ...string) Response {
	chunks := make([]llm.StreamChunk, 0, len(fragments)+1)
	for _, f := range fragments {
		chunks = append(chunks, llm.StreamChunk{Delta: f})
	}
	chunks = append(chunks, llm.StreamChunk{FinishReason: "stop"})
	return Response{Chunks: chunks}
}

// Call scripts a single tool call. The id arrives with the first fragment,
// the name in one piece and the arguments in the given fragments.
func Call(id, name string, argFragments ...string) Response {
	chunks := []llm.StreamChunk{{ToolCall: &llm.ToolCallDelta{ID: id, Name: name}}}
	for _, f := range argFragments {
		chunks = append(chunks, llm.StreamChunk{ToolCall: &llm.ToolCallDelta{Arguments: f}})
	}
	chunks = append(chunks, llm.StreamChunk{FinishReason: "tool_calls"})
	return Response{Chunks: chunks}
}

// WithUsage attaches token usage to the final chunk.
func (r Response) WithUsage(usage llm.TokenUsage) Response {
	r.Chunks = append([]llm.StreamChunk(nil), r.Chunks...)
	r.Chunks = append(r.Chunks, llm.StreamChunk{Usage: &usage})
	return r
}

// ScriptedModel is a deterministic streaming model. It records every
// request it receives.
type ScriptedModel struct {
	mu        sync.Mutex
	index     int
	responses []Response
	repeat    bool
	requests  []llm.CompletionRequest
	streams   []*SliceStream
}

// NewScriptedModel returns a model that answers with the responses in order
// and fails once they are exhausted.
func NewScriptedModel(responses ...Response) *ScriptedModel {
	cloned := make([]Response, len(responses))
	copy(cloned, responses)
	return &ScriptedModel{responses: cloned}
}

// Repeat returns a model that answers every call with resp.
func Repeat(resp Response) *ScriptedModel {
	return &ScriptedModel{responses: []Response{resp}, repeat: true}
}

func (m *ScriptedModel) Stream(_ context.Context, req *llm.CompletionRequest) (llm.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := *req
	snapshot.Messages = llm.CloneMessages(req.Messages)
	snapshot.Tools = append([]llm.ToolDef(nil), req.Tools...)
	m.requests = append(m.requests, snapshot)

	if m.index >= len(m.responses) {
		if !m.repeat {
			return nil, fmt.Errorf("script exhausted at step %d", len(m.requests))
		}
		m.index = len(m.responses) - 1
	}
	current := m.responses[m.index]
	m.index++
	if current.Err != nil {
		return nil, current.Err
	}

	stream := NewSliceStream(current.Chunks...)
	stream.err = current.StreamErr
	m.streams = append(m.streams, stream)
	return stream, nil
}

// Calls returns the number of Stream calls made so far.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns copies of every request received.
func (m *ScriptedModel) Requests() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.CompletionRequest(nil), m.requests...)
}

// AllClosed reports whether every stream handed out has been closed.
func (m *ScriptedModel) AllClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.streams {
		if !s.Closed() {
			return false
		}
	}
	return true
}

// SliceStream is an llm.Stream over a fixed list of chunks.
type SliceStream struct {
	mu     sync.Mutex
	chunks []llm.StreamChunk
	pos    int
	err    error
	closed bool
}

var _ llm.Stream = (*SliceStream)(nil)

// NewSliceStream returns a stream that yields chunks in order.
func NewSliceStream(chunks ...llm.StreamChunk) *SliceStream {
	return &SliceStream{chunks: chunks}
}

// Fail makes the stream report err once its chunks are exhausted.
func (s *SliceStream) Fail(err error) *SliceStream {
	s.err = err
	return s
}

func (s *SliceStream) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pos >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() llm.StreamChunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos == 0 {
		return llm.StreamChunk{}
	}
	return s.chunks[s.pos-1]
}

func (s *SliceStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos < len(s.chunks) {
		return nil
	}
	return s.err
}

func (s *SliceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *SliceStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
