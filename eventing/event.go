package eventing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Type identifies what happened during a turn.
type Type string

const (
	TypeTurnStarted      Type = "turn_started"
	TypeAssistantMessage Type = "assistant_message"
	TypeToolRequest      Type = "tool_request"
	TypeToolResult       Type = "tool_result"
	TypeTurnCompleted    Type = "turn_completed"
	TypeTurnFailed       Type = "turn_failed"
)

// IsValid reports whether t is a known event type.
func (t Type) IsValid() bool {
	switch t {
	case TypeTurnStarted, TypeAssistantMessage, TypeToolRequest,
		TypeToolResult, TypeTurnCompleted, TypeTurnFailed:
		return true
	default:
		return false
	}
}

// Event is a single observation of the orchestration loop.
type Event struct {
	// TurnID groups the events of one turn.
	TurnID string `json:"turn_id"`

	// Seq orders events within a turn, starting at 1.
	Seq int `json:"seq"`

	// RoundTrip is the number of tool dispatches completed so far in the turn.
	RoundTrip int `json:"round_trip"`

	Type Type      `json:"type"`
	Time time.Time `json:"time"`

	// Content is the user input, assistant text or tool output.
	Content string `json:"content,omitempty"`

	Tool      string `json:"tool,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`

	// Error describes why a turn failed.
	Error string `json:"error,omitempty"`
}

// ErrInvalidEvent is returned by sinks for events that fail Validate.
var ErrInvalidEvent = errors.New("invalid event")

// Validate checks the fields every sink relies on.
func (e Event) Validate() error {
	if e.TurnID == "" {
		return fmt.Errorf("%w: turn id is required", ErrInvalidEvent)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.Seq < 1 {
		return fmt.Errorf("%w: seq must be positive", ErrInvalidEvent)
	}
	return nil
}

// Sink receives turn events. Publish must not block for long: it runs
// inline with the loop.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every sink and joins their errors.
func Multi(sinks ...Sink) Sink {
	flat := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			flat = append(flat, s)
		}
	}
	return flat
}

type multi []Sink

func (m multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
