package toolchat

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ErrProtocolViolation", err: ErrProtocolViolation, want: "protocol violation"},
		{name: "ErrRunawayLoop", err: ErrRunawayLoop, want: "too many function call loops, possible runaway"},
		{name: "ErrTransport", err: ErrTransport, want: "model transport failed"},
		{name: "ErrInvalidConfig", err: ErrInvalidConfig, want: "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err:  NewRunawayError("Loop.Turn", ErrRunawayLoop),
			want: "toolchat: Loop.Turn (runaway): too many function call loops, possible runaway",
		},
		{
			name: "nil underlying error",
			err:  &Error{Op: "Loop.Turn", Kind: KindTransport},
			want: "toolchat: Loop.Turn: transport",
		},
		{
			name: "with context",
			err: NewProtocolError("Dispatcher.Parse", ErrProtocolViolation).
				WithContext(map[string]any{"tool": "getWeather"}),
			want: "toolchat: Dispatcher.Parse (protocol): protocol violation [context: map[tool:getWeather]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("turn failed: %w", NewTransportError("Loop.Turn", ErrTransport))

	if !errors.Is(err, ErrTransport) {
		t.Error("expected wrapped sentinel to match")
	}
	if !errors.Is(err, &Error{Kind: KindTransport}) {
		t.Error("expected kind-only template to match")
	}
	if errors.Is(err, &Error{Kind: KindTransport, Op: "Other.Op"}) {
		t.Error("expected op mismatch to fail")
	}
	if errors.Is(err, ErrRunawayLoop) {
		t.Error("expected unrelated sentinel not to match")
	}
}

func TestWithContextDoesNotMutate(t *testing.T) {
	base := NewProtocolError("Dispatcher.Parse", ErrProtocolViolation)
	derived := base.WithContext(map[string]any{"payload": "{"})

	if base.Context != nil {
		t.Errorf("base context mutated: %v", base.Context)
	}
	if derived.Context["payload"] != "{" {
		t.Errorf("derived context = %v", derived.Context)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(NewProtocolError("op", ErrProtocolViolation)) {
		t.Error("protocol errors are fatal")
	}
	if IsFatal(NewValidationError("op", errors.New("bad"))) {
		t.Error("validation errors are not fatal")
	}
	if !IsFatal(errors.New("plain")) {
		t.Error("unknown errors are fatal")
	}
	if IsFatal(nil) {
		t.Error("nil is not fatal")
	}
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("boom") }

func TestCloseWithLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	CloseWithLog(failingCloser{}, logger, "stream")
	CloseWithLog(nil, logger, "nothing")

	out := buf.String()
	if !strings.Contains(out, "failed to close resource") || !strings.Contains(out, "resource=stream") {
		t.Errorf("unexpected log output: %q", out)
	}
}
