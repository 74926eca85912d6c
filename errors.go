package toolchat

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for the fatal conditions of a turn.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrProtocolViolation indicates the model produced a tool call whose
	// argument text is not valid JSON.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrRunawayLoop indicates the model kept requesting tools past the
	// round-trip ceiling of a single turn.
	ErrRunawayLoop = errors.New("too many function call loops, possible runaway")

	// ErrTransport indicates the model service could not be reached or
	// failed while streaming.
	ErrTransport = errors.New("model transport failed")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindProtocol represents malformed output from the model.
	KindProtocol = "protocol"

	// KindRunaway represents a turn that exceeded its round-trip ceiling.
	KindRunaway = "runaway"

	// KindTransport represents failures talking to the model service.
	KindTransport = "transport"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"
)

// Error is a structured error type that wraps underlying errors with
// the operation that failed and the category of error.
//
// Error supports unwrapping, so errors.Is() and errors.As() work with
// both the wrapped sentinel and a kind-only template:
//
//	var turnErr *toolchat.Error
//	if errors.As(err, &turnErr) && turnErr.Kind == toolchat.KindRunaway {
//		// ...
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Loop.Turn", "Dispatcher.Parse").
	Op string

	// Kind categorizes the error (e.g., KindProtocol, KindTransport).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as the tool name and raw payload of a malformed call.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("toolchat: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("toolchat: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("toolchat: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op when the target sets one),
// then delegates to the wrapped error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewProtocolError creates a new Error with KindProtocol.
func NewProtocolError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindProtocol, Err: err}
}

// NewRunawayError creates a new Error with KindRunaway.
func NewRunawayError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindRunaway, Err: err}
}

// NewTransportError creates a new Error with KindTransport.
func NewTransportError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTransport, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// IsFatal reports whether err ends the current turn. Every error that leaves
// the loop is fatal; this helper exists for callers that receive errors from
// lower layers and need to tell the categories apart.
func IsFatal(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return err != nil
	}
	switch e.Kind {
	case KindProtocol, KindRunaway, KindTransport:
		return true
	default:
		return false
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. If logger is nil, slog.Default() is used.
//
//	defer toolchat.CloseWithLog(stream, logger, "model stream")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
