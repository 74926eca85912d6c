package toolerr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Standard error codes used across tools for consistent error reporting.
const (
	// ErrCodeUnknownTool indicates the model named a tool that is not registered
	ErrCodeUnknownTool = "UNKNOWN_TOOL"

	// ErrCodeExecutionFailed indicates the tool ran and failed
	ErrCodeExecutionFailed = "EXECUTION_FAILED"

	// ErrCodeTimeout indicates an operation timed out
	ErrCodeTimeout = "TIMEOUT"

	// ErrCodeInvalidInput indicates arguments that do not match the tool's schema
	ErrCodeInvalidInput = "INVALID_INPUT"

	// ErrCodePolicyDenied indicates a policy rule rejected the call
	ErrCodePolicyDenied = "POLICY_DENIED"

	// ErrCodePanic indicates the tool panicked
	ErrCodePanic = "PANIC"

	// ErrCodeParseError indicates failure to parse a remote response
	ErrCodeParseError = "PARSE_ERROR"

	// ErrCodeNotFound indicates a file or remote resource does not exist
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodePermissionDenied indicates insufficient permissions
	ErrCodePermissionDenied = "PERMISSION_DENIED"

	// ErrCodeNetworkError indicates a network-related error
	ErrCodeNetworkError = "NETWORK_ERROR"
)

// Error is a structured error type for tool operations.
// It provides context about which tool and operation failed,
// includes a standard error code, and can wrap underlying errors.
type Error struct {
	// Tool is the name of the tool that generated the error
	Tool string

	// Operation is the specific operation that failed
	Operation string

	// Code is a standard error code constant
	Code string

	// Message is a human-readable error message
	Message string

	// Details contains additional context as key-value pairs
	Details map[string]any

	// Cause is the underlying error that caused this error
	Cause error

	// Class categorizes the error by its nature
	Class ErrorClass `json:"class,omitempty"`

	// Hints provides recovery suggestions for this error
	Hints []RecoveryHint `json:"hints,omitempty"`
}

// New creates a new structured tool error.
//
//	err := toolerr.New("getWeather", "fetch", toolerr.ErrCodeNetworkError, "wttr.in unreachable")
func New(tool, operation, code, message string) *Error {
	return &Error{
		Tool:      tool,
		Operation: operation,
		Code:      code,
		Message:   message,
	}
}

// Wrap builds an Error from an arbitrary failure, picking the code from the
// error chain. A wrapped *Error is returned as a shallow copy with the tool
// name filled in; the original belongs to the tool and is never modified.
func Wrap(tool, operation string, err error) *Error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		cp := *te
		if cp.Tool == "" {
			cp.Tool = tool
		}
		return &cp
	}

	code := ErrCodeExecutionFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		code = ErrCodeTimeout
	case errors.Is(err, ErrInvalidInput):
		code = ErrCodeInvalidInput
	}
	return New(tool, operation, code, "").WithCause(err)
}

// WithCause adds an underlying error to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails adds additional context to this error.
// This method returns the same error instance for method chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithClass sets the error classification.
// This method returns the same error instance for method chaining.
func (e *Error) WithClass(class ErrorClass) *Error {
	e.Class = class
	return e
}

// WithHints appends recovery suggestions and returns the same error instance.
func (e *Error) WithHints(hints ...RecoveryHint) *Error {
	e.Hints = append(e.Hints, hints...)
	return e
}

// Error implements the error interface.
// It formats the error as: "tool [operation/code]: message: cause"
//
// Examples:
//   - "getWeather [fetch/NETWORK_ERROR]: wttr.in unreachable"
//   - "readFile [execute/EXECUTION_FAILED]: open notes.txt: no such file or directory"
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s [%s/%s]", e.Tool, e.Operation, e.Code))

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Render formats the error as the tool result string handed back to the
// model: the error line, tagged with its class when known, followed by one
// line per recovery hint.
//
//	Error (transient): getWeather [execute/TIMEOUT]: context deadline exceeded
//	Hint (retry): timeouts may be transient; a single retry often succeeds
func (e *Error) Render() string {
	var b strings.Builder
	b.WriteString("Error")
	if e.Class != "" {
		fmt.Fprintf(&b, " (%s)", e.Class)
	}
	b.WriteString(": ")
	b.WriteString(e.Error())
	for _, h := range e.Hints {
		fmt.Fprintf(&b, "\nHint (%s): %s", h.Strategy, h.Reason)
	}
	return b.String()
}

// Unwrap returns the underlying cause error.
// This enables errors.Is() and errors.As() to work with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is().
// Two Error values are considered equal if they have the same Tool, Operation, and Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Tool == t.Tool && e.Operation == t.Operation && e.Code == t.Code
}

// Sentinel errors for common scenarios
var (
	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
