package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/llm"
	"github.com/zero-day-ai/toolchat/toolerr"
)

// Outcome labels recorded on dispatch spans and logs.
const (
	OutcomeOK           = "ok"
	OutcomeUnknownTool  = "unknown_tool"
	OutcomeInvalidInput = "invalid_input"
	OutcomePolicyDenied = "policy_denied"
	OutcomeFailed       = "failed"
	OutcomeTimeout      = "timeout"
	OutcomePanic        = "panic"
)

const tracerName = "github.com/zero-day-ai/toolchat/tool"

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

// WithPolicy gates every call with p.
func WithPolicy(p *Policy) DispatcherOption {
	return func(d *Dispatcher) {
		d.policy = p
	}
}

// WithDefaultTimeout bounds executions of tools that set no timeout of their own.
func WithDefaultTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithRecoveryHints sets the registry used to attach hints to failures.
// Defaults to the toolerr package registry.
func WithRecoveryHints(r *toolerr.RecoveryRegistry) DispatcherOption {
	return func(d *Dispatcher) {
		d.enrich = r.EnrichError
	}
}

// Dispatcher turns a model's tool call into a string result. It is the
// firewall between tools and the conversation: only malformed argument text
// is reported as an error, every other failure becomes the result string.
type Dispatcher struct {
	registry *Registry
	policy   *Policy
	timeout  time.Duration
	enrich   func(*toolerr.Error) *toolerr.Error
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		enrich:   toolerr.EnrichError,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher resolves names against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Parse decodes the call's argument text. Blank text is treated as an empty
// object. Anything that is not a JSON object is a fatal protocol violation.
func (d *Dispatcher) Parse(call llm.ToolCall) (map[string]any, error) {
	args, err := call.ParseArguments()
	if err != nil {
		return nil, toolchat.NewProtocolError("Dispatcher.Parse",
			fmt.Errorf("%w: malformed arguments for %q: %q: %v",
				toolchat.ErrProtocolViolation, call.Name, call.Arguments, err)).
			WithContext(map[string]any{"tool": call.Name, "payload": call.Arguments})
	}
	return args, nil
}

// Dispatch parses and executes a single call.
func (d *Dispatcher) Dispatch(ctx context.Context, call llm.ToolCall) (string, error) {
	args, err := d.Parse(call)
	if err != nil {
		return "", err
	}
	return d.Execute(ctx, call, args), nil
}

// Execute runs the call and returns its result. It never fails and never
// panics: unknown tools, invalid arguments, policy denials, executor errors,
// timeouts and panics are all rendered as strings for the model.
func (d *Dispatcher) Execute(ctx context.Context, call llm.ToolCall, args map[string]any) string {
	ctx, span := d.tracer.Start(ctx, "tool.dispatch", trace.WithAttributes(
		attribute.String("tool.name", call.Name),
		attribute.String("tool.call_id", call.ID),
	))
	defer span.End()

	start := time.Now()
	result, outcome, failure := d.execute(ctx, call, args)

	span.SetAttributes(attribute.String("tool.outcome", outcome))
	attrs := []any{
		"tool", call.Name,
		"call_id", call.ID,
		"outcome", outcome,
		"duration", time.Since(start),
	}
	if failure != nil {
		span.RecordError(failure)
		span.SetStatus(codes.Error, outcome)
		d.logger.Warn("tool call failed", append(attrs, "error", failure)...)
	} else {
		d.logger.Info("tool call completed", append(attrs, "result_bytes", len(result))...)
	}
	return result
}

func (d *Dispatcher) execute(ctx context.Context, call llm.ToolCall, args map[string]any) (string, string, error) {
	if args == nil {
		args = map[string]any{}
	}

	entry, ok := d.registry.Resolve(call.Name)
	if !ok {
		return fmt.Sprintf("Unknown function: %s", call.Name), OutcomeUnknownTool,
			toolerr.New(call.Name, "dispatch", toolerr.ErrCodeUnknownTool, "not registered")
	}

	if err := entry.ValidateArgs(args); err != nil {
		te := toolerr.New(call.Name, "validate", toolerr.ErrCodeInvalidInput, err.Error()).
			WithCause(toolerr.ErrInvalidInput)
		return d.render(te), OutcomeInvalidInput, te
	}

	if allowed, err := d.policy.Allow(call.Name, args); !allowed {
		te := toolerr.New(call.Name, "authorize", toolerr.ErrCodePolicyDenied, err.Error())
		return d.render(te), OutcomePolicyDenied, te
	}

	timeout := entry.Timeout
	if timeout <= 0 {
		timeout = d.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := d.run(ctx, entry, args)
	if err == nil {
		return out, OutcomeOK, nil
	}

	te := toolerr.Wrap(call.Name, "execute", err)
	outcome := OutcomeFailed
	switch {
	case te.Code == toolerr.ErrCodePanic:
		outcome = OutcomePanic
	case te.Code == toolerr.ErrCodeTimeout, errors.Is(ctx.Err(), context.DeadlineExceeded):
		te.Code = toolerr.ErrCodeTimeout
		outcome = OutcomeTimeout
	}
	return d.render(te), outcome, te
}

func (d *Dispatcher) run(ctx context.Context, entry *Entry, args map[string]any) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("tool panicked", "tool", entry.Name(), "panic", p, "stack", string(debug.Stack()))
			err = toolerr.New(entry.Name(), "execute", toolerr.ErrCodePanic, fmt.Sprint(p))
		}
	}()
	return entry.Executor.Execute(ctx, args)
}

// render enriches a copy so errors returned by tools are never mutated.
func (d *Dispatcher) render(te *toolerr.Error) string {
	cp := *te
	cp.Hints = append([]toolerr.RecoveryHint(nil), te.Hints...)
	return d.enrich(&cp).Render()
}
