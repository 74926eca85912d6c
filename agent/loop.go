package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/eventing"
	"github.com/zero-day-ai/toolchat/llm"
	"github.com/zero-day-ai/toolchat/tool"
)

const instrumentationName = "github.com/zero-day-ai/toolchat/agent"

// Model is a streaming chat completion service.
type Model interface {
	Stream(ctx context.Context, req *llm.CompletionRequest) (llm.Stream, error)
}

var (
	// ErrMissingModel is returned by New when no model is given.
	ErrMissingModel = errors.New("model is required")

	// ErrMissingDispatcher is returned by New when no dispatcher is given.
	ErrMissingDispatcher = errors.New("dispatcher is required")
)

// Loop runs conversation turns against a model, dispatching the tool calls
// it requests until it produces a final answer. A Loop owns its conversation
// and handles one turn at a time; it is not safe for concurrent use.
type Loop struct {
	model      Model
	dispatcher *tool.Dispatcher
	conv       *Conversation
	opts       options
	state      State

	turns      metric.Int64Counter
	roundTrips metric.Int64Counter
	failures   metric.Int64Counter
}

// New creates a loop over model and dispatcher.
func New(model Model, dispatcher *tool.Dispatcher, opts ...Option) (*Loop, error) {
	if model == nil {
		return nil, fmt.Errorf("new loop: %w", ErrMissingModel)
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("new loop: %w", ErrMissingDispatcher)
	}

	o := options{
		temperature:      DefaultTemperature,
		frequencyPenalty: DefaultFrequencyPenalty,
		presencePenalty:  DefaultPresencePenalty,
		maxRoundTrips:    DefaultMaxRoundTrips,
		echoLabel:        llm.DefaultEchoLabel,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxRoundTrips < 1 {
		return nil, toolchat.NewConfigurationError("agent.New",
			fmt.Errorf("%w: max round trips must be positive, got %d", toolchat.ErrInvalidConfig, o.maxRoundTrips))
	}
	if o.sink == nil {
		o.sink = eventing.Discard
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(instrumentationName)
	}
	if o.meter == nil {
		o.meter = otel.Meter(instrumentationName)
	}
	if o.usage == nil {
		o.usage = llm.NewTokenTracker()
	}
	if o.idGen == nil {
		o.idGen = uuid.NewString
	}

	l := &Loop{
		model:      model,
		dispatcher: dispatcher,
		conv:       NewConversation(o.system),
		opts:       o,
	}

	var err error
	if l.turns, err = o.meter.Int64Counter("toolchat.turns",
		metric.WithDescription("Conversation turns started")); err != nil {
		return nil, fmt.Errorf("new loop: %w", err)
	}
	if l.roundTrips, err = o.meter.Int64Counter("toolchat.round_trips",
		metric.WithDescription("Tool calls dispatched")); err != nil {
		return nil, fmt.Errorf("new loop: %w", err)
	}
	if l.failures, err = o.meter.Int64Counter("toolchat.turn_failures",
		metric.WithDescription("Turns that ended with an error")); err != nil {
		return nil, fmt.Errorf("new loop: %w", err)
	}

	return l, nil
}

// Conversation returns the loop's history.
func (l *Loop) Conversation() *Conversation {
	return l.conv
}

// State returns where the loop is within the current turn.
func (l *Loop) State() State {
	return l.state
}

// Usage returns the cumulative token usage of every model call.
func (l *Loop) Usage() llm.TokenUsage {
	return l.opts.usage.Total()
}

// turn carries per-turn bookkeeping.
type turn struct {
	id         string
	seq        int
	roundTrips int
	start      time.Time
}

// Turn appends input as a user message and drives the model until it
// answers with text, which is returned. Tool failures are fed back to the
// model; only protocol violations, runaway tool loops and transport failures
// end the turn with an error. The conversation keeps everything appended
// before the failure.
func (l *Loop) Turn(ctx context.Context, input string) (string, error) {
	t := &turn{id: l.opts.idGen(), start: time.Now()}

	ctx, span := l.opts.tracer.Start(ctx, "agent.turn", trace.WithAttributes(
		attribute.String("turn.id", t.id),
	))
	defer span.End()

	l.turns.Add(ctx, 1)
	logger := l.opts.logger.With("turn_id", t.id)

	if err := l.conv.Append(llm.UserMessage(input)); err != nil {
		return l.fail(ctx, span, logger, t, err)
	}
	l.publish(ctx, logger, t, eventing.Event{Type: eventing.TypeTurnStarted, Content: input})
	logger.Debug("turn started", "history", l.conv.Len())

	for {
		l.state = StateAwaitingModel
		resp, err := l.complete(ctx, logger, t)
		if err != nil {
			return l.fail(ctx, span, logger, t, toolchat.NewTransportError("Loop.Turn",
				fmt.Errorf("%w: %w", toolchat.ErrTransport, err)))
		}

		if !resp.HasToolCall() {
			return l.finish(ctx, span, logger, t, resp.Content)
		}

		call := *resp.ToolCall
		if t.roundTrips >= l.opts.maxRoundTrips {
			return l.fail(ctx, span, logger, t, toolchat.NewRunawayError("Loop.Turn", toolchat.ErrRunawayLoop).
				WithContext(map[string]any{"tool": call.Name, "round_trips": t.roundTrips}))
		}
		if call.ID == "" {
			call.ID = "call_" + l.opts.idGen()
		}

		args, err := l.dispatcher.Parse(call)
		if err != nil {
			return l.fail(ctx, span, logger, t, err)
		}

		if err := l.conv.Append(llm.ToolRequestMessage(call)); err != nil {
			return l.fail(ctx, span, logger, t, err)
		}
		l.publish(ctx, logger, t, eventing.Event{
			Type:      eventing.TypeToolRequest,
			Tool:      call.Name,
			CallID:    call.ID,
			Arguments: call.Arguments,
		})

		l.state = StateDispatchingTool
		result := l.dispatcher.Execute(ctx, call, args)

		if err := l.conv.Append(llm.ToolResultMessage(call.ID, call.Name, result)); err != nil {
			return l.fail(ctx, span, logger, t, err)
		}
		t.roundTrips++
		l.roundTrips.Add(ctx, 1, metric.WithAttributes(attribute.String("tool.name", call.Name)))
		l.publish(ctx, logger, t, eventing.Event{
			Type:    eventing.TypeToolResult,
			Tool:    call.Name,
			CallID:  call.ID,
			Content: result,
		})
	}
}

// complete sends the conversation to the model and accumulates the streamed reply.
func (l *Loop) complete(ctx context.Context, logger *slog.Logger, t *turn) (llm.CompletionResponse, error) {
	ctx, span := l.opts.tracer.Start(ctx, "llm.stream", trace.WithAttributes(
		attribute.String("llm.model", l.opts.model),
		attribute.Int("turn.round_trip", t.roundTrips),
	))
	defer span.End()

	req := llm.NewCompletionRequest(l.conv.Messages(),
		llm.WithModel(l.opts.model),
		llm.WithTemperature(l.opts.temperature),
		llm.WithFrequencyPenalty(l.opts.frequencyPenalty),
		llm.WithPresencePenalty(l.opts.presencePenalty),
		llm.WithTools(l.dispatcher.Registry().AllSpecs()...),
		llm.WithToolChoice(llm.ToolChoiceAuto),
	)

	stream, err := l.model.Stream(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stream open failed")
		return llm.CompletionResponse{}, err
	}
	defer toolchat.CloseWithLog(stream, logger, "model stream")

	l.state = StateStreaming
	var accOpts []llm.AccumulatorOption
	if l.opts.echo != nil {
		accOpts = append(accOpts, llm.WithEcho(l.opts.echo, l.opts.echoLabel))
	}
	acc := llm.NewStreamAccumulator(accOpts...)

	resp, err := llm.Accumulate(stream, acc)
	if acc.Echoed() && (err != nil || resp.HasToolCall()) {
		// text was echoed but this response is not the final answer
		l.echoLine(logger)
	}
	if echoErr := acc.EchoErr(); echoErr != nil {
		logger.Warn("echo writer failed", "error", echoErr)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stream failed")
		return llm.CompletionResponse{}, err
	}

	if resp.Usage != (llm.TokenUsage{}) {
		l.opts.usage.Add(l.opts.model, resp.Usage)
	}
	span.SetAttributes(
		attribute.String("llm.finish_reason", resp.FinishReason),
		attribute.Bool("llm.tool_call", resp.HasToolCall()),
		attribute.Int("llm.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.usage.output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}

func (l *Loop) finish(ctx context.Context, span trace.Span, logger *slog.Logger, t *turn, text string) (string, error) {
	if err := l.conv.Append(llm.AssistantMessage(text)); err != nil {
		return l.fail(ctx, span, logger, t, err)
	}
	l.echoLine(logger)
	l.publish(ctx, logger, t, eventing.Event{Type: eventing.TypeAssistantMessage, Content: text})

	l.state = StateDone
	span.SetAttributes(attribute.Int("turn.round_trips", t.roundTrips))
	l.publish(ctx, logger, t, eventing.Event{Type: eventing.TypeTurnCompleted})
	logger.Info("turn completed",
		"round_trips", t.roundTrips,
		"duration", time.Since(t.start),
		"history", l.conv.Len())
	return text, nil
}

func (l *Loop) fail(ctx context.Context, span trace.Span, logger *slog.Logger, t *turn, err error) (string, error) {
	l.state = StateFailed

	kind := "unknown"
	var tcErr *toolchat.Error
	if errors.As(err, &tcErr) {
		kind = tcErr.Kind
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	l.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("error.kind", kind)))
	l.publish(ctx, logger, t, eventing.Event{Type: eventing.TypeTurnFailed, Error: err.Error()})
	logger.Error("turn failed", "kind", kind, "round_trips", t.roundTrips, "error", err)
	return "", err
}

// publish stamps the event with turn bookkeeping and sends it to the sink.
// Sink failures are logged only.
func (l *Loop) publish(ctx context.Context, logger *slog.Logger, t *turn, event eventing.Event) {
	t.seq++
	event.TurnID = t.id
	event.Seq = t.seq
	event.RoundTrip = t.roundTrips
	event.Time = time.Now().UTC()

	if err := l.opts.sink.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed", "type", event.Type, "seq", event.Seq, "error", err)
	}
}

func (l *Loop) echoLine(logger *slog.Logger) {
	if l.opts.echo == nil {
		return
	}
	if _, err := io.WriteString(l.opts.echo, "\n"); err != nil {
		logger.Warn("echo writer failed", "error", err)
	}
}
