package agent

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/toolchat/eventing"
	"github.com/zero-day-ai/toolchat/llm"
)

// Sampling defaults sent with every model request.
const (
	DefaultTemperature      = 0.1
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.6
)

// DefaultMaxRoundTrips is the number of tool dispatches allowed per turn.
const DefaultMaxRoundTrips = 5

// Option configures a Loop.
type Option func(*options)

type options struct {
	system           string
	model            string
	temperature      float64
	frequencyPenalty float64
	presencePenalty  float64
	maxRoundTrips    int
	echo             io.Writer
	echoLabel        string
	sink             eventing.Sink
	logger           *slog.Logger
	tracer           trace.Tracer
	meter            metric.Meter
	usage            llm.TokenTracker
	idGen            func() string
}

// WithSystemPrompt seeds the conversation with a system message.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) { o.system = prompt }
}

// WithModel names the model sent with each request and used to key token usage.
func WithModel(name string) Option {
	return func(o *options) { o.model = name }
}

// WithTemperature overrides DefaultTemperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.temperature = t }
}

// WithFrequencyPenalty overrides DefaultFrequencyPenalty.
func WithFrequencyPenalty(p float64) Option {
	return func(o *options) { o.frequencyPenalty = p }
}

// WithPresencePenalty overrides DefaultPresencePenalty.
func WithPresencePenalty(p float64) Option {
	return func(o *options) { o.presencePenalty = p }
}

// WithMaxRoundTrips overrides DefaultMaxRoundTrips. Must be positive.
func WithMaxRoundTrips(n int) Option {
	return func(o *options) { o.maxRoundTrips = n }
}

// WithEcho streams assistant text to w as it arrives, prefixed once per
// response by label.
func WithEcho(w io.Writer, label string) Option {
	return func(o *options) {
		o.echo = w
		o.echoLabel = label
	}
}

// WithSink publishes turn events to sink.
func WithSink(sink eventing.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracer sets the tracer for turn and model spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithMeter sets the meter for turn counters.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) { o.meter = meter }
}

// WithTokenTracker records model token usage in tracker.
func WithTokenTracker(tracker llm.TokenTracker) Option {
	return func(o *options) { o.usage = tracker }
}

// WithIDGenerator replaces the uuid-based generator for turn and call ids.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.idGen = fn }
}
