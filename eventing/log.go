package eventing

import (
	"context"
	"log/slog"
)

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

var _ Sink = (*LogSink)(nil)

// NewLogSink logs every event at level. A nil logger means slog.Default.
func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger, level: level}
}

func (s *LogSink) Publish(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if !s.logger.Enabled(ctx, s.level) {
		return nil
	}

	attrs := []slog.Attr{
		slog.String("turn_id", event.TurnID),
		slog.Int("seq", event.Seq),
		slog.String("type", string(event.Type)),
		slog.Int("round_trip", event.RoundTrip),
	}
	if event.Tool != "" {
		attrs = append(attrs, slog.String("tool", event.Tool), slog.String("call_id", event.CallID))
	}
	if event.Content != "" {
		attrs = append(attrs, slog.Int("content_bytes", len(event.Content)))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	s.logger.LogAttrs(ctx, s.level, "turn event", attrs...)
	return nil
}
