package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/config"
	"github.com/zero-day-ai/toolchat/eventing"
)

// follow prints every event published on the Redis channel until ctx ends.
func follow(ctx context.Context, cfg config.EventsConfig, logger *slog.Logger, w io.Writer) error {
	if cfg.RedisURL == "" {
		return toolchat.NewConfigurationError("follow",
			fmt.Errorf("%w: -follow needs events.redis_url", toolchat.ErrInvalidConfig))
	}

	sink, err := eventing.NewRedisSink(eventing.RedisOptions{
		URL:     cfg.RedisURL,
		Channel: cfg.Channel,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("follow events: %w", err)
	}
	defer toolchat.CloseWithLog(sink, logger, "redis sink")

	events, err := sink.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("follow events: %w", err)
	}
	logger.Info("following events", "channel", sink.Channel())

	for event := range events {
		if _, err := fmt.Fprintln(w, formatEvent(event)); err != nil {
			return err
		}
	}
	return nil
}

// formatEvent renders one event per line, e.g.
//
//	15:04:05 3f2a/4 tool_request getWeather {"location":"London"}
func formatEvent(e eventing.Event) string {
	turn := e.TurnID
	if len(turn) > 8 {
		turn = turn[:8]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s/%d %s", e.Time.Format("15:04:05"), turn, e.Seq, e.Type)
	if e.Tool != "" {
		b.WriteString(" " + e.Tool)
	}
	switch {
	case e.Error != "":
		b.WriteString(" error: " + e.Error)
	case e.Arguments != "":
		b.WriteString(" " + e.Arguments)
	case e.Content != "":
		b.WriteString(" " + strings.ReplaceAll(e.Content, "\n", " "))
	}
	return b.String()
}
