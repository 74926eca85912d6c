package main

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/config"
	"github.com/zero-day-ai/toolchat/eventing"
)

// lockedBuffer is written by the follow goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFollow(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	logger := slog.New(slog.DiscardHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out lockedBuffer
	done := make(chan error, 1)
	go func() {
		done <- follow(ctx, config.EventsConfig{RedisURL: url}, logger, &out)
	}()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(eventing.DefaultChannel)[eventing.DefaultChannel] == 1
	}, 5*time.Second, 10*time.Millisecond)

	pub, err := eventing.NewRedisSink(eventing.RedisOptions{URL: url})
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Publish(ctx, eventing.Event{
		TurnID:    "0123456789abcdef",
		Seq:       2,
		Type:      eventing.TypeToolRequest,
		Time:      time.Date(2026, 3, 4, 3, 4, 5, 0, time.UTC),
		Tool:      "getWeather",
		CallID:    "call_1",
		Arguments: `{"location":"London"}`,
	}))

	want := "03:04:05 01234567/2 tool_request getWeather {\"location\":\"London\"}\n"
	require.Eventually(t, func() bool { return out.String() == want }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}

func TestFollow_RequiresRedis(t *testing.T) {
	err := follow(context.Background(), config.EventsConfig{}, slog.New(slog.DiscardHandler), &bytes.Buffer{})
	assert.ErrorIs(t, err, toolchat.ErrInvalidConfig)
}

func TestFormatEvent(t *testing.T) {
	at := time.Date(2026, 3, 4, 15, 0, 1, 0, time.UTC)
	tests := []struct {
		name  string
		event eventing.Event
		want  string
	}{
		{
			name:  "user input",
			event: eventing.Event{TurnID: "t1", Seq: 1, Type: eventing.TypeTurnStarted, Time: at, Content: "hi\nthere"},
			want:  "15:00:01 t1/1 turn_started hi there",
		},
		{
			name:  "tool result",
			event: eventing.Event{TurnID: "t1", Seq: 3, Type: eventing.TypeToolResult, Time: at, Tool: "getWeather", Content: "sunny"},
			want:  "15:00:01 t1/3 tool_result getWeather sunny",
		},
		{
			name:  "failure",
			event: eventing.Event{TurnID: "t1", Seq: 2, Type: eventing.TypeTurnFailed, Time: at, Error: "runaway"},
			want:  "15:00:01 t1/2 turn_failed error: runaway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatEvent(tt.event))
		})
	}
}
