package eventing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSink(t *testing.T) (*RedisSink, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	sink, err := NewRedisSink(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sink.Close()
	})
	return sink, mr
}

func TestNewRedisSink(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sink, _ := setupTestSink(t)
		assert.Equal(t, DefaultChannel, sink.Channel())
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisSink(RedisOptions{URL: "invalid://url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := NewRedisSink(RedisOptions{
			URL:            "redis://127.0.0.1:1",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}

func TestRedisSink_PublishSubscribe(t *testing.T) {
	sink, mr := setupTestSink(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := sink.Subscribe(ctx)
	require.NoError(t, err)

	mr.Publish(DefaultChannel, "not json")

	sent := Event{
		TurnID:    "t1",
		Seq:       3,
		RoundTrip: 1,
		Type:      TypeToolResult,
		Time:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Tool:      "getWeather",
		CallID:    "call_1",
		Content:   "London: +18C",
	}
	require.NoError(t, sink.Publish(ctx, sent))

	select {
	case got := <-events:
		assert.Equal(t, sent, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	cancel()
	for range events {
	}
}

func TestRedisSink_PublishInvalid(t *testing.T) {
	sink, _ := setupTestSink(t)
	err := sink.Publish(context.Background(), Event{Type: TypeTurnStarted})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestRedisSink_PublishAfterServerGone(t *testing.T) {
	sink, mr := setupTestSink(t)
	mr.Close()

	err := sink.Publish(context.Background(), Event{TurnID: "t1", Seq: 1, Type: TypeTurnStarted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish")
}
