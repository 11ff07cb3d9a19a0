package events

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPublishAppendsToStream(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	p := NewPublisher(client, 0)

	require.NoError(t, p.Publish(ctx, UserEventsStream, UserCreated, UserCreatedEvent{UserID: 7, FirstName: "Ana"}))
	require.NoError(t, p.Publish(ctx, UserEventsStream, UserDeleted, UserDeletedEvent{UserID: 7}))

	msgs, err := client.XRange(ctx, UserEventsStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	first, err := Decode(msgs[0])
	require.NoError(t, err)
	assert.Equal(t, UserCreated, first.Type)
	data, ok := first.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["userId"])
	assert.Equal(t, "Ana", data["firstName"])
	assert.False(t, first.Timestamp.IsZero())

	second, err := Decode(msgs[1])
	require.NoError(t, err)
	assert.Equal(t, UserDeleted, second.Type)
}

func TestDecodeRejectsForeignMessages(t *testing.T) {
	_, err := Decode(redis.XMessage{ID: "1-0", Values: map[string]any{"other": "x"}})
	assert.Error(t, err)

	_, err = Decode(redis.XMessage{ID: "1-0", Values: map[string]any{"event": "{"}})
	assert.Error(t, err)
}

func TestPublishFailsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	err := NewPublisher(client, 100).Publish(context.Background(), UserEventsStream, UserUpdated, UserUpdatedEvent{UserID: 1})
	assert.Error(t, err)
}
