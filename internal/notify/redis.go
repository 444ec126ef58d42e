package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes events on a Redis Pub/Sub channel that live views subscribe to.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (r *RedisNotifier) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Subscribe returns a subscription to the event channel. Callers must close it.
func (r *RedisNotifier) Subscribe(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, r.channel)
}

// DecodeEvent parses a message received on the event channel.
func DecodeEvent(msg *redis.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event failed: %w", err)
	}
	return e, nil
}

// Close is a no-op; the client is owned by the caller.
func (r *RedisNotifier) Close() error {
	return nil
}
