package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mekina/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel carries every order event. Per-order channels are
// DefaultChannel + ":" + orderID, so a client can follow a single order.
const DefaultChannel = "mekina:orders"

// RedisPublisher fans events out over redis pub/sub.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, e := range events {
		m := NewMessage(e)
		payload, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode %s: %w", m.Name, err)
		}
		pipe.Publish(ctx, p.channel, payload)
		pipe.Publish(ctx, p.OrderChannel(m.OrderID), payload)
	}

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		var problems []error
		for _, cmd := range cmds {
			problems = append(problems, cmd.Err())
		}
		return errors.Join(append(problems, err)...)
	}
	return nil
}

// OrderChannel is the channel of a single order's events.
func (p *RedisPublisher) OrderChannel(orderID string) string {
	return p.channel + ":" + orderID
}
