package ports

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// EventPublisher delivers committed order events to listeners (dashboards,
// notification fan-out). Delivery is at most once.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
