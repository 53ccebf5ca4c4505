package events

import (
	"context"
	"log/slog"

	"mekina/internal/core/domain/model/order"
)

// LogPublisher writes events to the service log. It is the default channel when
// no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "order-events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		m := NewMessage(e)
		p.logger.InfoContext(ctx, m.Name,
			"order_id", m.OrderID,
			"from", m.From,
			"to", m.To,
			"operation", m.Operation,
			"actor", e.Actor.String(),
			"payment", m.PaymentStatus,
			"approval", m.ApprovalStatus,
		)
	}
	return nil
}
