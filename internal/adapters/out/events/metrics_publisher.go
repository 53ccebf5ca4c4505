package events

import (
	"context"

	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsPublisher counts events by name and resulting status before handing
// them to the next publisher.
type MetricsPublisher struct {
	next    ports.EventPublisher
	counter *prometheus.CounterVec
}

func NewMetricsPublisher(next ports.EventPublisher, registerer prometheus.Registerer) (*MetricsPublisher, error) {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekina_order_events_total",
			Help: "Order domain events published after commit",
		},
		[]string{"event", "status", "payment_status"},
	)
	if err := registerer.Register(counter); err != nil {
		return nil, err
	}
	return &MetricsPublisher{next: next, counter: counter}, nil
}

func (p *MetricsPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		p.counter.WithLabelValues(e.Name, e.To.String(), e.Payment.String()).Inc()
	}
	return p.next.Publish(ctx, events...)
}
