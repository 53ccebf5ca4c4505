package order

import (
	"time"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/payment"
)

// Event names published on the event channel.
const (
	EventPlaced          = "order.placed"
	EventStatusChanged   = "order.status_changed"
	EventCourierDeclined = "order.courier_declined"
	EventPaymentUpdated  = "order.payment_updated"
)

// Event is a fact recorded by the Order aggregate. Events are collected during a
// unit of work and published only after it commits.
type Event struct {
	Name       string
	OrderID    kernel.UUID
	From       Status
	To         Status
	Operation  Operation
	Actor      Actor
	Payment    payment.Status
	Approval   payment.ApprovalStatus
	OccurredAt time.Time
}
