// Package events publishes order domain events to the event channel that
// buyer, seller and courier clients listen on.
package events

import (
	"time"

	"mekina/internal/core/domain/model/order"
)

// Message is the wire form of an order event.
type Message struct {
	Name           string    `json:"name"`
	OrderID        string    `json:"orderId"`
	From           string    `json:"from,omitempty"`
	To             string    `json:"to"`
	Operation      string    `json:"operation,omitempty"`
	ActorRole      string    `json:"actorRole"`
	ActorID        string    `json:"actorId,omitempty"`
	PaymentStatus  string    `json:"paymentStatus"`
	ApprovalStatus string    `json:"approvalStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewMessage(e order.Event) Message {
	m := Message{
		Name:           e.Name,
		OrderID:        e.OrderID.String(),
		To:             e.To.String(),
		ActorRole:      e.Actor.Role().String(),
		PaymentStatus:  e.Payment.String(),
		ApprovalStatus: e.Approval.String(),
		OccurredAt:     e.OccurredAt,
	}
	if e.From != order.Unknown {
		m.From = e.From.String()
	}
	if e.Operation != order.UnknownOperation {
		m.Operation = e.Operation.String()
	}
	if e.Actor.Role() != order.RoleSystem {
		m.ActorID = e.Actor.ID().String()
	}
	return m
}
