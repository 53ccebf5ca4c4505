package commands

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents a courier declining a Processing order.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	courier order.Actor

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID kernel.UUID, courier order.Actor) (RejectOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courier.Validate()); err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderID: orderID,
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c RejectOrderCommand) Courier() order.Actor { return c.courier }
