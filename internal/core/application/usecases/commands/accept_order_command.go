package commands

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a courier taking a Processing order.
// The courier is the actor; its id is the courier registry id.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	courier order.Actor

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID kernel.UUID, courier order.Actor) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courier.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c AcceptOrderCommand) Courier() order.Actor { return c.courier }
