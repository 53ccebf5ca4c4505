package commands

import (
	"errors"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a target status. It backs the
// generic status endpoint used by seller, courier and admin dashboards.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	actor    order.Actor
	proofRef string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates input. proofRef is only consulted when
// target is order.Delivered.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	proofRef string,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate(), actor.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID:  orderID,
		target:   target,
		actor:    actor,
		proofRef: strings.TrimSpace(proofRef),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Actor() order.Actor   { return c.actor }
func (c ChangeOrderStatusCommand) ProofRef() string     { return c.proofRef }
