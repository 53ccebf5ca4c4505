package commands

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/guard"
)

var ErrResolvePaymentCommandIsNotConstructed = errors.New(
	"ResolvePaymentCommand must be created via NewResolvePaymentCommand constructor",
)

// ResolvePaymentCommand is an admin's decision on a manual (cbe, bank_transfer) payment.
type ResolvePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	admin   order.Actor
	approve bool

	guard guard.ConstructorGuard
}

func NewResolvePaymentCommand(orderID kernel.UUID, admin order.Actor, approve bool) (ResolvePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), admin.Validate()); err != nil {
		return ResolvePaymentCommand{}, err
	}

	return ResolvePaymentCommand{
		orderID: orderID,
		admin:   admin,
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResolvePaymentCommand) Validate() error {
	return c.guard.Validate(ErrResolvePaymentCommandIsNotConstructed)
}

func (c ResolvePaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResolvePaymentCommand) Admin() order.Actor   { return c.admin }
func (c ResolvePaymentCommand) Approve() bool        { return c.approve }
