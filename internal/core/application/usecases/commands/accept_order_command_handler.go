package commands

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/errs"
)

// AcceptOrderCommandHandler binds a courier to a Processing order.
//
// Business rules:
//   - The actor must be a registered courier whose vehicle can carry the order
//   - The first courier to commit wins; a concurrent loser gets a conflict
//     (errs.ErrConcurrencyConflict) from the version check, and a later one gets
//     order.ErrAlreadyAssigned, which is also a conflict
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{uowFactory: uowFactory}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(uow UoW, o *order.Order) error {
		return acceptAs(ctx, uow, o, cmd.Courier())
	})
}

// acceptAs checks the courier registry before letting the aggregate bind the courier.
func acceptAs(ctx context.Context, uow CourierRepoFactory, o *order.Order, actor order.Actor) error {
	if actor.Role() != order.RoleCourier {
		return o.Accept(actor)
	}

	c, err := uow.CourierRepository().Get(ctx, actor.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("courierId", err)
	}
	if err != nil {
		return err
	}

	if err = c.CanCarry(o.DeliveryOption()); err != nil {
		return err
	}

	return o.Accept(actor)
}
