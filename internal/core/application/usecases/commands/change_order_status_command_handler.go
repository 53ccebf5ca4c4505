package commands

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler routes a target status to the lifecycle
// operation that reaches it. Moving to delivery_accepted goes through the same
// courier checks as AcceptOrderCommandHandler.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(uow UoW, o *order.Order) error {
		if cmd.Target() == order.DeliveryAccepted {
			return acceptAs(ctx, uow, o, cmd.Actor())
		}
		return o.TransitionTo(cmd.Target(), cmd.Actor(), cmd.ProofRef())
	})
}
