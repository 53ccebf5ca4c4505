package commands

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels a Pending order on behalf of its buyer.
// Any other state yields an order.IllegalTransitionError and nothing is written.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		return o.Cancel(cmd.Actor())
	})
}
