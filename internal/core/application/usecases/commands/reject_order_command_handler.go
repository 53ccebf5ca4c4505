package commands

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// RejectOrderCommandHandler records a courier declining an offer. The order stays Processing.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		return o.Reject(cmd.Courier())
	})
}
