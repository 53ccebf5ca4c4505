package commands

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// ResolvePaymentCommandHandler approves or rejects a manual payment exactly once.
// A second decision returns payment.ErrAlreadyResolved.
type ResolvePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewResolvePaymentCommandHandler(uowFactory OrderUoWFactory) ResolvePaymentCommandHandler {
	return ResolvePaymentCommandHandler{uowFactory: uowFactory}
}

func (h ResolvePaymentCommandHandler) Handle(ctx context.Context, cmd ResolvePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		if cmd.Approve() {
			return o.ApprovePayment(cmd.Admin())
		}
		return o.RejectPayment(cmd.Admin())
	})
}
