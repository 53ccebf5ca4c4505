package commands

import (
	"context"

	"mekina/internal/core/domain/model/order"
)

// UploadProofOfDeliveryCommandHandler marks an order Delivered with its proof.
type UploadProofOfDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUploadProofOfDeliveryCommandHandler(uowFactory OrderUoWFactory) UploadProofOfDeliveryCommandHandler {
	return UploadProofOfDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h UploadProofOfDeliveryCommandHandler) Handle(ctx context.Context, cmd UploadProofOfDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory.Create(), cmd.OrderID(), func(_ OrderUoW, o *order.Order) error {
		return o.MarkDelivered(cmd.Courier(), cmd.ProofRef())
	})
}
