package commands

import (
	"errors"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/pkg/guard"
)

var ErrUploadProofOfDeliveryCommandIsNotConstructed = errors.New(
	"UploadProofOfDeliveryCommand must be created via NewUploadProofOfDeliveryCommand constructor",
)

// UploadProofOfDeliveryCommand represents the courier attaching a proof of
// delivery (a stored photo or signature reference) and marking the order Delivered.
//
// An empty proofRef is accepted here and refused by the aggregate, so the caller
// gets order.ErrProofOfDeliveryRequired rather than a generic validation error.
type UploadProofOfDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	courier  order.Actor
	proofRef string

	guard guard.ConstructorGuard
}

func NewUploadProofOfDeliveryCommand(
	orderID kernel.UUID,
	courier order.Actor,
	proofRef string,
) (UploadProofOfDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), courier.Validate()); err != nil {
		return UploadProofOfDeliveryCommand{}, err
	}

	return UploadProofOfDeliveryCommand{
		orderID:  orderID,
		courier:  courier,
		proofRef: strings.TrimSpace(proofRef),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UploadProofOfDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUploadProofOfDeliveryCommandIsNotConstructed)
}

func (c UploadProofOfDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
func (c UploadProofOfDeliveryCommand) Courier() order.Actor { return c.courier }
func (c UploadProofOfDeliveryCommand) ProofRef() string     { return c.proofRef }
