package ports

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/payment"
)

// ErrUnknownTransaction is returned by a PaymentGateway that has no record of the reference.
var ErrUnknownTransaction = errors.New("payment gateway does not know the transaction")

// PaymentGateway asks the external payment provider about a transaction.
type PaymentGateway interface {
	CheckStatus(ctx context.Context, txRef string) (payment.GatewayResult, error)
}
