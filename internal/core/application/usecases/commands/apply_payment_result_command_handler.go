package commands

import (
	"context"
	"errors"
	"time"

	"mekina/internal/core/ports"
)

// CallbackDedupTTL is how long a gateway event id is remembered.
const CallbackDedupTTL = 24 * time.Hour

// ApplyPaymentResultCommandHandler applies a pushed gateway result.
//
// A repeated event id is acknowledged without touching the order. A "pending"
// result is recorded as seen and changes nothing. An event that fails to apply
// is forgotten again so the gateway's retry is processed.
type ApplyPaymentResultCommandHandler struct {
	uowFactory OrderUoWFactory
	seen       ports.IdempotencyStore
}

func NewApplyPaymentResultCommandHandler(
	uowFactory OrderUoWFactory,
	seen ports.IdempotencyStore,
) ApplyPaymentResultCommandHandler {
	return ApplyPaymentResultCommandHandler{
		uowFactory: uowFactory,
		seen:       seen,
	}
}

func (h ApplyPaymentResultCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentResultCommand) (err error) {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := "payment-callback:" + cmd.EventID()
	first, err := h.seen.Remember(ctx, key, CallbackDedupTTL)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, h.seen.Forget(context.WithoutCancel(ctx), key))
		}
	}()

	o, err := h.uowFactory.Create().OrderRepository().GetByTransactionRef(ctx, cmd.TransactionRef())
	if err != nil {
		return err
	}

	if !cmd.Result().IsFinal() {
		return nil
	}

	return applyGatewayResult(ctx, h.uowFactory.Create(), o, cmd.Result())
}
