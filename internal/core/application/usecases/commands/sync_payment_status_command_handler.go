package commands

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

var errStillPending = errors.New("gateway reports pending")

// SyncPaymentStatusCommandHandler polls the payment gateway for an order's
// transaction until it settles or the PollPolicy is exhausted.
//
// Business rules:
//   - Only gateway payments (chapa, telebirr) can be synced; others get payment.ErrNotGateway
//   - A payment that is no longer pending is left alone and the call succeeds
//   - "pending" answers and transport errors use up an attempt; an unknown
//     transaction stops the poll at once
//   - After the last attempt a PaymentTimeoutError is returned
//   - Context cancellation stops the poll and returns the context error
//
// The poll runs outside any transaction; the result is applied in a short unit of
// work afterwards, so a slow gateway never holds a database transaction open.
type SyncPaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	policy     PollPolicy
}

func NewSyncPaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	policy PollPolicy,
) SyncPaymentStatusCommandHandler {
	if policy.Attempts < 1 {
		policy.Attempts = DefaultPollAttempts
	}
	if policy.Interval < 0 {
		policy.Interval = DefaultPollInterval
	}

	return SyncPaymentStatusCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		policy:     policy,
	}
}

func (h SyncPaymentStatusCommandHandler) Handle(ctx context.Context, cmd SyncPaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	record := o.Payment()
	if !record.Method().IsGateway() {
		return payment.ErrNotGateway
	}
	if !record.AwaitsGateway() {
		return nil
	}

	result, err := h.poll(ctx, record.TransactionRef())
	if err != nil {
		return err
	}

	return applyGatewayResult(ctx, h.uowFactory.Create(), o, result)
}

func (h SyncPaymentStatusCommandHandler) poll(ctx context.Context, txRef string) (payment.GatewayResult, error) {
	var result payment.GatewayResult

	operation := func() error {
		r, err := h.gateway.CheckStatus(ctx, txRef)
		if errors.Is(err, ports.ErrUnknownTransaction) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		if !r.IsFinal() {
			return errStillPending
		}
		result = r
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(h.policy.Interval), uint64(h.policy.Attempts-1)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		if errors.Is(err, ports.ErrUnknownTransaction) {
			return result, err
		}
		return result, &PaymentTimeoutError{TransactionRef: txRef, Attempts: h.policy.Attempts}
	}

	return result, nil
}

// applyGatewayResult writes a final gateway answer to the order. A payment that was
// settled in the meantime with the same outcome (callback and poll racing) is not an error.
func applyGatewayResult(ctx context.Context, uow OrderUoW, loaded *order.Order, result payment.GatewayResult) error {
	return mutateOrder(ctx, uow, loaded.ID(), func(_ OrderUoW, o *order.Order) error {
		err := o.ApplyGatewayResult(result)
		if errors.Is(err, payment.ErrAlreadyResolved) && settledAs(o.Payment().Status(), result) {
			return errNothingToWrite
		}
		return err
	})
}

func settledAs(status payment.Status, result payment.GatewayResult) bool {
	return (status == payment.Paid && result == payment.GatewaySuccess) ||
		(status == payment.Failed && result == payment.GatewayFailed)
}
