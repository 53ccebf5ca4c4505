package commands

import (
	"context"
	"errors"
	"fmt"

	"mekina/internal/core/ports"
)

// ReconcilePaymentsCommandHandler asks the gateway once about every pending gateway
// payment in the batch and records the final answers. Unlike the sync command it
// does not wait: orders still pending are picked up again on the next sweep.
//
// Errors for individual orders are collected and returned together; one failing
// order never stops the sweep.
type ReconcilePaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

func NewReconcilePaymentsCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
) ReconcilePaymentsCommandHandler {
	return ReconcilePaymentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// ReconcileResult summarises one sweep.
type ReconcileResult struct {
	Checked int
	Settled int
}

func (h ReconcilePaymentsCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentsCommand) (ReconcileResult, error) {
	var result ReconcileResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListAwaitingGateway(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	var problems []error
	for _, o := range orders {
		if ctx.Err() != nil {
			problems = append(problems, ctx.Err())
			break
		}

		result.Checked++
		txRef := o.Payment().TransactionRef()

		status, checkErr := h.gateway.CheckStatus(ctx, txRef)
		if checkErr != nil {
			problems = append(problems, fmt.Errorf("check %s: %w", txRef, checkErr))
			continue
		}
		if !status.IsFinal() {
			continue
		}

		if applyErr := applyGatewayResult(ctx, h.uowFactory.Create(), o, status); applyErr != nil {
			problems = append(problems, fmt.Errorf("apply %s: %w", txRef, applyErr))
			continue
		}
		result.Settled++
	}

	return result, errors.Join(problems...)
}
