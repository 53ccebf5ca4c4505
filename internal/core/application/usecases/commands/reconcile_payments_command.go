package commands

import (
	"errors"

	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

var ErrReconcilePaymentsCommandIsNotConstructed = errors.New(
	"ReconcilePaymentsCommand must be created via NewReconcilePaymentsCommand constructor",
)

// ReconcilePaymentsCommand asks for one reconciliation sweep over gateway
// payments that are still pending.
type ReconcilePaymentsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewReconcilePaymentsCommand(batchSize int) (ReconcilePaymentsCommand, error) {
	if batchSize < 1 {
		return ReconcilePaymentsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return ReconcilePaymentsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentsCommandIsNotConstructed)
}

func (c ReconcilePaymentsCommand) BatchSize() int { return c.batchSize }
