package commands

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
)

// errNothingToWrite lets a change func end the unit of work successfully without an update.
var errNothingToWrite = errors.New("nothing to write")

// mutateOrder loads an order inside a fresh unit of work, applies change and writes
// the result back. A version clash on Update surfaces as errs.ErrConcurrencyConflict;
// the order is never retried blindly, because the caller's view was stale.
func mutateOrder[U OrderUoW](
	ctx context.Context,
	uow U,
	orderID kernel.UUID,
	change func(u U, o *order.Order) error,
) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = change(uow, o); err != nil {
		if errors.Is(err, errNothingToWrite) {
			return nil
		}
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
