package commands

import (
	"context"
)

// UpdateCourierLocationCommandHandler stores a courier's latest position.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()
	c, err := repo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = c.MoveTo(cmd.Location()); err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
