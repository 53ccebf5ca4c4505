package commands

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand is a live position report from a courier's phone.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateCourierLocationCommand(courierID kernel.UUID, location kernel.Location) (UpdateCourierLocationCommand, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierID: courierID,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

func (c UpdateCourierLocationCommand) CourierID() kernel.UUID    { return c.courierID }
func (c UpdateCourierLocationCommand) Location() kernel.Location { return c.location }
