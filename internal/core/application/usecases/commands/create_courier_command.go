package commands

import (
	"errors"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// CreateCourierCommand registers a courier.
//
// Example:
//
//	courierID := kernel.NewUUID()
//	cmd, err := NewCreateCourierCommand(courierID, "Abebe", kernel.Motorbike, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register courier: %w", err)
//	}
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	vehicle   kernel.DeliveryOption
	location  *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand validates the registration. location may be nil.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name string,
	vehicle kernel.DeliveryOption,
	location *kernel.Location,
) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setName(name),
		command.setVehicle(vehicle),
		command.setLocation(location),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c CreateCourierCommand) Vehicle() kernel.DeliveryOption {
	return c.vehicle
}

// Location returns the initial position, or nil.
func (c CreateCourierCommand) Location() *kernel.Location {
	return c.location
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setVehicle(vehicle kernel.DeliveryOption) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

func (c *CreateCourierCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.location = &loc
	return nil
}
