package courier

import (
	"errors"
	"fmt"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when a courier is registered without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("courier must be created via NewCourier or RestoreCourier")
	// ErrCannotCarry is returned when a courier's vehicle is too small for the order's delivery option.
	ErrCannotCarry = errs.NewValueIsInvalidErrorWithCause("courier vehicle", errors.New("a motorbike courier cannot take a vehicle delivery"))
)

// Courier is a registered delivery courier.
//
// Key responsibilities:
//   - Identity and display name
//   - The kind of vehicle the courier rides, which decides which orders it may accept
//   - The last live location the courier reported, if any
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Abebe", kernel.Motorbike)
//	if err != nil {
//	    return err
//	}
//	if err := c.CanCarry(o.DeliveryOption()); err != nil {
//	    return err
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// vehicle is the delivery option the courier can serve
	vehicle kernel.DeliveryOption
	// location is the last reported position; nil until the courier shares one
	location *kernel.Location
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a courier without a known location.
func NewCourier(id kernel.UUID, name string, vehicle kernel.DeliveryOption) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage. location may be nil.
func RestoreCourier(id kernel.UUID, name string, vehicle kernel.DeliveryOption, location *kernel.Location) (*Courier, error) {
	c, err := NewCourier(id, name, vehicle)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err := c.MoveTo(*location); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Validate ensures the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID                { return c.id }
func (c *Courier) Name() string                   { return c.name }
func (c *Courier) Vehicle() kernel.DeliveryOption { return c.vehicle }

// Location returns the last reported position and whether one is known.
func (c *Courier) Location() (kernel.Location, bool) {
	if c.location == nil {
		return kernel.Location{}, false
	}
	return *c.location, true
}

// MoveTo records a live location update.
func (c *Courier) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	return nil
}

// CanCarry reports whether the courier may accept an order with the given delivery option.
// Vehicle couriers carry anything; motorbike couriers only motorbike deliveries.
func (c *Courier) CanCarry(option kernel.DeliveryOption) error {
	if err := option.Validate(); err != nil {
		return err
	}
	if c.vehicle == kernel.Motorbike && option == kernel.Vehicle {
		return ErrCannotCarry
	}
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle kernel.DeliveryOption) error {
	if err := vehicle.Validate(); err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}
	c.vehicle = vehicle
	return nil
}
