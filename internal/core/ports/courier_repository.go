package ports

import (
	"context"

	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for registered couriers.
type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error
	Update(ctx context.Context, courier *courier.Courier) error
	// Get returns the courier or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
	// GetAll returns every registered courier. Callers must not rely on the order.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
