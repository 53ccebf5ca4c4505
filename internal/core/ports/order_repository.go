package ports

import (
	"context"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
)

// ActiveOrdersFilter narrows the list of orders that still need work.
// A nil field means "any".
type ActiveOrdersFilter struct {
	BuyerID   *kernel.UUID
	SellerID  *kernel.UUID
	CourierID *kernel.UUID
	Status    *order.Status
	Limit     int
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is an optimistic write: it succeeds only when the stored version equals
// aggregate.Version(), and bumps the version on success. A lost race returns an
// error matching errs.ErrConcurrencyConflict.
type OrderRepository interface {
	// Add persists a newly placed order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle, payment and courier changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTransactionRef finds the order a gateway transaction belongs to.
	GetByTransactionRef(ctx context.Context, txRef string) (*order.Order, error)

	// ListActive returns orders that are neither confirmed nor cancelled, newest first.
	ListActive(ctx context.Context, filter ActiveOrdersFilter) ([]*order.Order, error)

	// ListAwaitingGateway returns gateway-paid orders whose payment is still pending,
	// oldest first, at most limit of them.
	ListAwaitingGateway(ctx context.Context, limit int) ([]*order.Order, error)
}
