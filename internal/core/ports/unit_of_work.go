package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks the aggregates written through its
// repositories; their domain events are published only after Commit succeeds.
//
// Repositories obtained before Begin read committed data directly, which is what
// query handlers rely on.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes tracked events.
	// A failed publish is logged, not returned: the state change already happened.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction. Calling it after Commit is a no-op
	// that returns an error the caller may ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
	ShopRepository() ShopRepository
}
