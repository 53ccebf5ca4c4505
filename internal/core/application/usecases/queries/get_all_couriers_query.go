// Package queries contains read operations for retrieving system state.
// Queries never open a transaction: they read committed data through a fresh
// unit of work and return view structs shaped for the HTTP layer.
package queries

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var (
	ErrGetAllCouriersQueryIsNotConstructed = errors.New(
		"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
	)
)

// GetAllCouriersQuery retrieves information about all couriers in the system.
// Returns courier identities, vehicles and last known locations for dispatching.
//
// Example:
//
//	query := NewGetAllCouriersQuery()
//	handler := NewGetAllCouriersQueryHandler(uowFactory)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// CourierView is the read model of a courier. Location is nil until the courier
// has reported a position.
type CourierView struct {
	ID       kernel.UUID
	Name     string
	Vehicle  kernel.DeliveryOption
	Location *kernel.Location
}
