package queries

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var ErrGetCourierCandidatesQueryIsNotConstructed = errors.New(
	"GetCourierCandidatesQuery must be created via NewGetCourierCandidatesQuery constructor",
)

// GetCourierCandidatesQuery ranks the couriers an order can be offered to.
type GetCourierCandidatesQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetCourierCandidatesQuery(orderID kernel.UUID) (GetCourierCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCourierCandidatesQuery{}, err
	}
	return GetCourierCandidatesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierCandidatesQueryIsNotConstructed)
}

func (q GetCourierCandidatesQuery) OrderID() kernel.UUID { return q.orderID }

// CandidateView is one ranked courier. DistanceKm is nil when either the courier
// or the shop has no coordinates.
type CandidateView struct {
	Courier    CourierView
	DistanceKm *float64
}
