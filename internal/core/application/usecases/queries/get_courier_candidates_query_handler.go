package queries

import (
	"context"
	"errors"

	"mekina/internal/core/domain/services"
	"mekina/internal/core/ports"
)

// GetCourierCandidatesQueryHandler lists who may accept a Processing order, best
// first. An order that cannot be offered (wrong status, already bound) or that no
// courier can carry yields an empty list.
type GetCourierCandidatesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	matcher    services.CourierMatcher
}

func NewGetCourierCandidatesQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	matcher services.CourierMatcher,
) GetCourierCandidatesQueryHandler {
	return GetCourierCandidatesQueryHandler{uowFactory: uowFactory, matcher: matcher}
}

func (h GetCourierCandidatesQueryHandler) Handle(ctx context.Context, query GetCourierCandidatesQuery) ([]CandidateView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	couriers, err := uow.CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := h.matcher.Rank(o, couriers)
	if errors.Is(err, services.ErrCourierNotFound) {
		return []CandidateView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]CandidateView, 0, len(ranked))
	for _, c := range ranked {
		views = append(views, CandidateView{Courier: newCourierView(c.Courier), DistanceKm: c.DistanceKm})
	}
	return views, nil
}
