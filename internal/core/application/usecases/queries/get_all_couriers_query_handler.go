package queries

import (
	"cmp"
	"context"
	"slices"

	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/ports"
)

// GetAllCouriersQueryHandler lists the courier registry sorted by name.
type GetAllCouriersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetAllCouriersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{uowFactory: uowFactory}
}

func (h GetAllCouriersQueryHandler) Handle(ctx context.Context, query GetAllCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers, err := h.uowFactory.Create().CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CourierView, 0, len(couriers))
	for _, c := range couriers {
		views = append(views, newCourierView(c))
	}

	slices.SortStableFunc(views, func(a, b CourierView) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return views, nil
}

func newCourierView(c *courier.Courier) CourierView {
	v := CourierView{ID: c.ID(), Name: c.Name(), Vehicle: c.Vehicle()}
	if loc, ok := c.Location(); ok {
		v.Location = &loc
	}
	return v
}
