package queries

import (
	"context"

	"mekina/internal/core/ports"
)

type GetActiveOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetActiveOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{uowFactory: uowFactory}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListActive(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
