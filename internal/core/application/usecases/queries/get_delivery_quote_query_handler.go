package queries

import (
	"context"
	"fmt"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/services"
)

type GetDeliveryQuoteQueryHandler struct {
	quoter services.DeliveryQuoter
}

func NewGetDeliveryQuoteQueryHandler(quoter services.DeliveryQuoter) GetDeliveryQuoteQueryHandler {
	return GetDeliveryQuoteQueryHandler{quoter: quoter}
}

// Handle is pure: the same query always yields the same quote.
func (h GetDeliveryQuoteQueryHandler) Handle(_ context.Context, query GetDeliveryQuoteQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}

	from, err := kernel.ParseLocation(query.fromLat, query.fromLng)
	if err != nil {
		return services.Quote{}, fmt.Errorf("%w: shop coordinates: %w", services.ErrQuoteUnavailable, err)
	}
	to, err := kernel.ParseLocation(query.toLat, query.toLng)
	if err != nil {
		return services.Quote{}, fmt.Errorf("%w: delivery coordinates: %w", services.ErrQuoteUnavailable, err)
	}

	return h.quoter.QuoteLocations(from, to, query.Option())
}
