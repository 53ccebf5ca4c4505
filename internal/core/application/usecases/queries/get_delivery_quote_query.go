package queries

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var ErrGetDeliveryQuoteQueryIsNotConstructed = errors.New(
	"GetDeliveryQuoteQuery must be created via NewGetDeliveryQuoteQuery constructor",
)

// GetDeliveryQuoteQuery prices a delivery between two raw coordinate pairs, as the
// storefront sends them. Coordinates are parsed by the handler so that missing or
// malformed ones come back as services.ErrQuoteUnavailable rather than as a
// validation error: a checkout without a quote is still a valid checkout.
type GetDeliveryQuoteQuery struct {
	fromLat, fromLng string
	toLat, toLng     string
	option           kernel.DeliveryOption
	guard            guard.ConstructorGuard
}

func NewGetDeliveryQuoteQuery(fromLat, fromLng, toLat, toLng string, option kernel.DeliveryOption) (GetDeliveryQuoteQuery, error) {
	if err := option.Validate(); err != nil {
		return GetDeliveryQuoteQuery{}, err
	}

	return GetDeliveryQuoteQuery{
		fromLat: fromLat,
		fromLng: fromLng,
		toLat:   toLat,
		toLng:   toLng,
		option:  option,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQuoteQueryIsNotConstructed)
}

func (q GetDeliveryQuoteQuery) Option() kernel.DeliveryOption { return q.option }
