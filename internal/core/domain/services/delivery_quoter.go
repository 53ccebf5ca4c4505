package services

import (
	"errors"
	"fmt"

	"mekina/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrQuoteUnavailable is returned when a fee cannot be computed, for example because
// either side has only a textual address. It is never reported as a zero fee.
var ErrQuoteUnavailable = errors.New("delivery quote is unavailable")

// Tariff is the fee schedule of one delivery option: Base + PerKm * distance.
type Tariff struct {
	Base  decimal.Decimal
	PerKm decimal.Decimal
}

// DefaultTariffs are the published fee schedules in birr.
func DefaultTariffs() map[kernel.DeliveryOption]Tariff {
	return map[kernel.DeliveryOption]Tariff{
		kernel.Vehicle:   {Base: decimal.NewFromInt(100), PerKm: decimal.NewFromInt(20)},
		kernel.Motorbike: {Base: decimal.NewFromInt(60), PerKm: decimal.NewFromInt(10)},
	}
}

// Quote is a computed delivery fee.
type Quote struct {
	Option     kernel.DeliveryOption
	DistanceKm float64
	Fee        decimal.Decimal
}

// DeliveryQuoter is a domain service that prices a delivery from the shop to the buyer.
//
// Business rules:
//   - Distance is the haversine great-circle distance with an Earth radius of 6371 km
//   - Fee = Base + PerKm * km for the chosen option, rounded up to a whole birr
//   - Missing coordinates on either side yield ErrQuoteUnavailable
//
// The quoter is pure: the same inputs always give the same Quote.
//
// Example usage:
//
//	quoter := services.NewDeliveryQuoter()
//	q, err := quoter.QuoteLocations(shopLoc, buyerLoc, kernel.Vehicle)
//	if errors.Is(err, services.ErrQuoteUnavailable) {
//	    // place the order without a fee
//	}
type DeliveryQuoter struct {
	tariffs map[kernel.DeliveryOption]Tariff
}

// NewDeliveryQuoter creates a quoter with DefaultTariffs.
func NewDeliveryQuoter() DeliveryQuoter {
	return DeliveryQuoter{tariffs: DefaultTariffs()}
}

// NewDeliveryQuoterWithTariffs creates a quoter with custom fee schedules.
func NewDeliveryQuoterWithTariffs(tariffs map[kernel.DeliveryOption]Tariff) DeliveryQuoter {
	return DeliveryQuoter{tariffs: tariffs}
}

// Quote prices a delivery between two addresses.
func (q DeliveryQuoter) Quote(from, to kernel.Address, option kernel.DeliveryOption) (Quote, error) {
	fromLoc, ok := from.Location()
	if !ok {
		return Quote{}, fmt.Errorf("%w: shop coordinates are unknown", ErrQuoteUnavailable)
	}
	toLoc, ok := to.Location()
	if !ok {
		return Quote{}, fmt.Errorf("%w: delivery coordinates are unknown", ErrQuoteUnavailable)
	}

	return q.QuoteLocations(fromLoc, toLoc, option)
}

// QuoteLocations prices a delivery between two coordinate pairs.
func (q DeliveryQuoter) QuoteLocations(from, to kernel.Location, option kernel.DeliveryOption) (Quote, error) {
	if err := option.Validate(); err != nil {
		return Quote{}, err
	}

	tariff, ok := q.tariffs[option]
	if !ok {
		return Quote{}, fmt.Errorf("%w: no tariff for %s", ErrQuoteUnavailable, option)
	}

	km, err := from.DistanceKm(to)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrQuoteUnavailable, err)
	}

	fee := tariff.Base.Add(tariff.PerKm.Mul(decimal.NewFromFloat(km))).Ceil()

	return Quote{Option: option, DistanceKm: km, Fee: fee}, nil
}
