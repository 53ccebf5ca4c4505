package services

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no registered courier can take the order.
var ErrCourierNotFound = errors.New("courier not found")

// Candidate is a courier that may be offered an order, with its distance to the
// pickup point when both positions are known.
type Candidate struct {
	Courier    *courier.Courier
	DistanceKm *float64
}

// CourierMatcher is a domain service that decides which couriers to offer a
// Processing order to.
//
// Selection rules:
//   - The courier's vehicle must be able to carry the order's delivery option
//   - Couriers that already declined the order are skipped
//   - Couriers with a known location come first, nearest to the shop first
//   - Couriers without a location follow, in registry order
type CourierMatcher struct{}

func NewCourierMatcher() CourierMatcher {
	return CourierMatcher{}
}

// Rank returns the couriers that may accept o, best first.
func (m CourierMatcher) Rank(o *order.Order, couriers []*courier.Courier) ([]Candidate, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Processing || o.Courier() != nil {
		return nil, ErrCourierNotFound
	}

	pickup, hasPickup := o.ShopAddress().Location()
	declined := o.DeclinedBy()

	var candidates []Candidate
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.CanCarry(o.DeliveryOption()) != nil {
			continue
		}
		if slices.ContainsFunc(declined, c.ID().IsEqual) {
			continue
		}

		candidate := Candidate{Courier: c}
		if loc, ok := c.Location(); ok && hasPickup {
			km, err := loc.DistanceKm(pickup)
			if err != nil {
				return nil, err
			}
			candidate.DistanceKm = &km
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, ErrCourierNotFound
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(distanceOrMax(a), distanceOrMax(b))
	})

	return candidates, nil
}

// Best returns the single nearest eligible courier.
func (m CourierMatcher) Best(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	ranked, err := m.Rank(o, couriers)
	if err != nil {
		return nil, err
	}
	return ranked[0].Courier, nil
}

func distanceOrMax(c Candidate) float64 {
	if c.DistanceKm == nil {
		return math.MaxFloat64
	}
	return *c.DistanceKm
}
