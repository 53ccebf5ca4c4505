package queries

import (
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/ports"
	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// Page bounds for active order listings.
const (
	DefaultActiveOrdersLimit = 50
	MaxActiveOrdersLimit     = 500
)

// GetActiveOrdersQuery lists orders that are neither confirmed nor cancelled,
// newest first. Typical callers are a courier looking for work (status processing),
// a seller's dashboard (seller id) or a buyer's order page (buyer id).
//
// Example:
//
//	processing := order.Processing
//	query, err := NewGetActiveOrdersQuery(ActiveOrdersCriteria{Status: &processing})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQuery struct {
	filter ports.ActiveOrdersFilter
	guard  guard.ConstructorGuard
}

// ActiveOrdersCriteria is the caller-facing filter. Zero values mean "any";
// Limit 0 means DefaultActiveOrdersLimit.
type ActiveOrdersCriteria struct {
	BuyerID   *kernel.UUID
	SellerID  *kernel.UUID
	CourierID *kernel.UUID
	Status    *order.Status
	Limit     int
}

func NewGetActiveOrdersQuery(c ActiveOrdersCriteria) (GetActiveOrdersQuery, error) {
	var problems []error

	for _, id := range []*kernel.UUID{c.BuyerID, c.SellerID, c.CourierID} {
		if id != nil {
			problems = append(problems, id.Validate())
		}
	}

	if c.Status != nil {
		if err := c.Status.Validate(); err != nil {
			problems = append(problems, err)
		} else if !c.Status.IsActive() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"status", errors.New(c.Status.String()+" orders are not active")))
		}
	}

	limit := c.Limit
	switch {
	case limit == 0:
		limit = DefaultActiveOrdersLimit
	case limit < 0 || limit > MaxActiveOrdersLimit:
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", c.Limit, 1, MaxActiveOrdersLimit))
	}

	if err := errors.Join(problems...); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		filter: ports.ActiveOrdersFilter{
			BuyerID:   c.BuyerID,
			SellerID:  c.SellerID,
			CourierID: c.CourierID,
			Status:    c.Status,
			Limit:     limit,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) Filter() ports.ActiveOrdersFilter { return q.filter }
