package memory

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"
)

// ErrCourierExists is returned when a courier id is registered twice.
var ErrCourierExists = errs.NewValueIsInvalidErrorWithCause("courierId", errors.New("courier already registered"))

type CourierRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *CourierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := courierToRow(aggregate)
	return r.uow.stage(write{
		check: func(s *Store) error {
			if _, ok := s.couriers[row.id]; ok {
				return ErrCourierExists
			}
			return nil
		},
		apply: func(s *Store) {
			s.couriers[row.id] = row
			s.courierOrder = append(s.courierOrder, row.id)
		},
	})
}

func (r *CourierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := courierToRow(aggregate)
	return r.uow.stage(write{
		check: func(s *Store) error {
			if _, ok := s.couriers[row.id]; !ok {
				return errs.NewObjectNotFoundError("courier", row.id.String())
			}
			return nil
		},
		apply: func(s *Store) { s.couriers[row.id] = row },
	})
}

func (r *CourierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	row, ok := r.store.couriers[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}
	return courier.RestoreCourier(row.id, row.name, row.vehicle, row.location)
}

// GetAll returns couriers in registration order.
func (r *CourierRepository) GetAll(_ context.Context) ([]*courier.Courier, error) {
	r.store.mu.RLock()
	rows := make([]courierRow, 0, len(r.store.courierOrder))
	for _, id := range r.store.courierOrder {
		rows = append(rows, r.store.couriers[id])
	}
	r.store.mu.RUnlock()

	couriers := make([]*courier.Courier, 0, len(rows))
	for _, row := range rows {
		c, err := courier.RestoreCourier(row.id, row.name, row.vehicle, row.location)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}

func courierToRow(c *courier.Courier) courierRow {
	row := courierRow{id: c.ID(), name: c.Name(), vehicle: c.Vehicle()}
	if loc, ok := c.Location(); ok {
		row.location = &loc
	}
	return row
}
