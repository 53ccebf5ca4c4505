package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/ports"
	"mekina/internal/pkg/errs"
)

// ErrOrderExists is returned when an order id is added twice.
var ErrOrderExists = errs.NewValueIsInvalidErrorWithCause("orderId", errors.New("order already exists"))

type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	st := aggregate.State()
	err := r.uow.stage(write{
		check: func(s *Store) error {
			if _, ok := s.orders[st.ID]; ok {
				return ErrOrderExists
			}
			return nil
		},
		apply: func(s *Store) { s.orders[st.ID] = st },
	})
	if err != nil {
		return err
	}

	r.uow.track(ctx, aggregate)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	st := aggregate.State()
	expected := st.Version
	st.Version++

	err := r.uow.stage(write{
		check: func(s *Store) error {
			current, ok := s.orders[st.ID]
			if !ok {
				return errs.NewObjectNotFoundError("order", st.ID.String())
			}
			if current.Version != expected {
				return errs.NewConcurrencyConflictError("order", st.ID.String(), expected)
			}
			return nil
		},
		apply: func(s *Store) { s.orders[st.ID] = st },
	})
	if err != nil {
		return err
	}

	aggregate.CommitVersion()
	r.uow.track(ctx, aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	st, ok := r.store.orders[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(st)
}

func (r *OrderRepository) GetByTransactionRef(_ context.Context, txRef string) (*order.Order, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, errs.NewValueIsRequiredError("transactionRef")
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, st := range r.store.orders {
		if st.Payment.TransactionRef() == txRef {
			return order.RestoreOrder(st)
		}
	}
	return nil, errs.NewObjectNotFoundError("transactionRef", txRef)
}

func (r *OrderRepository) ListActive(_ context.Context, filter ports.ActiveOrdersFilter) ([]*order.Order, error) {
	r.store.mu.RLock()
	matched := make([]order.State, 0)
	for _, st := range r.store.orders {
		if matchesActive(st, filter) {
			matched = append(matched, st)
		}
	}
	r.store.mu.RUnlock()

	slices.SortFunc(matched, func(a, b order.State) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})

	return restoreAll(matched, filter.Limit)
}

func (r *OrderRepository) ListAwaitingGateway(_ context.Context, limit int) ([]*order.Order, error) {
	r.store.mu.RLock()
	matched := make([]order.State, 0)
	for _, st := range r.store.orders {
		if st.Status != order.Cancelled && st.Payment.AwaitsGateway() {
			matched = append(matched, st)
		}
	}
	r.store.mu.RUnlock()

	slices.SortFunc(matched, func(a, b order.State) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})

	return restoreAll(matched, limit)
}

func matchesActive(st order.State, f ports.ActiveOrdersFilter) bool {
	if !st.Status.IsActive() {
		return false
	}
	if f.Status != nil && st.Status != *f.Status {
		return false
	}
	if f.BuyerID != nil && !st.BuyerID.IsEqual(*f.BuyerID) {
		return false
	}
	if f.SellerID != nil && !st.SellerID.IsEqual(*f.SellerID) {
		return false
	}
	if f.CourierID != nil && (st.CourierID == nil || !st.CourierID.IsEqual(*f.CourierID)) {
		return false
	}
	return true
}

func restoreAll(states []order.State, limit int) ([]*order.Order, error) {
	if limit > 0 && len(states) > limit {
		states = states[:limit]
	}

	orders := make([]*order.Order, 0, len(states))
	for _, st := range states {
		o, err := order.RestoreOrder(st)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
