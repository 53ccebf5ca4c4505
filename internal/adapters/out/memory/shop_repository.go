package memory

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/shop"
	"mekina/internal/pkg/errs"
)

// ErrShopExists is returned when a shop id is added twice.
var ErrShopExists = errs.NewValueIsInvalidErrorWithCause("shopId", errors.New("shop already exists"))

type ShopRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *ShopRepository) Add(_ context.Context, aggregate *shop.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := shopRow{
		id:       aggregate.ID(),
		sellerID: aggregate.SellerID(),
		name:     aggregate.Name(),
		address:  aggregate.Address(),
	}
	return r.uow.stage(write{
		check: func(s *Store) error {
			if _, ok := s.shops[row.id]; ok {
				return ErrShopExists
			}
			return nil
		},
		apply: func(s *Store) { s.shops[row.id] = row },
	})
}

func (r *ShopRepository) Get(_ context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	row, ok := r.store.shops[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("shop", id.String())
	}
	return shop.RestoreShop(row.id, row.sellerID, row.name, row.address)
}
