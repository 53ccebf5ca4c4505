package ports

import (
	"context"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/shop"
)

// ShopRepository defines the persistence contract for shops.
type ShopRepository interface {
	Add(ctx context.Context, shop *shop.Shop) error
	// Get returns the shop or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)
}
