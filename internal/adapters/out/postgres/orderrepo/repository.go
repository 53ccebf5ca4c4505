package orderrepo

import (
	"context"
	"errors"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/ports"
	"mekina/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns guarded by the version the aggregate was
// loaded with. Line items are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(dto.mutableColumns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), dto.Version)
	}

	aggregate.CommitVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetByTransactionRef(ctx context.Context, txRef string) (*order.Order, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, errs.NewValueIsRequiredError("transactionRef")
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "payment_transaction_ref = ?", txRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transactionRef", txRef)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListActive(ctx context.Context, filter ports.ActiveOrdersFilter) ([]*order.Order, error) {
	query := r.withItems(ctx).
		Where("status NOT IN ?", []string{order.Confirmed.String(), order.Cancelled.String()})

	if filter.BuyerID != nil {
		query = query.Where("buyer_id = ?", filter.BuyerID.Bytes())
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", filter.SellerID.Bytes())
	}
	if filter.CourierID != nil {
		query = query.Where("courier_id = ?", filter.CourierID.Bytes())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) ListAwaitingGateway(ctx context.Context, limit int) ([]*order.Order, error) {
	query := r.withItems(ctx).
		Where("payment_method IN ?", []string{payment.Chapa.String(), payment.Telebirr.String()}).
		Where("payment_status = ?", payment.Pending.String()).
		Where("status <> ?", order.Cancelled.String()).
		Order("created_at ASC").
		Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
