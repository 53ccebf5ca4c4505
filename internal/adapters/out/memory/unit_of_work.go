package memory

import (
	"context"
	"errors"
	"log/slog"

	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("memory: no transaction in progress")

// UnitOfWorkFactory creates memory units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "memory-uow"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// UnitOfWork stages writes between Begin and Commit. Without Begin every write is
// applied at once. Reads always see committed data only.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger

	active  bool
	staged  []write
	tracked []*order.Order
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	staged := uow.staged
	uow.active = false
	uow.staged = nil

	if err := uow.store.commit(staged); err != nil {
		uow.tracked = nil
		return err
	}

	uow.publish(ctx)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	uow.active = false
	uow.staged = nil
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &CourierRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) ShopRepository() ports.ShopRepository {
	return &ShopRepository{store: uow.store, uow: uow}
}

// stage checks w against committed state and queues it, or applies it directly
// outside a transaction.
func (uow *UnitOfWork) stage(w write) error {
	if !uow.active {
		return uow.store.commit([]write{w})
	}

	if err := uow.store.precheck(w); err != nil {
		return err
	}
	uow.staged = append(uow.staged, w)
	return nil
}

// track remembers o for event publishing. Outside a transaction the write is
// already visible, so events go out at once.
func (uow *UnitOfWork) track(ctx context.Context, o *order.Order) {
	uow.tracked = append(uow.tracked, o)
	if !uow.active {
		uow.publish(ctx)
	}
}

func (uow *UnitOfWork) publish(ctx context.Context) {
	tracked := uow.tracked
	uow.tracked = nil

	for _, o := range tracked {
		events := o.Events()
		if len(events) == 0 {
			continue
		}
		if err := uow.publisher.Publish(ctx, events...); err != nil {
			uow.logger.WarnContext(ctx, "failed to publish order events",
				"order_id", o.ID().String(), "count", len(events), "error", err)
		}
		o.ClearEvents()
	}
}
