package commands_test

import (
	"context"
	"testing"
	"time"

	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/domain/model/shop"
	"mekina/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTransactionRef(ctx context.Context, txRef string) (*order.Order, error) {
	args := m.Called(ctx, txRef)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListActive(ctx context.Context, filter ports.ActiveOrdersFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingGateway(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*courier.Courier)
	return cs, args.Error(1)
}

type MockShopRepository struct{ mock.Mock }

func (m *MockShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shop.Shop)
	return s, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) ShopRepository() ports.ShopRepository {
	return m.Called().Get(0).(ports.ShopRepository)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CheckStatus(ctx context.Context, txRef string) (payment.GatewayResult, error) {
	args := m.Called(ctx, txRef)
	return args.Get(0).(payment.GatewayResult), args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Remember(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Forget(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type courierUoWFactory func() commands.CourierUoW

func (f courierUoWFactory) Create() commands.CourierUoW { return f() }

type shopUoWFactory func() commands.ShopUoW

func (f shopUoWFactory) Create() commands.ShopUoW { return f() }

// fixture holds the parties of a test order.
type fixture struct {
	buyer   order.Actor
	seller  order.Actor
	courier order.Actor
	admin   order.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mk := func(role order.Role) order.Actor {
		a, err := order.NewActor(role, kernel.NewUUID())
		require.NoError(t, err)
		return a
	}
	return fixture{
		buyer:   mk(order.RoleBuyer),
		seller:  mk(order.RoleSeller),
		courier: mk(order.RoleCourier),
		admin:   mk(order.RoleAdmin),
	}
}

func (f fixture) items(t *testing.T) []cart.LineItem {
	t.Helper()
	pads, err := cart.NewLineItem("brake-pad", 2, decimal.NewFromInt(100))
	require.NoError(t, err)
	filter, err := cart.NewLineItem("oil-filter", 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	return []cart.LineItem{pads, filter}
}

// newOrder places an order paid with method and returns it with events cleared.
func (f fixture) newOrder(t *testing.T, method payment.Method, option kernel.DeliveryOption) *order.Order {
	t.Helper()
	snap, err := cart.NewSnapshot(f.items(t))
	require.NoError(t, err)
	txRef := ""
	if method.IsGateway() {
		txRef = "mk-test-" + kernel.NewUUID().String()
	}
	record, err := payment.NewRecord(method, txRef, "")
	require.NoError(t, err)
	dest, err := kernel.NewAddress(nil, "Bole")
	require.NoError(t, err)

	o, err := order.NewOrder(order.Draft{
		ID:              kernel.NewUUID(),
		BuyerID:         f.buyer.ID(),
		SellerID:        f.seller.ID(),
		ShopID:          kernel.NewUUID(),
		Cart:            snap,
		Payment:         record,
		DeliveryOption:  option,
		DeliveryAddress: dest,
	})
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

// expectMutation wires the begin/get/update/commit sequence of one order write.
func expectMutation(uow *MockUoW, repo *MockOrderRepository, o *order.Order, updateErr error) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("Update", mock.Anything, o).Return(updateErr).Once()
	if updateErr == nil {
		uow.On("Commit", mock.Anything).Return(nil).Once()
	}
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
}
