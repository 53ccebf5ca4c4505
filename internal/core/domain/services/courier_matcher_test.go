package services_test

import (
	"testing"

	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processingOrder(t *testing.T, option kernel.DeliveryOption, shopLoc *kernel.Location) *order.Order {
	t.Helper()

	item, err := cart.NewLineItem("spark-plug", 4, decimal.NewFromInt(35))
	require.NoError(t, err)
	snap, err := cart.NewSnapshot([]cart.LineItem{item})
	require.NoError(t, err)
	record, err := payment.NewRecord(payment.CashOnDelivery, "", "")
	require.NoError(t, err)
	dest, err := kernel.NewAddress(nil, "Kazanchis")
	require.NoError(t, err)

	var pickup kernel.Address
	if shopLoc != nil {
		pickup, err = kernel.NewAddress(shopLoc, "")
		require.NoError(t, err)
	}

	seller, _ := order.NewActor(order.RoleSeller, kernel.NewUUID())
	o, err := order.NewOrder(order.Draft{
		ID:              kernel.NewUUID(),
		BuyerID:         kernel.NewUUID(),
		SellerID:        seller.ID(),
		ShopID:          kernel.NewUUID(),
		Cart:            snap,
		Payment:         record,
		DeliveryOption:  option,
		DeliveryAddress: dest,
		ShopAddress:     pickup,
	})
	require.NoError(t, err)
	require.NoError(t, o.Process(seller))
	return o
}

func courierAt(t *testing.T, name string, vehicle kernel.DeliveryOption, lat, lng float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, vehicle)
	require.NoError(t, err)
	if lat != 0 || lng != 0 {
		loc, err := kernel.NewLocation(lat, lng)
		require.NoError(t, err)
		require.NoError(t, c.MoveTo(loc))
	}
	return c
}

func TestCourierMatcher_Rank(t *testing.T) {
	shopLoc, _ := kernel.NewLocation(9.03, 38.74)
	matcher := services.NewCourierMatcher()

	t.Run("should put the nearest courier first", func(t *testing.T) {
		o := processingOrder(t, kernel.Motorbike, &shopLoc)
		far := courierAt(t, "Far", kernel.Motorbike, 9.10, 38.80)
		near := courierAt(t, "Near", kernel.Vehicle, 9.031, 38.741)
		unknown := courierAt(t, "Unknown", kernel.Motorbike, 0, 0)

		ranked, err := matcher.Rank(o, []*courier.Courier{unknown, far, near})

		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.True(t, ranked[0].Courier.IsEqual(near))
		assert.True(t, ranked[1].Courier.IsEqual(far))
		assert.True(t, ranked[2].Courier.IsEqual(unknown))
		assert.Nil(t, ranked[2].DistanceKm)
	})

	t.Run("should skip motorbikes for vehicle orders", func(t *testing.T) {
		o := processingOrder(t, kernel.Vehicle, &shopLoc)
		bike := courierAt(t, "Bike", kernel.Motorbike, 9.03, 38.74)
		van := courierAt(t, "Van", kernel.Vehicle, 9.2, 38.9)

		best, err := matcher.Best(o, []*courier.Courier{bike, van})

		require.NoError(t, err)
		assert.True(t, best.IsEqual(van))
	})

	t.Run("should skip couriers that declined", func(t *testing.T) {
		o := processingOrder(t, kernel.Motorbike, nil)
		bike := courierAt(t, "Bike", kernel.Motorbike, 0, 0)
		actor, _ := order.NewActor(order.RoleCourier, bike.ID())
		require.NoError(t, o.Reject(actor))

		_, err := matcher.Rank(o, []*courier.Courier{bike})

		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("should refuse an order that is already bound", func(t *testing.T) {
		o := processingOrder(t, kernel.Motorbike, nil)
		bike := courierAt(t, "Bike", kernel.Motorbike, 0, 0)
		actor, _ := order.NewActor(order.RoleCourier, bike.ID())
		require.NoError(t, o.Accept(actor))

		_, err := matcher.Rank(o, []*courier.Courier{bike})

		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})
}
