package services_test

import (
	"testing"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addisLocations(t *testing.T) (kernel.Location, kernel.Location) {
	t.Helper()
	shop, err := kernel.NewLocation(9.03, 38.74)
	require.NoError(t, err)
	buyer, err := kernel.NewLocation(9.05, 38.76)
	require.NoError(t, err)
	return shop, buyer
}

func TestDeliveryQuoter_QuoteLocations(t *testing.T) {
	shop, buyer := addisLocations(t)
	quoter := services.NewDeliveryQuoter()

	t.Run("should price a vehicle delivery", func(t *testing.T) {
		q, err := quoter.QuoteLocations(shop, buyer, kernel.Vehicle)

		require.NoError(t, err)
		assert.InDelta(t, 3.1256, q.DistanceKm, 0.001)
		// 100 + 20 * 3.1256 = 162.51, rounded up.
		assert.Equal(t, "163", q.Fee.String())
		assert.Equal(t, kernel.Vehicle, q.Option)
	})

	t.Run("should price a motorbike delivery", func(t *testing.T) {
		q, err := quoter.QuoteLocations(shop, buyer, kernel.Motorbike)

		require.NoError(t, err)
		assert.Equal(t, "92", q.Fee.String())
	})

	t.Run("should charge the base fee for zero distance", func(t *testing.T) {
		q, err := quoter.QuoteLocations(shop, shop, kernel.Vehicle)

		require.NoError(t, err)
		assert.Equal(t, "100", q.Fee.String())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		first, err := quoter.QuoteLocations(shop, buyer, kernel.Vehicle)
		require.NoError(t, err)
		second, err := quoter.QuoteLocations(shop, buyer, kernel.Vehicle)
		require.NoError(t, err)

		assert.Equal(t, first.DistanceKm, second.DistanceKm)
		assert.True(t, first.Fee.Equal(second.Fee))
	})

	t.Run("should be unavailable for an unconstructed location", func(t *testing.T) {
		_, err := quoter.QuoteLocations(shop, kernel.Location{}, kernel.Vehicle)

		assert.ErrorIs(t, err, services.ErrQuoteUnavailable)
	})

	t.Run("should reject an unknown option", func(t *testing.T) {
		_, err := quoter.QuoteLocations(shop, buyer, kernel.UnknownDeliveryOption)

		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrQuoteUnavailable)
	})

	t.Run("should use custom tariffs", func(t *testing.T) {
		custom := services.NewDeliveryQuoterWithTariffs(map[kernel.DeliveryOption]services.Tariff{
			kernel.Motorbike: {Base: decimal.NewFromInt(50), PerKm: decimal.NewFromInt(5)},
		})

		q, err := custom.QuoteLocations(shop, buyer, kernel.Motorbike)
		require.NoError(t, err)
		assert.Equal(t, "66", q.Fee.String())

		_, err = custom.QuoteLocations(shop, buyer, kernel.Vehicle)
		assert.ErrorIs(t, err, services.ErrQuoteUnavailable)
	})
}

func TestDeliveryQuoter_Quote(t *testing.T) {
	shopLoc, buyerLoc := addisLocations(t)
	quoter := services.NewDeliveryQuoter()

	shopAddr, _ := kernel.NewAddress(&shopLoc, "Merkato")
	buyerAddr, _ := kernel.NewAddress(&buyerLoc, "")
	textOnly, _ := kernel.NewAddress(nil, "Bole, behind Edna Mall")

	q, err := quoter.Quote(shopAddr, buyerAddr, kernel.Vehicle)
	require.NoError(t, err)
	assert.Equal(t, "163", q.Fee.String())

	_, err = quoter.Quote(shopAddr, textOnly, kernel.Vehicle)
	assert.ErrorIs(t, err, services.ErrQuoteUnavailable)

	_, err = quoter.Quote(kernel.Address{}, buyerAddr, kernel.Vehicle)
	assert.ErrorIs(t, err, services.ErrQuoteUnavailable)
}
