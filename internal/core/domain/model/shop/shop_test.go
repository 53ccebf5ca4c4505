package shop_test

import (
	"testing"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/shop"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShop(t *testing.T) {
	sellerID := kernel.NewUUID()
	loc, _ := kernel.NewLocation(9.03, 38.74)
	addr, _ := kernel.NewAddress(&loc, "Merkato")

	t.Run("should register a shop with coordinates", func(t *testing.T) {
		s, err := shop.NewShop(kernel.NewUUID(), sellerID, "Abel Spare Parts", addr)

		require.NoError(t, err)
		got, ok := s.Location()
		assert.True(t, ok)
		assert.InDelta(t, 9.03, got.Lat(), 1e-9)
		assert.NoError(t, s.VerifySeller(sellerID))
		assert.ErrorIs(t, s.VerifySeller(kernel.NewUUID()), errs.ErrValueIsInvalid)
	})

	t.Run("should allow a shop without address", func(t *testing.T) {
		s, err := shop.NewShop(kernel.NewUUID(), sellerID, "Abel Spare Parts", kernel.Address{})

		require.NoError(t, err)
		_, ok := s.Location()
		assert.False(t, ok)
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := shop.NewShop(kernel.NewUUID(), kernel.UUID{}, " ", addr)

		assert.ErrorIs(t, err, shop.ErrNameIsRequired)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
