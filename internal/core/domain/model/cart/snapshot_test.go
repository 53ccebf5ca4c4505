package cart_test

import (
	"testing"

	"mekina/internal/core/domain/model/cart"
	"mekina/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	t.Run("should create a valid line", func(t *testing.T) {
		item, err := cart.NewLineItem("brake-pad-1", 2, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, "brake-pad-1", item.ProductRef())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, decimal.NewFromInt(200).Equal(item.Amount()))
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := cart.NewLineItem("brake-pad-1", 0, decimal.NewFromInt(100))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative price and blank product together", func(t *testing.T) {
		_, err := cart.NewLineItem(" ", 1, decimal.NewFromInt(-1))

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSnapshot(t *testing.T) {
	pads, _ := cart.NewLineItem("brake-pad", 2, decimal.NewFromInt(100))
	filter, _ := cart.NewLineItem("oil-filter", 1, decimal.NewFromInt(50))

	t.Run("should sum quantity times unit price", func(t *testing.T) {
		snap, err := cart.NewSnapshot([]cart.LineItem{pads, filter})

		require.NoError(t, err)
		assert.Equal(t, 2, snap.Len())
		assert.Equal(t, "250", snap.Subtotal().String())
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		_, err := cart.NewSnapshot(nil)

		assert.ErrorIs(t, err, cart.ErrCartIsEmpty)
	})

	t.Run("should reject unconstructed lines", func(t *testing.T) {
		_, err := cart.NewSnapshot([]cart.LineItem{pads, {}})

		assert.ErrorIs(t, err, cart.ErrLineItemIsNotConstructed)
	})

	t.Run("should not be affected by edits to the source slice", func(t *testing.T) {
		items := []cart.LineItem{pads}
		snap, err := cart.NewSnapshot(items)
		require.NoError(t, err)

		items[0] = filter
		got := snap.Items()
		got[0] = filter

		assert.Equal(t, "brake-pad", snap.Items()[0].ProductRef())
	})
}
