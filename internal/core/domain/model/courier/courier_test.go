package courier_test

import (
	"testing"

	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("should register a courier without location", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), " Abebe ", kernel.Motorbike)

		require.NoError(t, err)
		assert.Equal(t, "Abebe", c.Name())
		assert.Equal(t, kernel.Motorbike, c.Vehicle())
		_, ok := c.Location()
		assert.False(t, ok)
		assert.NoError(t, c.Validate())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, "", kernel.UnknownDeliveryOption)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, courier.ErrNameIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should flag the zero value", func(t *testing.T) {
		var c courier.Courier
		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourier_MoveTo(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), "Abebe", kernel.Vehicle)
	require.NoError(t, err)
	loc, _ := kernel.NewLocation(9.01, 38.75)

	require.NoError(t, c.MoveTo(loc))
	got, ok := c.Location()
	assert.True(t, ok)
	assert.InDelta(t, 9.01, got.Lat(), 1e-9)

	assert.ErrorIs(t, c.MoveTo(kernel.Location{}), kernel.ErrLocationIsNotConstructed)
	got, _ = c.Location()
	assert.InDelta(t, 9.01, got.Lat(), 1e-9)
}

func TestCourier_CanCarry(t *testing.T) {
	bike, _ := courier.NewCourier(kernel.NewUUID(), "Abebe", kernel.Motorbike)
	van, _ := courier.NewCourier(kernel.NewUUID(), "Kebede", kernel.Vehicle)

	assert.NoError(t, bike.CanCarry(kernel.Motorbike))
	assert.ErrorIs(t, bike.CanCarry(kernel.Vehicle), courier.ErrCannotCarry)
	assert.NoError(t, van.CanCarry(kernel.Vehicle))
	assert.NoError(t, van.CanCarry(kernel.Motorbike))
}

func TestRestoreCourier(t *testing.T) {
	id := kernel.NewUUID()
	loc, _ := kernel.NewLocation(9.02, 38.74)

	c, err := courier.RestoreCourier(id, "Abebe", kernel.Vehicle, &loc)

	require.NoError(t, err)
	assert.True(t, c.ID().IsEqual(id))
	_, ok := c.Location()
	assert.True(t, ok)

	bad := kernel.Location{}
	_, err = courier.RestoreCourier(id, "Abebe", kernel.Vehicle, &bad)
	assert.Error(t, err)
}
