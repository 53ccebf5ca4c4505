package commands

import (
	"errors"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var ErrCreateShopCommandIsNotConstructed = errors.New(
	"CreateShopCommand must be created via NewCreateShopCommand constructor",
)

// CreateShopCommand registers a seller's shop and its pickup address.
type CreateShopCommand struct { //nolint:recvcheck //using for validation
	shopID   kernel.UUID
	sellerID kernel.UUID
	name     string
	address  kernel.Address

	guard guard.ConstructorGuard
}

// NewCreateShopCommand validates the registration. address may be zero.
func NewCreateShopCommand(shopID, sellerID kernel.UUID, name string, address kernel.Address) (CreateShopCommand, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}

	if err := errors.Join(shopID.Validate(), sellerID.Validate(), nameErr); err != nil {
		return CreateShopCommand{}, err
	}

	return CreateShopCommand{
		shopID:   shopID,
		sellerID: sellerID,
		name:     name,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShopCommand) Validate() error {
	return c.guard.Validate(ErrCreateShopCommandIsNotConstructed)
}

func (c CreateShopCommand) ShopID() kernel.UUID     { return c.shopID }
func (c CreateShopCommand) SellerID() kernel.UUID   { return c.sellerID }
func (c CreateShopCommand) Name() string            { return c.name }
func (c CreateShopCommand) Address() kernel.Address { return c.address }
