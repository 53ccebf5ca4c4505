package shop

import (
	"errors"
	"fmt"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

var (
	ErrShopIsNotConstructed = errors.New("shop must be created via NewShop or RestoreShop")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
	// ErrSellerMismatch is returned when an order names a seller that does not own the shop.
	ErrSellerMismatch = errs.NewValueIsInvalidErrorWithCause("sellerId", errors.New("seller does not own the shop"))
)

// Shop is a seller's storefront. Orders are placed against a shop, and the shop's
// address is where the courier picks the goods up.
type Shop struct {
	id       kernel.UUID
	sellerID kernel.UUID
	name     string
	address  kernel.Address
	guard    guard.ConstructorGuard
}

// NewShop registers a shop. address may be zero when the seller has not shared one.
func NewShop(id, sellerID kernel.UUID, name string, address kernel.Address) (*Shop, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}

	if err := errors.Join(
		field("id", id.Validate()),
		field("sellerId", sellerID.Validate()),
		nameErr,
	); err != nil {
		return nil, err
	}

	return &Shop{
		id:       id,
		sellerID: sellerID,
		name:     name,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreShop rebuilds a Shop from storage.
func RestoreShop(id, sellerID kernel.UUID, name string, address kernel.Address) (*Shop, error) {
	return NewShop(id, sellerID, name, address)
}

func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}
	return s.guard.Validate(ErrShopIsNotConstructed)
}

func (s *Shop) ID() kernel.UUID         { return s.id }
func (s *Shop) SellerID() kernel.UUID   { return s.sellerID }
func (s *Shop) Name() string            { return s.name }
func (s *Shop) Address() kernel.Address { return s.address }

// Location returns the shop coordinates and whether they are known.
func (s *Shop) Location() (kernel.Location, bool) {
	return s.address.Location()
}

// VerifySeller checks that sellerID owns the shop.
func (s *Shop) VerifySeller(sellerID kernel.UUID) error {
	if !s.sellerID.IsEqual(sellerID) {
		return ErrSellerMismatch
	}
	return nil
}

func field(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
