package commands

import (
	"errors"

	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a buyer checking out a cart against one shop.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(PlaceOrderParams{
//	    OrderID:        orderID,
//	    BuyerID:        buyerID,
//	    SellerID:       sellerID,
//	    ShopID:         shopID,
//	    Items:          items,
//	    PaymentMethod:  payment.Telebirr,
//	    DeliveryOption: kernel.Vehicle,
//	    Destination:    address,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	buyerID        kernel.UUID
	sellerID       kernel.UUID
	shopID         kernel.UUID
	cart           cart.Snapshot
	paymentMethod  payment.Method
	receiptRef     string
	deliveryOption kernel.DeliveryOption
	destination    kernel.Address

	guard guard.ConstructorGuard
}

// PlaceOrderParams groups the checkout input.
type PlaceOrderParams struct {
	OrderID        kernel.UUID
	BuyerID        kernel.UUID
	SellerID       kernel.UUID
	ShopID         kernel.UUID
	Items          []cart.LineItem
	PaymentMethod  payment.Method
	ReceiptRef     string
	DeliveryOption kernel.DeliveryOption
	Destination    kernel.Address
}

// NewPlaceOrderCommand validates the checkout input. The cart is frozen into a
// snapshot here, so later edits to p.Items do not reach the order.
func NewPlaceOrderCommand(p PlaceOrderParams) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		orderID:        p.OrderID,
		buyerID:        p.BuyerID,
		sellerID:       p.SellerID,
		shopID:         p.ShopID,
		paymentMethod:  p.PaymentMethod,
		receiptRef:     p.ReceiptRef,
		deliveryOption: p.DeliveryOption,
		destination:    p.Destination,
		guard:          guard.NewConstructorGuard(),
	}

	snapshot, cartErr := cart.NewSnapshot(p.Items)

	var destErr error
	if p.Destination.IsZero() {
		destErr = kernel.ErrAddressIsEmpty
	}

	if err := errors.Join(
		p.OrderID.Validate(),
		p.BuyerID.Validate(),
		p.SellerID.Validate(),
		p.ShopID.Validate(),
		cartErr,
		p.PaymentMethod.Validate(),
		p.DeliveryOption.Validate(),
		destErr,
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.cart = snapshot
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID                  { return c.orderID }
func (c PlaceOrderCommand) BuyerID() kernel.UUID                  { return c.buyerID }
func (c PlaceOrderCommand) SellerID() kernel.UUID                 { return c.sellerID }
func (c PlaceOrderCommand) ShopID() kernel.UUID                   { return c.shopID }
func (c PlaceOrderCommand) Cart() cart.Snapshot                   { return c.cart }
func (c PlaceOrderCommand) PaymentMethod() payment.Method         { return c.paymentMethod }
func (c PlaceOrderCommand) ReceiptRef() string                    { return c.receiptRef }
func (c PlaceOrderCommand) DeliveryOption() kernel.DeliveryOption { return c.deliveryOption }
func (c PlaceOrderCommand) Destination() kernel.Address           { return c.destination }
