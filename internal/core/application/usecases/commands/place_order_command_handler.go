package commands

import (
	"context"
	"errors"

	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/domain/services"
	"mekina/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PlaceOrderCommandHandler creates a Pending order.
//
// The handler resolves the shop, checks that the named seller owns it, prices the
// delivery when both ends have coordinates, and opens the payment record
// (generating the gateway transaction reference for chapa and telebirr).
// An unresolvable shop or seller is a validation error.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	quoter     services.DeliveryQuoter
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, quoter services.DeliveryQuoter) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		quoter:     quoter,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	txRef := ""
	if cmd.PaymentMethod().IsGateway() {
		txRef = payment.NewTransactionRef()
	}
	record, err := payment.NewRecord(cmd.PaymentMethod(), txRef, cmd.ReceiptRef())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shop, err := uow.ShopRepository().Get(ctx, cmd.ShopID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("shopId", err)
	}
	if err != nil {
		return err
	}

	if err = shop.VerifySeller(cmd.SellerID()); err != nil {
		return err
	}

	var fee *decimal.Decimal
	quote, err := h.quoter.Quote(shop.Address(), cmd.Destination(), cmd.DeliveryOption())
	switch {
	case err == nil:
		fee = &quote.Fee
	case !errors.Is(err, services.ErrQuoteUnavailable):
		return err
	}

	o, err := order.NewOrder(order.Draft{
		ID:              cmd.OrderID(),
		BuyerID:         cmd.BuyerID(),
		SellerID:        shop.SellerID(),
		ShopID:          shop.ID(),
		Cart:            cmd.Cart(),
		Payment:         record,
		DeliveryOption:  cmd.DeliveryOption(),
		DeliveryAddress: cmd.Destination(),
		ShopAddress:     shop.Address(),
		DeliveryFee:     fee,
	})
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
