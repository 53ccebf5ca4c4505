package queries

import (
	"time"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID                 kernel.UUID
	BuyerID            kernel.UUID
	SellerID           kernel.UUID
	ShopID             kernel.UUID
	Status             order.Status
	Items              []LineItemView
	Subtotal           decimal.Decimal
	DeliveryFee        *decimal.Decimal
	Total              decimal.Decimal
	Payment            PaymentView
	DeliveryOption     kernel.DeliveryOption
	DeliveryAddress    kernel.Address
	ShopAddress        kernel.Address
	CourierID          *kernel.UUID
	ProofOfDeliveryRef string
	CreatedAt          time.Time
	Version            int
}

type LineItemView struct {
	ProductRef string
	Quantity   int
	UnitPrice  decimal.Decimal
	Amount     decimal.Decimal
}

type PaymentView struct {
	Method         payment.Method
	Status         payment.Status
	ApprovalStatus payment.ApprovalStatus
	TransactionRef string
	ReceiptRef     string
}

// NewOrderView flattens an order aggregate.
func NewOrderView(o *order.Order) OrderView {
	items := o.Items().Items()
	lines := make([]LineItemView, 0, len(items))
	for _, it := range items {
		lines = append(lines, LineItemView{
			ProductRef: it.ProductRef(),
			Quantity:   it.Quantity(),
			UnitPrice:  it.UnitPrice(),
			Amount:     it.Amount(),
		})
	}

	var fee *decimal.Decimal
	if f, ok := o.DeliveryFee(); ok {
		fee = &f
	}

	p := o.Payment()
	return OrderView{
		ID:          o.ID(),
		BuyerID:     o.BuyerID(),
		SellerID:    o.SellerID(),
		ShopID:      o.ShopID(),
		Status:      o.Status(),
		Items:       lines,
		Subtotal:    o.Subtotal(),
		DeliveryFee: fee,
		Total:       o.Total(),
		Payment: PaymentView{
			Method:         p.Method(),
			Status:         p.Status(),
			ApprovalStatus: p.ApprovalStatus(),
			TransactionRef: p.TransactionRef(),
			ReceiptRef:     p.ReceiptRef(),
		},
		DeliveryOption:     o.DeliveryOption(),
		DeliveryAddress:    o.DeliveryAddress(),
		ShopAddress:        o.ShopAddress(),
		CourierID:          o.Courier(),
		ProofOfDeliveryRef: o.ProofOfDeliveryRef(),
		CreatedAt:          o.CreatedAt(),
		Version:            o.Version(),
	}
}
