// Package orderrepo maps order aggregates onto the orders and order_line_items tables.
package orderrepo

import (
	"time"

	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Line items live in their own table
// and never change after checkout.
type OrderDTO struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	BuyerID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	SellerID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShopID             uuid.UUID        `gorm:"type:uuid;not null"`
	Status             string           `gorm:"type:varchar(32);not null;index"`
	Items              []LineItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveryFee        *decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryOption     string           `gorm:"type:varchar(16);not null"`
	DeliveryAddress    AddressDTO       `gorm:"embedded;embeddedPrefix:delivery_"`
	ShopAddress        AddressDTO       `gorm:"embedded;embeddedPrefix:shop_"`
	Payment            PaymentDTO       `gorm:"embedded;embeddedPrefix:payment_"`
	CourierID          *uuid.UUID       `gorm:"type:uuid;index"`
	DeclinedBy         pq.StringArray   `gorm:"type:text[]"`
	ProofOfDeliveryRef string           `gorm:"type:varchar(255)"`
	CreatedAt          time.Time        `gorm:"not null;index"`
	Version            int              `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one product line of an order.
type LineItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey"`
	ProductRef string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// AddressDTO stores an address as optional coordinates plus free text.
type AddressDTO struct {
	Lat  *float64
	Lng  *float64
	Text string `gorm:"type:text"`
}

// PaymentDTO is the embedded payment record. A gateway transaction reference is
// unique across orders so callbacks resolve to exactly one row.
type PaymentDTO struct {
	Method         string  `gorm:"type:varchar(32);not null"`
	Status         string  `gorm:"type:varchar(16);not null"`
	ApprovalStatus string  `gorm:"type:varchar(16);not null"`
	TransactionRef *string `gorm:"type:varchar(64);uniqueIndex"`
	ReceiptRef     string  `gorm:"type:varchar(255)"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.State()

	items := make([]LineItemDTO, 0, s.Cart.Len())
	for i, item := range s.Cart.Items() {
		items = append(items, LineItemDTO{
			OrderID:    s.ID.Bytes(),
			Position:   i,
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	var courierID *uuid.UUID
	if s.CourierID != nil {
		raw := s.CourierID.Bytes()
		courierID = &raw
	}

	declined := make(pq.StringArray, 0, len(s.DeclinedBy))
	for _, id := range s.DeclinedBy {
		declined = append(declined, id.String())
	}

	var txRef *string
	if ref := s.Payment.TransactionRef(); ref != "" {
		txRef = &ref
	}

	return OrderDTO{
		ID:              s.ID.Bytes(),
		BuyerID:         s.BuyerID.Bytes(),
		SellerID:        s.SellerID.Bytes(),
		ShopID:          s.ShopID.Bytes(),
		Status:          s.Status.String(),
		Items:           items,
		DeliveryFee:     s.DeliveryFee,
		DeliveryOption:  s.DeliveryOption.String(),
		DeliveryAddress: addressFromDomain(s.DeliveryAddress),
		ShopAddress:     addressFromDomain(s.ShopAddress),
		Payment: PaymentDTO{
			Method:         s.Payment.Method().String(),
			Status:         s.Payment.Status().String(),
			ApprovalStatus: s.Payment.ApprovalStatus().String(),
			TransactionRef: txRef,
			ReceiptRef:     s.Payment.ReceiptRef(),
		},
		CourierID:          courierID,
		DeclinedBy:         declined,
		ProofOfDeliveryRef: s.ProofOfDeliveryRef,
		CreatedAt:          s.CreatedAt,
		Version:            s.Version,
	}
}

// mutableColumns lists what an order may change after checkout. Update writes
// exactly these, so zero values and NULLs are persisted too.
func (dto OrderDTO) mutableColumns() map[string]any {
	return map[string]any{
		"status":                  dto.Status,
		"payment_status":          dto.Payment.Status,
		"payment_approval_status": dto.Payment.ApprovalStatus,
		"payment_receipt_ref":     dto.Payment.ReceiptRef,
		"courier_id":              dto.CourierID,
		"declined_by":             dto.DeclinedBy,
		"proof_of_delivery_ref":   dto.ProofOfDeliveryRef,
		"version":                 dto.Version + 1,
	}
}

func addressFromDomain(a kernel.Address) AddressDTO {
	dto := AddressDTO{Text: a.Text()}
	if loc, ok := a.Location(); ok {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := parseUUIDs(dto.ID, dto.BuyerID, dto.SellerID, dto.ShopID)
	if err != nil {
		return nil, err
	}

	items := make([]cart.LineItem, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, itemErr := cart.NewLineItem(row.ProductRef, row.Quantity, row.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	snapshot, err := cart.NewSnapshot(items)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	option, err := kernel.ParseDeliveryOption(dto.DeliveryOption)
	if err != nil {
		return nil, err
	}
	record, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := addressToDomain(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	shopAddress, err := addressToDomain(dto.ShopAddress)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromGoogle(*dto.CourierID)
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	declined := make([]kernel.UUID, 0, len(dto.DeclinedBy))
	for _, raw := range dto.DeclinedBy {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		declined = append(declined, id)
	}

	return order.RestoreOrder(order.State{
		ID:                 ids[0],
		BuyerID:            ids[1],
		SellerID:           ids[2],
		ShopID:             ids[3],
		Cart:               snapshot,
		DeliveryFee:        dto.DeliveryFee,
		Status:             status,
		Payment:            record,
		DeliveryOption:     option,
		DeliveryAddress:    deliveryAddress,
		ShopAddress:        shopAddress,
		CreatedAt:          dto.CreatedAt,
		ProofOfDeliveryRef: dto.ProofOfDeliveryRef,
		CourierID:          courierID,
		DeclinedBy:         declined,
		Version:            dto.Version,
	})
}

func paymentToDomain(dto PaymentDTO) (payment.Record, error) {
	method, err := payment.ParseMethod(dto.Method)
	if err != nil {
		return payment.Record{}, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return payment.Record{}, err
	}
	approval, err := payment.ParseApprovalStatus(dto.ApprovalStatus)
	if err != nil {
		return payment.Record{}, err
	}

	var txRef string
	if dto.TransactionRef != nil {
		txRef = *dto.TransactionRef
	}

	return payment.RestoreRecord(method, status, approval, txRef, dto.ReceiptRef)
}

// addressToDomain maps an all-empty row back to the zero Address; the shop
// address of an order may legitimately be unknown.
func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	if dto.Lat == nil || dto.Lng == nil {
		if dto.Text == "" {
			return kernel.Address{}, nil
		}
		return kernel.NewAddress(nil, dto.Text)
	}

	loc, err := kernel.NewLocation(*dto.Lat, *dto.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(&loc, dto.Text)
}

func parseUUIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
