package http

import (
	"strconv"
	"time"

	"mekina/internal/core/application/usecases/queries"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// QuotePoint is a quote endpoint. Either coordinate may be missing.
type QuotePoint struct {
	Lat *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
}

type Address struct {
	Lat  *float64 `json:"lat,omitempty" validate:"omitempty,latitude,required_with=Lng"`
	Lng  *float64 `json:"lng,omitempty" validate:"omitempty,longitude,required_with=Lat"`
	Text string   `json:"text,omitempty" validate:"max=500"`
}

type LineItem struct {
	ProductRef string          `json:"productRef" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gte=1"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type PlaceOrderRequest struct {
	ShopID          uuid.UUID  `json:"shopId" validate:"required"`
	SellerID        uuid.UUID  `json:"sellerId" validate:"required"`
	Items           []LineItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string     `json:"paymentMethod" validate:"required"`
	ReceiptRef      string     `json:"receiptRef"`
	DeliveryOption  string     `json:"deliveryOption" validate:"required,oneof=vehicle motorbike"`
	DeliveryAddress Address    `json:"deliveryAddress"`
}

type ChangeStatusRequest struct {
	Status             string `json:"status" validate:"required"`
	ProofOfDeliveryRef string `json:"proofOfDeliveryRef"`
}

type ProofOfDeliveryRequest struct {
	ProofOfDeliveryRef string `json:"proofOfDeliveryRef" validate:"required"`
}

type PaymentApprovalRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

type PaymentCallback struct {
	EventID string `json:"eventId" validate:"required"`
	TxRef   string `json:"txRef" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=pending success failed"`
}

type QuoteRequest struct {
	From           QuotePoint `json:"from"`
	To             QuotePoint `json:"to"`
	DeliveryOption string     `json:"deliveryOption" validate:"required,oneof=vehicle motorbike"`
}

type Quote struct {
	DeliveryOption string  `json:"deliveryOption"`
	DistanceKm     float64 `json:"distanceKm"`
	Fee            string  `json:"fee"`
}

type NewCourier struct {
	Name     string    `json:"name" validate:"required,max=255"`
	Vehicle  string    `json:"vehicle" validate:"required,oneof=vehicle motorbike"`
	Location *Location `json:"location,omitempty"`
}

type Courier struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Vehicle  string    `json:"vehicle"`
	Location *Location `json:"location,omitempty"`
}

type CourierCandidate struct {
	Courier    Courier  `json:"courier"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type NewShop struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Address Address `json:"address"`
}

type Shop struct {
	ID       uuid.UUID `json:"id"`
	SellerID uuid.UUID `json:"sellerId"`
	Name     string    `json:"name"`
	Address  Address   `json:"address"`
}

type Payment struct {
	Method         string `json:"method"`
	Status         string `json:"status"`
	ApprovalStatus string `json:"approvalStatus"`
	TxRef          string `json:"txRef,omitempty"`
	ReceiptRef     string `json:"receiptRef,omitempty"`
}

type OrderLineItem struct {
	ProductRef string `json:"productRef"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	Amount     string `json:"amount"`
}

type Order struct {
	ID                 uuid.UUID       `json:"id"`
	BuyerID            uuid.UUID       `json:"buyerId"`
	SellerID           uuid.UUID       `json:"sellerId"`
	ShopID             uuid.UUID       `json:"shopId"`
	Status             string          `json:"status"`
	Items              []OrderLineItem `json:"items"`
	Subtotal           string          `json:"subtotal"`
	DeliveryFee        *string         `json:"deliveryFee,omitempty"`
	Total              string          `json:"total"`
	Payment            Payment         `json:"payment"`
	DeliveryOption     string          `json:"deliveryOption"`
	DeliveryAddress    Address         `json:"deliveryAddress"`
	ShopAddress        *Address        `json:"shopAddress,omitempty"`
	CourierID          *uuid.UUID      `json:"courierId,omitempty"`
	ProofOfDeliveryRef string          `json:"proofOfDeliveryRef,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	Version            int             `json:"version"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toOrder(v queries.OrderView) Order {
	items := make([]OrderLineItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderLineItem{
			ProductRef: item.ProductRef,
			Quantity:   item.Quantity,
			UnitPrice:  money(item.UnitPrice),
			Amount:     money(item.Amount),
		})
	}

	out := Order{
		ID:       v.ID.Bytes(),
		BuyerID:  v.BuyerID.Bytes(),
		SellerID: v.SellerID.Bytes(),
		ShopID:   v.ShopID.Bytes(),
		Status:   v.Status.String(),
		Items:    items,
		Subtotal: money(v.Subtotal),
		Total:    money(v.Total),
		Payment: Payment{
			Method:         v.Payment.Method.String(),
			Status:         v.Payment.Status.String(),
			ApprovalStatus: v.Payment.ApprovalStatus.String(),
			TxRef:          v.Payment.TransactionRef,
			ReceiptRef:     v.Payment.ReceiptRef,
		},
		DeliveryOption:     v.DeliveryOption.String(),
		DeliveryAddress:    toAddress(v.DeliveryAddress),
		ProofOfDeliveryRef: v.ProofOfDeliveryRef,
		CreatedAt:          v.CreatedAt,
		Version:            v.Version,
	}

	if v.DeliveryFee != nil {
		fee := money(*v.DeliveryFee)
		out.DeliveryFee = &fee
	}
	if !v.ShopAddress.IsZero() {
		shop := toAddress(v.ShopAddress)
		out.ShopAddress = &shop
	}
	if v.CourierID != nil {
		id := v.CourierID.Bytes()
		out.CourierID = &id
	}

	return out
}

func toOrders(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, toOrder(v))
	}
	return out
}

func toAddress(a kernel.Address) Address {
	out := Address{Text: a.Text()}
	if loc, ok := a.Location(); ok {
		lat, lng := loc.Lat(), loc.Lng()
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}

func toLocation(loc *kernel.Location) *Location {
	if loc == nil {
		return nil
	}
	lat, lng := loc.Lat(), loc.Lng()
	return &Location{Lat: &lat, Lng: &lng}
}

func toCourier(v queries.CourierView) Courier {
	return Courier{
		ID:       v.ID.Bytes(),
		Name:     v.Name,
		Vehicle:  v.Vehicle.String(),
		Location: toLocation(v.Location),
	}
}

func toQuote(q services.Quote) Quote {
	return Quote{
		DeliveryOption: q.Option.String(),
		DistanceKm:     q.DistanceKm,
		Fee:            money(q.Fee),
	}
}

func (a Address) toDomain() (kernel.Address, error) {
	if a.Lat == nil || a.Lng == nil {
		return kernel.NewAddress(nil, a.Text)
	}

	loc, err := kernel.NewLocation(*a.Lat, *a.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(&loc, a.Text)
}

func (l Location) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(*l.Lat, *l.Lng)
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
