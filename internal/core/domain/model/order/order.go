package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root of the marketplace. It owns the lifecycle status,
// the cart snapshot the buyer checked out, the payment sub-record, and the courier
// bound to the delivery.
//
// Order follows these invariants:
//   - Total is always Subtotal + DeliveryFee and is never set from outside
//   - Status only changes through the lifecycle table, by a permitted actor
//   - At most one courier is bound, and only from DeliveryAccepted onward
//   - ProofOfDeliveryRef is set exactly when the order reaches Delivered
//   - A failed operation leaves the order unchanged
//
// Version is the optimistic concurrency counter. Repositories compare it on every
// write and bump it through CommitVersion.
type Order struct {
	id       kernel.UUID
	buyerID  kernel.UUID
	sellerID kernel.UUID
	shopID   kernel.UUID

	items       cart.Snapshot
	deliveryFee *decimal.Decimal

	status  Status
	payment payment.Record

	deliveryOption  kernel.DeliveryOption
	deliveryAddress kernel.Address
	shopAddress     kernel.Address

	createdAt          time.Time
	proofOfDeliveryRef string

	courierID  *kernel.UUID
	declinedBy []kernel.UUID

	version int
	events  []Event

	isConstructed bool
}

// Draft carries everything checkout knows about a new order.
type Draft struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	SellerID        kernel.UUID
	ShopID          kernel.UUID
	Cart            cart.Snapshot
	Payment         payment.Record
	DeliveryOption  kernel.DeliveryOption
	DeliveryAddress kernel.Address
	// ShopAddress may be zero when the shop never shared where it is.
	ShopAddress kernel.Address
	// DeliveryFee is nil when no quote could be computed.
	DeliveryFee *decimal.Decimal
}

// NewOrder places an order. It starts Pending, with the creation time set to now,
// and records an EventPlaced.
//
// Example:
//
//	o, err := order.NewOrder(order.Draft{
//	    ID:              kernel.NewUUID(),
//	    BuyerID:         buyerID,
//	    SellerID:        shop.SellerID(),
//	    ShopID:          shop.ID(),
//	    Cart:            snapshot,
//	    Payment:         record,
//	    DeliveryOption:  kernel.Vehicle,
//	    DeliveryAddress: address,
//	})
func NewOrder(d Draft) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(d.ID, d.BuyerID, d.SellerID, d.ShopID),
		o.setItems(d.Cart),
		o.setPayment(d.Payment),
		o.setDeliveryOption(d.DeliveryOption),
		o.setDeliveryAddress(d.DeliveryAddress),
		o.setDeliveryFee(d.DeliveryFee),
	); err != nil {
		return nil, err
	}
	o.shopAddress = d.ShopAddress

	buyer, _ := NewActor(RoleBuyer, d.BuyerID)
	o.record(Event{Name: EventPlaced, To: Pending, Actor: buyer})

	return o, nil
}

// State is the full persisted form of an Order, used by repositories to save and
// restore the aggregate.
type State struct {
	ID                 kernel.UUID
	BuyerID            kernel.UUID
	SellerID           kernel.UUID
	ShopID             kernel.UUID
	Cart               cart.Snapshot
	DeliveryFee        *decimal.Decimal
	Status             Status
	Payment            payment.Record
	DeliveryOption     kernel.DeliveryOption
	DeliveryAddress    kernel.Address
	ShopAddress        kernel.Address
	CreatedAt          time.Time
	ProofOfDeliveryRef string
	CourierID          *kernel.UUID
	DeclinedBy         []kernel.UUID
	Version            int
}

// RestoreOrder rebuilds an Order from persistence. It validates shape, not history:
// the status may be any valid lifecycle state, and no events are recorded.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		createdAt:          s.CreatedAt,
		proofOfDeliveryRef: s.ProofOfDeliveryRef,
		shopAddress:        s.ShopAddress,
		declinedBy:         slices.Clone(s.DeclinedBy),
		version:            s.Version,
		isConstructed:      true,
	}

	var courierErr error
	if s.CourierID != nil {
		courierErr = s.CourierID.Validate()
		id := *s.CourierID
		o.courierID = &id
	}

	if err := errors.Join(
		o.setIDs(s.ID, s.BuyerID, s.SellerID, s.ShopID),
		o.setItems(s.Cart),
		o.setPayment(s.Payment),
		o.setDeliveryOption(s.DeliveryOption),
		o.setDeliveryAddress(s.DeliveryAddress),
		o.setDeliveryFee(s.DeliveryFee),
		s.Status.Validate(),
		courierErr,
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	return o, nil
}

// State exports a copy of the aggregate for persistence.
func (o *Order) State() State {
	var courierID *kernel.UUID
	if o.courierID != nil {
		id := *o.courierID
		courierID = &id
	}
	var fee *decimal.Decimal
	if o.deliveryFee != nil {
		f := *o.deliveryFee
		fee = &f
	}

	return State{
		ID:                 o.id,
		BuyerID:            o.buyerID,
		SellerID:           o.sellerID,
		ShopID:             o.shopID,
		Cart:               o.items,
		DeliveryFee:        fee,
		Status:             o.status,
		Payment:            o.payment,
		DeliveryOption:     o.deliveryOption,
		DeliveryAddress:    o.deliveryAddress,
		ShopAddress:        o.shopAddress,
		CreatedAt:          o.createdAt,
		ProofOfDeliveryRef: o.proofOfDeliveryRef,
		CourierID:          courierID,
		DeclinedBy:         slices.Clone(o.declinedBy),
		Version:            o.version,
	}
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                       { return o.id }
func (o *Order) BuyerID() kernel.UUID                  { return o.buyerID }
func (o *Order) SellerID() kernel.UUID                 { return o.sellerID }
func (o *Order) ShopID() kernel.UUID                   { return o.shopID }
func (o *Order) Items() cart.Snapshot                  { return o.items }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) Payment() payment.Record               { return o.payment }
func (o *Order) DeliveryOption() kernel.DeliveryOption { return o.deliveryOption }
func (o *Order) DeliveryAddress() kernel.Address       { return o.deliveryAddress }
func (o *Order) ShopAddress() kernel.Address           { return o.shopAddress }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) ProofOfDeliveryRef() string            { return o.proofOfDeliveryRef }
func (o *Order) Version() int                          { return o.version }

// DeliveryFee returns the fee and whether one was quoted.
func (o *Order) DeliveryFee() (decimal.Decimal, bool) {
	if o.deliveryFee == nil {
		return decimal.Zero, false
	}
	return *o.deliveryFee, true
}

// Subtotal is the cart value without delivery.
func (o *Order) Subtotal() decimal.Decimal {
	return o.items.Subtotal()
}

// Total is sum(quantity * unitPrice) plus the delivery fee when there is one.
func (o *Order) Total() decimal.Decimal {
	fee, _ := o.DeliveryFee()
	return o.items.Subtotal().Add(fee)
}

// Courier returns the bound courier, or nil before acceptance.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// DeclinedBy lists couriers that rejected the offer, oldest first.
func (o *Order) DeclinedBy() []kernel.UUID {
	return slices.Clone(o.declinedBy)
}

// Events returns the events recorded since the last ClearEvents.
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// ClearEvents drops recorded events once they were handed to the publisher.
func (o *Order) ClearEvents() {
	o.events = nil
}

// CommitVersion advances the version after a repository wrote the aggregate.
func (o *Order) CommitVersion() {
	o.version++
}

// Process moves a Pending order to Processing. Seller (of this order) or admin.
func (o *Order) Process(actor Actor) error {
	return o.transition(OpProcess, actor)
}

// Cancel moves a Pending order to Cancelled. Only the order's buyer may cancel.
func (o *Order) Cancel(actor Actor) error {
	return o.transition(OpCancel, actor)
}

// Accept binds the acting courier and moves the order to DeliveryAccepted.
//
// A courier arriving after another one already won gets ErrAlreadyAssigned, which
// is a concurrency conflict rather than an illegal transition: the request was
// valid when the courier saw the offer.
func (o *Order) Accept(actor Actor) error {
	if o.courierID != nil && actor.Role() == RoleCourier && !o.courierID.IsEqual(actor.ID()) {
		return ErrAlreadyAssigned
	}

	if err := o.check(OpAccept, actor); err != nil {
		return err
	}

	id := actor.ID()
	o.courierID = &id
	o.move(OpAccept, actor)
	return nil
}

// Reject records that the acting courier declined the offer. The order stays
// Processing and unassigned so other couriers can accept it.
func (o *Order) Reject(actor Actor) error {
	if err := o.check(OpReject, actor); err != nil {
		return err
	}

	if !slices.ContainsFunc(o.declinedBy, actor.ID().IsEqual) {
		o.declinedBy = append(o.declinedBy, actor.ID())
	}
	o.record(Event{Name: EventCourierDeclined, From: o.status, To: o.status, Operation: OpReject, Actor: actor})
	return nil
}

// Handover moves the order to HandedOver when the seller gives the goods to the courier.
func (o *Order) Handover(actor Actor) error {
	return o.transition(OpHandover, actor)
}

// ReceiveForDelivery moves the order to DeliveryReceived ("in_transit").
func (o *Order) ReceiveForDelivery(actor Actor) error {
	return o.transition(OpReceiveForDelivery, actor)
}

// MarkDelivered moves the order to Delivered. proofRef must be non-blank;
// otherwise an IllegalTransitionError with ErrProofOfDeliveryRequired is returned.
func (o *Order) MarkDelivered(actor Actor, proofRef string) error {
	if err := o.check(OpMarkDelivered, actor); err != nil {
		return err
	}

	proofRef = strings.TrimSpace(proofRef)
	if proofRef == "" {
		return newIllegalTransition(o.status, OpMarkDelivered, actor.Role(), ErrProofOfDeliveryRequired)
	}

	o.proofOfDeliveryRef = proofRef
	o.move(OpMarkDelivered, actor)
	return nil
}

// ConfirmBuyerReceived moves the order to BuyerReceived.
func (o *Order) ConfirmBuyerReceived(actor Actor) error {
	return o.transition(OpConfirmBuyerReceived, actor)
}

// Confirm closes the order.
func (o *Order) Confirm(actor Actor) error {
	return o.transition(OpConfirm, actor)
}

// TransitionTo runs whichever operation leads to target. It backs the generic
// status endpoint; proofRef is only used when target is Delivered.
func (o *Order) TransitionTo(target Status, actor Actor, proofRef string) error {
	op, ok := OperationFor(target)
	if !ok {
		return newIllegalTransition(o.status, UnknownOperation, actor.Role(),
			fmt.Errorf("no operation leads to %s", target))
	}

	switch op {
	case OpAccept:
		return o.Accept(actor)
	case OpMarkDelivered:
		return o.MarkDelivered(actor, proofRef)
	default:
		return o.transition(op, actor)
	}
}

// ApprovePayment settles a manual payment. Admin only.
func (o *Order) ApprovePayment(actor Actor) error {
	return o.decidePayment(OpApprovePayment, actor, payment.Record.Approve)
}

// RejectPayment declines a manual payment. Admin only.
func (o *Order) RejectPayment(actor Actor) error {
	return o.decidePayment(OpRejectPayment, actor, payment.Record.Reject)
}

// ApplyGatewayResult records the gateway's answer for this order's transaction.
// A pending result is a no-op and records nothing.
func (o *Order) ApplyGatewayResult(result payment.GatewayResult) error {
	updated, err := o.payment.ApplyGatewayResult(result)
	if err != nil {
		return err
	}
	if updated.Status() == o.payment.Status() {
		return nil
	}

	o.payment = updated
	o.recordPayment(SystemActor(), UnknownOperation)
	return nil
}

func (o *Order) decidePayment(op Operation, actor Actor, decide func(payment.Record) (payment.Record, error)) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != RoleAdmin {
		return newIllegalTransition(o.status, op, actor.Role(), ErrActorNotPermitted)
	}

	updated, err := decide(o.payment)
	if err != nil {
		return err
	}

	o.payment = updated
	o.recordPayment(actor, op)
	return nil
}

func (o *Order) transition(op Operation, actor Actor) error {
	if err := o.check(op, actor); err != nil {
		return err
	}
	o.move(op, actor)
	return nil
}

// check validates the actor, the lifecycle row and ownership without mutating anything.
func (o *Order) check(op Operation, actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	r, ok := lifecycle[op]
	if !ok {
		return newIllegalTransition(o.status, op, actor.Role(), nil)
	}
	if !slices.Contains(r.roles, actor.Role()) {
		return newIllegalTransition(o.status, op, actor.Role(), ErrActorNotPermitted)
	}
	if !slices.Contains(r.from, o.status) {
		return newIllegalTransition(o.status, op, actor.Role(), nil)
	}

	return o.checkOwnership(op, actor)
}

func (o *Order) checkOwnership(op Operation, actor Actor) error {
	var owner *kernel.UUID

	switch actor.Role() {
	case RoleBuyer:
		owner = &o.buyerID
	case RoleSeller:
		owner = &o.sellerID
	case RoleCourier:
		// Any courier may be offered an unassigned order.
		if op == OpAccept || op == OpReject {
			return nil
		}
		owner = o.courierID
	case RoleAdmin, RoleSystem, UnknownRole:
		return nil
	}

	if owner == nil || !owner.IsEqual(actor.ID()) {
		return newIllegalTransition(o.status, op, actor.Role(),
			fmt.Errorf("%w: %s does not own this order", ErrActorNotPermitted, actor))
	}
	return nil
}

func (o *Order) move(op Operation, actor Actor) {
	from := o.status
	o.status = lifecycle[op].to
	o.record(Event{Name: EventStatusChanged, From: from, To: o.status, Operation: op, Actor: actor})
}

func (o *Order) recordPayment(actor Actor, op Operation) {
	o.record(Event{
		Name:      EventPaymentUpdated,
		From:      o.status,
		To:        o.status,
		Operation: op,
		Actor:     actor,
	})
}

func (o *Order) record(e Event) {
	e.OrderID = o.id
	e.Payment = o.payment.Status()
	e.Approval = o.payment.ApprovalStatus()
	e.OccurredAt = time.Now().UTC()
	o.events = append(o.events, e)
}

func (o *Order) setIDs(id, buyerID, sellerID, shopID kernel.UUID) error {
	if err := errors.Join(
		wrapField("id", id.Validate()),
		wrapField("buyerId", buyerID.Validate()),
		wrapField("sellerId", sellerID.Validate()),
		wrapField("shopId", shopID.Validate()),
	); err != nil {
		return err
	}
	o.id, o.buyerID, o.sellerID, o.shopID = id, buyerID, sellerID, shopID
	return nil
}

func (o *Order) setItems(items cart.Snapshot) error {
	if items.IsEmpty() {
		return cart.ErrCartIsEmpty
	}
	o.items = items
	return nil
}

func (o *Order) setPayment(record payment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	o.payment = record
	return nil
}

func (o *Order) setDeliveryOption(option kernel.DeliveryOption) error {
	if err := option.Validate(); err != nil {
		return err
	}
	o.deliveryOption = option
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if address.IsZero() {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setDeliveryFee(fee *decimal.Decimal) error {
	if fee == nil {
		return nil
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%s is negative", fee))
	}
	f := *fee
	o.deliveryFee = &f
	return nil
}

func wrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
