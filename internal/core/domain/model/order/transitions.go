package order

import "slices"

// Operation is a named lifecycle action.
type Operation int

const (
	UnknownOperation Operation = iota
	OpProcess
	OpCancel
	OpAccept
	OpReject
	OpHandover
	OpReceiveForDelivery
	OpMarkDelivered
	OpConfirmBuyerReceived
	OpConfirm
	OpApprovePayment
	OpRejectPayment
)

var operationNames = map[Operation]string{
	OpProcess:              "process",
	OpCancel:               "cancel",
	OpAccept:               "accept",
	OpReject:               "reject",
	OpHandover:             "handover",
	OpReceiveForDelivery:   "receive for delivery",
	OpMarkDelivered:        "mark delivered",
	OpConfirmBuyerReceived: "confirm buyer received",
	OpConfirm:              "confirm",
	OpApprovePayment:       "approve payment",
	OpRejectPayment:        "reject payment",
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown operation"
}

// rule is one row of the lifecycle table.
type rule struct {
	from  []Status
	to    Status
	roles []Role
}

// lifecycle is the single source of truth for who may move an order where.
// Reject keeps the order in Processing so another courier can take it.
var lifecycle = map[Operation]rule{
	OpProcess:              {from: []Status{Pending}, to: Processing, roles: []Role{RoleSeller, RoleAdmin}},
	OpCancel:               {from: []Status{Pending}, to: Cancelled, roles: []Role{RoleBuyer}},
	OpAccept:               {from: []Status{Processing}, to: DeliveryAccepted, roles: []Role{RoleCourier}},
	OpReject:               {from: []Status{Processing}, to: Processing, roles: []Role{RoleCourier}},
	OpHandover:             {from: []Status{DeliveryAccepted}, to: HandedOver, roles: []Role{RoleSeller}},
	OpReceiveForDelivery:   {from: []Status{HandedOver}, to: DeliveryReceived, roles: []Role{RoleCourier}},
	OpMarkDelivered:        {from: []Status{DeliveryReceived, HandedOver}, to: Delivered, roles: []Role{RoleCourier}},
	OpConfirmBuyerReceived: {from: []Status{Delivered}, to: BuyerReceived, roles: []Role{RoleBuyer}},
	OpConfirm:              {from: []Status{HandedOver, DeliveryReceived, BuyerReceived}, to: Confirmed, roles: []Role{RoleCourier, RoleAdmin}},
}

// targetOperations maps a requested target status to the operation that reaches it.
// Pending has no entry: nothing moves an order back to checkout.
var targetOperations = map[Status]Operation{
	Processing:       OpProcess,
	Cancelled:        OpCancel,
	DeliveryAccepted: OpAccept,
	HandedOver:       OpHandover,
	DeliveryReceived: OpReceiveForDelivery,
	Delivered:        OpMarkDelivered,
	BuyerReceived:    OpConfirmBuyerReceived,
	Confirmed:        OpConfirm,
}

// OperationFor returns the lifecycle operation that moves an order into target.
func OperationFor(target Status) (Operation, bool) {
	op, ok := targetOperations[target]
	return op, ok
}

// CanPerform reports whether role may run op on an order in status from,
// ignoring which particular buyer, seller or courier the order belongs to.
func CanPerform(op Operation, from Status, role Role) bool {
	r, ok := lifecycle[op]
	if !ok {
		return false
	}
	return slices.Contains(r.roles, role) && slices.Contains(r.from, from)
}
