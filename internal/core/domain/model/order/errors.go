package order

import (
	"errors"
	"fmt"

	"mekina/internal/pkg/errs"
)

var (
	// ErrIllegalTransition is the sentinel every IllegalTransitionError unwraps to.
	ErrIllegalTransition = errors.New("illegal order transition")

	// ErrProofOfDeliveryRequired is the reason a delivery without proof is refused.
	ErrProofOfDeliveryRequired = errors.New("proof of delivery is required")

	// ErrActorNotPermitted is the reason an operation is refused because of who asked.
	ErrActorNotPermitted = errors.New("actor is not permitted to perform this operation")

	// ErrAlreadyAssigned is returned when a courier tries to accept an order bound to another courier.
	// It is a kind of concurrency conflict.
	ErrAlreadyAssigned = fmt.Errorf("%w: order is already assigned to another courier", errs.ErrConcurrencyConflict)

	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")
)

// IllegalTransitionError reports an operation the lifecycle does not allow from the
// current state, or for the acting role. The order is left unchanged.
//
// It matches ErrIllegalTransition with errors.Is, and Reason as well when set:
//
//	if errors.Is(err, order.ErrProofOfDeliveryRequired) {
//	    // ask the courier for a photo
//	}
type IllegalTransitionError struct {
	From      Status
	Operation Operation
	Role      Role
	Reason    error
}

func newIllegalTransition(from Status, op Operation, role Role, reason error) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, Operation: op, Role: role, Reason: reason}
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s from %s as %s", ErrIllegalTransition, e.Operation, e.From, e.Role)
	if e.Reason != nil {
		msg += " (" + e.Reason.Error() + ")"
	}
	return msg
}

func (e *IllegalTransitionError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrIllegalTransition}
	}
	return []error{ErrIllegalTransition, e.Reason}
}
