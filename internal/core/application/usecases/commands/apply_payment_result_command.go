package commands

import (
	"errors"
	"strings"

	"mekina/internal/core/domain/model/payment"
	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

var ErrApplyPaymentResultCommandIsNotConstructed = errors.New(
	"ApplyPaymentResultCommand must be created via NewApplyPaymentResultCommand constructor",
)

// ApplyPaymentResultCommand carries a gateway callback: which transaction, what
// outcome, and the gateway's event id used to drop duplicate deliveries.
type ApplyPaymentResultCommand struct { //nolint:recvcheck //using for validation
	eventID        string
	transactionRef string
	result         payment.GatewayResult

	guard guard.ConstructorGuard
}

func NewApplyPaymentResultCommand(
	eventID, transactionRef string,
	result payment.GatewayResult,
) (ApplyPaymentResultCommand, error) {
	eventID = strings.TrimSpace(eventID)
	transactionRef = strings.TrimSpace(transactionRef)

	var problems []error
	if eventID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("eventId"))
	}
	if transactionRef == "" {
		problems = append(problems, errs.NewValueIsRequiredError("txRef"))
	}
	if err := errors.Join(problems...); err != nil {
		return ApplyPaymentResultCommand{}, err
	}

	return ApplyPaymentResultCommand{
		eventID:        eventID,
		transactionRef: transactionRef,
		result:         result,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPaymentResultCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentResultCommandIsNotConstructed)
}

func (c ApplyPaymentResultCommand) EventID() string               { return c.eventID }
func (c ApplyPaymentResultCommand) TransactionRef() string        { return c.transactionRef }
func (c ApplyPaymentResultCommand) Result() payment.GatewayResult { return c.result }
