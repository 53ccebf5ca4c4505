package payment

import (
	"errors"
	"fmt"
	"strings"

	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"

	"github.com/lithammer/shortuuid/v4"
)

var (
	// ErrAlreadyResolved is returned when a payment decision was already made.
	ErrAlreadyResolved = errors.New("payment is already resolved")

	// ErrNotManual is returned when approval is requested for a method that has no approval step.
	ErrNotManual = errors.New("payment method does not require approval")

	// ErrNotGateway is returned when a gateway result is applied to a non-gateway payment.
	ErrNotGateway = errors.New("payment method is not settled by the gateway")

	ErrRecordIsNotConstructed = errs.NewValueIsRequiredError("payment record must be created via NewRecord or RestoreRecord")
)

const txRefPrefix = "mk-"

// NewTransactionRef generates a short, URL-safe reference handed to the gateway as tx_ref.
func NewTransactionRef() string {
	return txRefPrefix + shortuuid.New()
}

// Record is the payment sub-record of an order.
type Record struct {
	method         Method
	status         Status
	approval       ApprovalStatus
	transactionRef string
	receiptRef     string
	guard          guard.ConstructorGuard
}

// NewRecord starts the payment of a freshly placed order.
//
//   - gateway methods need a transactionRef and start Pending with no approval step
//   - manual methods start Pending with approval Pending; receiptRef is optional at placement
//   - cash on delivery starts Unpaid with no approval step
func NewRecord(method Method, transactionRef, receiptRef string) (Record, error) {
	if err := method.Validate(); err != nil {
		return Record{}, err
	}

	r := Record{
		method:         method,
		transactionRef: strings.TrimSpace(transactionRef),
		receiptRef:     strings.TrimSpace(receiptRef),
		guard:          guard.NewConstructorGuard(),
	}

	switch {
	case method.IsGateway():
		if r.transactionRef == "" {
			return Record{}, errs.NewValueIsRequiredError("transactionRef")
		}
		r.status = Pending
		r.approval = ApprovalNotRequired
	case method.RequiresApproval():
		r.status = Pending
		r.approval = ApprovalPending
	default:
		r.status = Unpaid
		r.approval = ApprovalNotRequired
	}

	return r, nil
}

// RestoreRecord rebuilds a Record from storage without replaying placement rules.
func RestoreRecord(method Method, status Status, approval ApprovalStatus, transactionRef, receiptRef string) (Record, error) {
	if err := method.Validate(); err != nil {
		return Record{}, err
	}
	if _, ok := statusNames[status]; !ok {
		return Record{}, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is unknown", status))
	}
	if _, ok := approvalNames[approval]; !ok {
		return Record{}, errs.NewValueIsInvalidErrorWithCause("payment approval status", fmt.Errorf("%d is unknown", approval))
	}

	return Record{
		method:         method,
		status:         status,
		approval:       approval,
		transactionRef: transactionRef,
		receiptRef:     receiptRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r Record) Method() Method                 { return r.method }
func (r Record) Status() Status                 { return r.status }
func (r Record) ApprovalStatus() ApprovalStatus { return r.approval }
func (r Record) TransactionRef() string         { return r.transactionRef }
func (r Record) ReceiptRef() string             { return r.receiptRef }

// AwaitsGateway reports whether the gateway still owes a final answer.
func (r Record) AwaitsGateway() bool {
	return r.method.IsGateway() && r.status == Pending
}

// Approve settles a manual payment. It returns a new Record; the receiver is unchanged.
func (r Record) Approve() (Record, error) {
	if err := r.checkApprovable(); err != nil {
		return r, err
	}
	r.approval = Approved
	r.status = Paid
	return r, nil
}

// Reject declines a manual payment. The money was never received, so the
// payment goes back to Unpaid.
func (r Record) Reject() (Record, error) {
	if err := r.checkApprovable(); err != nil {
		return r, err
	}
	r.approval = Rejected
	r.status = Unpaid
	return r, nil
}

// ApplyGatewayResult moves a gateway payment to Paid or Failed. A GatewayPending
// result leaves the record unchanged.
func (r Record) ApplyGatewayResult(result GatewayResult) (Record, error) {
	if !r.method.IsGateway() {
		return r, ErrNotGateway
	}
	if r.status != Pending {
		return r, fmt.Errorf("%w: payment is %s", ErrAlreadyResolved, r.status)
	}

	switch result {
	case GatewaySuccess:
		r.status = Paid
	case GatewayFailed:
		r.status = Failed
	case GatewayPending:
	}
	return r, nil
}

func (r Record) checkApprovable() error {
	if !r.method.RequiresApproval() {
		return ErrNotManual
	}
	if r.approval != ApprovalPending {
		return fmt.Errorf("%w: approval is %s", ErrAlreadyResolved, r.approval)
	}
	return nil
}
