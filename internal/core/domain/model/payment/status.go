package payment

import (
	"fmt"

	"mekina/internal/pkg/errs"
)

// Status is the money axis of an order. It moves independently of the order lifecycle.
type Status int

const (
	UnknownStatus Status = iota
	Unpaid
	Pending
	Paid
	Failed
)

var statusNames = map[Status]string{
	Unpaid:  "unpaid",
	Pending: "pending",
	Paid:    "paid",
	Failed:  "failed",
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is unknown", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ApprovalStatus tracks the admin decision on a manual payment.
// It moves only from ApprovalPending to Approved or Rejected, never back.
type ApprovalStatus int

const (
	UnknownApproval ApprovalStatus = iota
	ApprovalNotRequired
	ApprovalPending
	Approved
	Rejected
)

var approvalNames = map[ApprovalStatus]string{
	ApprovalNotRequired: "not_required",
	ApprovalPending:     "pending",
	Approved:            "approved",
	Rejected:            "rejected",
}

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	for st, name := range approvalNames {
		if name == s {
			return st, nil
		}
	}
	return UnknownApproval, errs.NewValueIsInvalidErrorWithCause("payment approval status", fmt.Errorf("%q is unknown", s))
}

func (s ApprovalStatus) String() string {
	if name, ok := approvalNames[s]; ok {
		return name
	}
	return "unknown"
}

// GatewayResult is what the external gateway reports for a transaction reference.
type GatewayResult int

const (
	GatewayPending GatewayResult = iota
	GatewaySuccess
	GatewayFailed
)

var gatewayResultNames = map[GatewayResult]string{
	GatewayPending: "pending",
	GatewaySuccess: "success",
	GatewayFailed:  "failed",
}

// ParseGatewayResult accepts "pending", "success" and "failed".
func ParseGatewayResult(s string) (GatewayResult, error) {
	for r, name := range gatewayResultNames {
		if name == s {
			return r, nil
		}
	}
	return GatewayPending, errs.NewValueIsInvalidErrorWithCause("gateway status", fmt.Errorf("%q is unknown", s))
}

func (r GatewayResult) String() string {
	if name, ok := gatewayResultNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether the gateway has settled the transaction.
func (r GatewayResult) IsFinal() bool {
	return r == GatewaySuccess || r == GatewayFailed
}
