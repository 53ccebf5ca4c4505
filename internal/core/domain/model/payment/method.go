package payment

import (
	"fmt"
	"strings"

	"mekina/internal/pkg/errs"
)

// Method is how the buyer pays.
//
// Gateway methods (chapa, telebirr) are settled by the external gateway and
// reconciled by transaction reference. Manual methods (cbe, bank_transfer) are
// settled by an admin looking at the uploaded receipt. Cash on delivery needs
// neither.
type Method int

const (
	UnknownMethod Method = iota
	Chapa
	Telebirr
	CBE
	BankTransfer
	CashOnDelivery
)

var methodNames = map[Method]string{
	Chapa:          "chapa",
	Telebirr:       "telebirr",
	CBE:            "cbe",
	BankTransfer:   "bank_transfer",
	CashOnDelivery: "cash_on_delivery",
}

// ParseMethod maps the wire name of a payment method to a Method.
func ParseMethod(s string) (Method, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for m, name := range methodNames {
		if name == normalized {
			return m, nil
		}
	}
	return UnknownMethod, errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
}

func (m Method) Validate() error {
	if _, ok := methodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not supported", m))
	}
	return nil
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

// IsGateway reports whether the method is settled by the external payment gateway.
func (m Method) IsGateway() bool {
	return m == Chapa || m == Telebirr
}

// RequiresApproval reports whether an admin must approve the payment.
func (m Method) RequiresApproval() bool {
	return m == CBE || m == BankTransfer
}
