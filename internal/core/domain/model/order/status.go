package order

import (
	"fmt"
	"strings"

	"mekina/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──> DeliveryAccepted ──> HandedOver ──> DeliveryReceived ──> Delivered ──> BuyerReceived ──> Confirmed
//	   │            │ ▲                                 │  │              │                                 │
//	   │            └─┘ (courier reject)                │  └──> Delivered │                                 │
//	   │                                                └──────────────> Confirmed <─────────────────────────┘
//	   └──> Cancelled
//
// Confirmed and Cancelled are terminal. The rules for who may move an order
// along which edge live in the transition table (transitions.go).
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the state right after checkout. The buyer may still cancel.
	Pending

	// Processing means the shop took the order and is preparing it; couriers are offered the job.
	Processing

	// DeliveryAccepted means exactly one courier has bound itself to the order.
	DeliveryAccepted

	// HandedOver means the shop gave the goods to the courier.
	HandedOver

	// DeliveryReceived means the courier confirmed pickup and is on the way ("in_transit").
	DeliveryReceived

	// Delivered means the courier dropped off the goods and attached a proof of delivery.
	Delivered

	// BuyerReceived means the buyer acknowledged receipt.
	BuyerReceived

	// Confirmed closes the order.
	Confirmed

	// Cancelled is the buyer's exit while the order is still Pending.
	Cancelled
)

// inTransitAlias is the name some clients use for DeliveryReceived.
const inTransitAlias = "in_transit"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		Processing:       "processing",
		DeliveryAccepted: "delivery_accepted",
		HandedOver:       "handedover",
		DeliveryReceived: "deliveryreceived",
		Delivered:        "delivered",
		BuyerReceived:    "buyerreceived",
		Confirmed:        "confirmed",
		Cancelled:        "cancelled",
	}
}

// ParseStatus maps a stored or wire name to a Status. "in_transit" is accepted as
// an alias of "deliveryreceived".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == inTransitAlias {
		return DeliveryReceived, nil
	}

	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and values outside the declared set.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further lifecycle transitions exist.
func (s Status) IsTerminal() bool {
	return s == Confirmed || s == Cancelled
}

// IsActive reports whether the order still needs work from someone.
func (s Status) IsActive() bool {
	return s != Unknown && !s.IsTerminal()
}
