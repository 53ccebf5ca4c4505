package kernel

import (
	"fmt"
	"strings"

	"mekina/internal/pkg/errs"
)

// DeliveryOption is the courier mode a buyer picks at checkout. It drives the fee
// schedule and which couriers may take the order.
type DeliveryOption int

const (
	UnknownDeliveryOption DeliveryOption = iota
	Vehicle
	Motorbike
)

var deliveryOptionNames = map[DeliveryOption]string{
	Vehicle:   "vehicle",
	Motorbike: "motorbike",
}

// ParseDeliveryOption maps "vehicle" or "motorbike" (case-insensitive) to a DeliveryOption.
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for option, name := range deliveryOptionNames {
		if name == normalized {
			return option, nil
		}
	}
	return UnknownDeliveryOption, errs.NewValueIsInvalidErrorWithCause(
		"delivery option", fmt.Errorf("%q is not one of vehicle, motorbike", s))
}

// Validate rejects UnknownDeliveryOption and out-of-range values.
func (o DeliveryOption) Validate() error {
	if _, ok := deliveryOptionNames[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery option", fmt.Errorf("%d is not a valid delivery option", o))
	}
	return nil
}

func (o DeliveryOption) String() string {
	if name, ok := deliveryOptionNames[o]; ok {
		return name
	}
	return "unknown"
}
