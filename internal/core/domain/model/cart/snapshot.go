package cart

import (
	"errors"
	"fmt"
	"slices"

	"mekina/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCartIsEmpty is returned when an order is placed without any line items.
var ErrCartIsEmpty = errs.NewValueIsRequiredError("cart line items")

// Snapshot is the immutable cart captured when the buyer checks out. Later edits to
// the live cart never reach an order that already holds a Snapshot.
type Snapshot struct {
	items []LineItem
}

// NewSnapshot copies items and rejects an empty or partially constructed cart.
func NewSnapshot(items []LineItem) (Snapshot, error) {
	if len(items) == 0 {
		return Snapshot{}, ErrCartIsEmpty
	}

	var problems []error
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("line %d: %w", idx, err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{items: slices.Clone(items)}, nil
}

// Items returns a copy of the line items in checkout order.
func (s Snapshot) Items() []LineItem {
	return slices.Clone(s.items)
}

func (s Snapshot) Len() int {
	return len(s.items)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.items) == 0
}

// Subtotal is sum(quantity * unitPrice) across all lines.
func (s Snapshot) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Amount())
	}
	return total
}
