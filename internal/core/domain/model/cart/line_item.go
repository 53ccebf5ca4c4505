package cart

import (
	"errors"
	"fmt"
	"strings"

	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a zero-value LineItem is used.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is one product line captured at checkout: which part, how many, at what price.
type LineItem struct {
	productRef string
	quantity   int
	unitPrice  decimal.Decimal
	guard      guard.ConstructorGuard
}

// NewLineItem validates a line: productRef must be non-blank, quantity >= 1 and
// unitPrice >= 0.
func NewLineItem(productRef string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductRef(productRef),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductRef() string {
	return i.productRef
}

func (i LineItem) Quantity() int {
	return i.quantity
}

func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Amount is quantity * unitPrice.
func (i LineItem) Amount() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *LineItem) setProductRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("productRef")
	}
	i.productRef = ref
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", price))
	}
	i.unitPrice = price
	return nil
}
