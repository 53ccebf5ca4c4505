package kernel

import (
	"strings"

	"mekina/internal/pkg/errs"
)

// ErrAddressIsEmpty is returned when neither coordinates nor a street text is given.
var ErrAddressIsEmpty = errs.NewValueIsRequiredError("address coordinates or text")

// Address is where goods are picked up or dropped off: a coordinate pair when the
// buyer shared one, and a free-text street description as a fallback.
// At least one of the two is always present.
type Address struct {
	location *Location
	text     string
}

// NewAddress builds an Address. location may be nil when only text is known.
func NewAddress(location *Location, text string) (Address, error) {
	text = strings.TrimSpace(text)

	if location != nil {
		if err := location.Validate(); err != nil {
			return Address{}, err
		}
		loc := *location
		location = &loc
	}

	if location == nil && text == "" {
		return Address{}, ErrAddressIsEmpty
	}

	return Address{location: location, text: text}, nil
}

// Location returns the coordinates and whether they are known.
func (a Address) Location() (Location, bool) {
	if a.location == nil {
		return Location{}, false
	}
	return *a.location, true
}

// Text returns the street description, possibly empty.
func (a Address) Text() string {
	return a.text
}

// IsZero reports whether the Address was never constructed.
func (a Address) IsZero() bool {
	return a.location == nil && a.text == ""
}
