package order

import (
	"fmt"
	"strings"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"
)

// Role is the part an actor plays in an order.
type Role int

const (
	UnknownRole Role = iota
	RoleBuyer
	RoleSeller
	RoleCourier
	RoleAdmin
	// RoleSystem is used by background reconciliation; it never appears on the wire.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleBuyer:   "buyer",
	RoleSeller:  "seller",
	RoleCourier: "courier",
	RoleAdmin:   "admin",
	RoleSystem:  "system",
}

// ParseRole accepts buyer, seller, courier and admin. "shop" is read as seller.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "shop" {
		return RoleSeller, nil
	}
	for role, name := range roleNames {
		if role != RoleSystem && name == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Actor is who performs an operation on an order.
type Actor struct {
	role Role
	id   kernel.UUID
}

// NewActor validates role and id.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	a := Actor{role: role, id: id}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

// SystemActor is the actor recorded for changes made by background jobs and gateway callbacks.
func SystemActor() Actor {
	return Actor{role: RoleSystem}
}

func (a Actor) Role() Role      { return a.role }
func (a Actor) ID() kernel.UUID { return a.id }

func (a Actor) Validate() error {
	if a.role == RoleSystem {
		return nil
	}
	if _, ok := roleNames[a.role]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%d is not a valid role", a.role))
	}
	return a.id.Validate()
}

func (a Actor) String() string {
	if a.role == RoleSystem {
		return a.role.String()
	}
	return a.role.String() + ":" + a.id.String()
}
