// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding cart, payment, addresses and courier binding
//   - Status: the lifecycle states, with "in_transit" accepted as an alias
//   - Operation and the lifecycle table: which role may move an order from where to where
//   - Actor: the role and identity performing an operation
//   - IllegalTransitionError, ErrAlreadyAssigned: the errors a refused operation returns
//   - Event: facts recorded by the aggregate and published after commit
//
// Key business rules:
//   - Only the buyer cancels, and only while Pending
//   - Exactly one courier is bound; a late courier gets ErrAlreadyAssigned
//   - Delivered requires a proof-of-delivery reference
//   - Payment approval moves once, from pending to approved or rejected
package order
