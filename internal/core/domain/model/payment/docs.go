// Package payment models the payment sub-record of an order: the method the buyer
// chose, the money status, the admin approval for manual transfers, and the
// references used to reconcile with the gateway.
//
// Payment status is a separate axis from the order lifecycle. An order can be
// delivered while its bank transfer still waits for approval.
package payment
