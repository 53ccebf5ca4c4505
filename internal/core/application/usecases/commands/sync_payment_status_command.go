package commands

import (
	"errors"
	"fmt"
	"time"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/guard"
)

var (
	ErrSyncPaymentStatusCommandIsNotConstructed = errors.New(
		"SyncPaymentStatusCommand must be created via NewSyncPaymentStatusCommand constructor",
	)

	// ErrPaymentTimeout is the sentinel PaymentTimeoutError unwraps to.
	ErrPaymentTimeout = errors.New("payment status did not settle in time")
)

// Default poll bounds for gateway payments.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 30
)

// PollPolicy bounds how long the gateway is asked about a transaction.
type PollPolicy struct {
	Interval time.Duration
	Attempts int
}

// DefaultPollPolicy polls every 2 seconds, 30 times.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Interval: DefaultPollInterval, Attempts: DefaultPollAttempts}
}

// PaymentTimeoutError reports that the gateway still answered "pending" after the
// last allowed check. The order's payment is left unchanged.
type PaymentTimeoutError struct {
	TransactionRef string
	Attempts       int
}

func (e *PaymentTimeoutError) Error() string {
	return fmt.Sprintf("%s: transaction %s still pending after %d checks", ErrPaymentTimeout, e.TransactionRef, e.Attempts)
}

func (e *PaymentTimeoutError) Unwrap() error {
	return ErrPaymentTimeout
}

// SyncPaymentStatusCommand asks to reconcile an order's gateway payment now.
type SyncPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSyncPaymentStatusCommand(orderID kernel.UUID) (SyncPaymentStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SyncPaymentStatusCommand{}, err
	}

	return SyncPaymentStatusCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SyncPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSyncPaymentStatusCommandIsNotConstructed)
}

func (c SyncPaymentStatusCommand) OrderID() kernel.UUID { return c.orderID }
