// Package ports declares the contracts between the application core and its
// adapters: repositories and the unit of work, the event channel, the payment
// gateway, and the idempotency store used by gateway callbacks.
package ports
