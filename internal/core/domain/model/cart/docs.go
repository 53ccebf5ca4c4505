// Package cart holds the checkout-time cart snapshot an order is priced from.
package cart
