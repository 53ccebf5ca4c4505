// Package services provides domain services that work across aggregates of the
// order service.
//
// The package includes:
//   - DeliveryQuoter: prices a delivery from shop to buyer with haversine distance
//   - CourierMatcher: ranks the couriers that may be offered a Processing order
//
// Both services are stateless and safe for concurrent use.
package services
