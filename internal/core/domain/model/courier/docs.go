// Package courier provides the Courier aggregate: the registry entry for a
// delivery rider, the vehicle kind that limits which orders it may take, and its
// last live location.
//
// Key business rules:
//   - Couriers must have a valid identifier, a name and a vehicle kind
//   - A motorbike courier cannot accept an order placed with the vehicle option
//   - Location is optional and replaced wholesale on every update
package courier
