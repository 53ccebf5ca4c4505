// Package kernel provides the value objects shared by every aggregate of the
// order service.
//
// The package includes:
//   - UUID: identifier for orders, actors, shops and couriers
//   - Location: a validated latitude/longitude pair with haversine distance
//   - Address: coordinates with a free-text fallback
//   - DeliveryOption: the courier mode (vehicle or motorbike)
//
// All types are immutable and safe for concurrent use. Zero values are invalid
// and fail their Validate methods.
package kernel
