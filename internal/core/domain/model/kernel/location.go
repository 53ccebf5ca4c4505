package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mekina/internal/pkg/errs"
	"mekina/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine distance.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or ParseLocation constructors")

// Location is an immutable WGS84 coordinate pair (latitude, longitude) in degrees.
// Shops, buyers' delivery points and couriers are all placed with it.
//
// Example:
//
//	shop, _ := kernel.NewLocation(9.03, 38.74)
//	buyer, _ := kernel.NewLocation(9.05, 38.76)
//	km, _ := shop.DistanceKm(buyer) // ~3.13
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
// NaN and infinite values are rejected.
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// ParseLocation builds a Location from textual coordinates as they arrive from forms
// and query strings. Empty or unparseable input is reported as a validation error
// so callers can tell "no coordinates" apart from "coordinates at 0,0".
func ParseLocation(lat, lng string) (Location, error) {
	latValue, latErr := parseCoordinate("latitude", lat)
	lngValue, lngErr := parseCoordinate("longitude", lng)
	if err := errors.Join(latErr, lngErr); err != nil {
		return Location{}, err
	}

	return NewLocation(latValue, lngValue)
}

// Validate reports whether the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

// IsEqual compares two constructed locations coordinate by coordinate.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm returns the great-circle distance to other using the haversine formula:
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlng/2)
//	c = 2·atan2(√a, √(1−a))
//	d = EarthRadiusKm · c
//
// The result is symmetric and deterministic for identical inputs.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.lat)
	lat2 := toRadians(other.lat)
	dLat := toRadians(other.lat - l.lat)
	dLng := toRadians(other.lng - l.lng)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	l.lng = lng
	return nil
}

func parseCoordinate(name, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errs.NewValueIsRequiredError(name)
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return value, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
