// Package location finds where the playground is running: a position fix
// from GPS (or a fixed demo point) reverse geocoded into city and state.
package location

import (
	"context"
	"errors"
)

// Fix is a single position fix in decimal degrees.
type Fix struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Source    string  `json:"source"`
}

// ErrNoFix is returned when a fix source ends without producing a valid fix.
var ErrNoFix = errors.New("no valid position fix")

// FixSource produces the current position.
type FixSource interface {
	Fix(ctx context.Context) (Fix, error)
}

// Place is the human-readable result of a reverse geocode. Empty fields mean
// the provider did not report them.
type Place struct {
	City             string `json:"city"`
	State            string `json:"state"`
	FormattedAddress string `json:"address"`
}

// Empty reports whether the lookup found nothing at all.
func (p Place) Empty() bool {
	return p.City == "" && p.State == "" && p.FormattedAddress == ""
}

// Geocoder converts coordinates into a place.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}

// StaticFix always reports the same position; it stands in for a last known
// location in demo mode.
type StaticFix Fix

func (s StaticFix) Fix(context.Context) (Fix, error) {
	return Fix(s), nil
}

// StaticGeocoder answers every lookup with the same place.
type StaticGeocoder struct {
	Place Place
}

func (g StaticGeocoder) ReverseGeocode(context.Context, float64, float64) (Place, error) {
	return g.Place, nil
}
