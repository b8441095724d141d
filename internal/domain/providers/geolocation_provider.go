package providers

import (
	"context"
	"errors"
)

// ErrLocationNotFound is returned when a location text cannot be geocoded.
var ErrLocationNotFound = errors.New("location not found")

// GeolocationProvider defines the interface for geolocation services
type GeolocationProvider interface {
	// Geocode converts an address to a geocoded address with coordinates
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)

	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodedAddress, error)
}

// LocationResolver maps free-text locations to the canonical geolocation
// string used by the search backend ("<lat>,<lng>").
type LocationResolver interface {
	Resolve(ctx context.Context, locationText string) (string, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string
	Street           string
	City             string
	State            string
	ZipCode          string
	Country          string
	Coordinates      Coordinates
}
