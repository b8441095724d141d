package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/zatekoja/clarat-search/internal/domain/providers"
)

// MockGeolocationProvider resolves a fixed table of cities. Used in
// development and tests.
type MockGeolocationProvider struct {
	cities map[string]providers.Coordinates
}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{
		cities: map[string]providers.Coordinates{
			"berlin":    {Latitude: 52.52, Longitude: 13.405},
			"hamburg":   {Latitude: 53.5511, Longitude: 9.9937},
			"münchen":   {Latitude: 48.1351, Longitude: 11.582},
			"munich":    {Latitude: 48.1351, Longitude: 11.582},
			"köln":      {Latitude: 50.9375, Longitude: 6.9603},
			"cologne":   {Latitude: 50.9375, Longitude: 6.9603},
			"frankfurt": {Latitude: 50.1109, Longitude: 8.6821},
			"leipzig":   {Latitude: 51.3397, Longitude: 12.3731},
			"paris":     {Latitude: 48.8566, Longitude: 2.3522},
			"wien":      {Latitude: 48.2082, Longitude: 16.3738},
			"vienna":    {Latitude: 48.2082, Longitude: 16.3738},
		},
	}
}

// Geocode matches the address against the city table. Unknown addresses
// yield providers.ErrLocationNotFound.
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return nil, fmt.Errorf("address is required")
	}

	for city, coords := range m.cities {
		if strings.Contains(normalized, city) {
			return &providers.GeocodedAddress{
				FormattedAddress: address,
				City:             city,
				Coordinates:      coords,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", providers.ErrLocationNotFound, address)
}

// ReverseGeocode echoes the coordinates back as the formatted address.
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%f, %f", lat, lon),
		Coordinates: providers.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}, nil
}
