package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/zatekoja/clarat-search/internal/domain/providers"
)

const (
	googleGeocodeURL       = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleGeolocationProvider implements the GeolocationProvider using the Google Geocoding API.
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider.
func NewGoogleGeolocationProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewGoogleGeolocationProviderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeolocationProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleGeolocationProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode converts an address to a full geocoded address.
func (g *GoogleGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := "geo:v2:geocode:" + hashKey(strings.ToLower(trimmed))
	if addr, ok := g.cached(ctx, cacheKey); ok {
		return addr, nil
	}

	resp, err := g.doGeocodeRequest(ctx, url.Values{"address": []string{trimmed}})
	if err != nil {
		return nil, err
	}

	addr := toGeocodedAddress(resp.Results[0])
	g.store(ctx, cacheKey, addr)
	return &addr, nil
}

// ReverseGeocode converts coordinates to an address.
func (g *GoogleGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	cacheKey := "geo:v2:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if addr, ok := g.cached(ctx, cacheKey); ok {
		return addr, nil
	}

	resp, err := g.doGeocodeRequest(ctx, url.Values{"latlng": []string{fmt.Sprintf("%f,%f", lat, lon)}})
	if err != nil {
		return nil, err
	}

	addr := toGeocodedAddress(resp.Results[0])
	g.store(ctx, cacheKey, addr)
	return &addr, nil
}

func (g *GoogleGeolocationProvider) cached(ctx context.Context, key string) (*providers.GeocodedAddress, bool) {
	if g.cache == nil {
		return nil, false
	}
	payload, err := g.cache.Get(ctx, key)
	if err != nil || len(payload) == 0 {
		return nil, false
	}
	var addr providers.GeocodedAddress
	if err := json.Unmarshal(payload, &addr); err != nil {
		return nil, false
	}
	if addr.Coordinates.Latitude == 0 && addr.Coordinates.Longitude == 0 {
		return nil, false
	}
	return &addr, true
}

func (g *GoogleGeolocationProvider) store(ctx context.Context, key string, addr providers.GeocodedAddress) {
	if g.cache == nil {
		return
	}
	if payload, err := json.Marshal(addr); err == nil {
		_ = g.cache.Set(ctx, key, payload, defaultGeocodeCacheTTL)
	}
}

// doGeocodeRequest returns a response with at least one result, or an error.
func (g *GoogleGeolocationProvider) doGeocodeRequest(ctx context.Context, params url.Values) (*googleGeocodeResponse, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}

	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, providers.ErrLocationNotFound
	default:
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("geocode request failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("geocode request failed: %s", payload.Status)
	}

	if len(payload.Results) == 0 {
		return nil, providers.ErrLocationNotFound
	}

	return &payload, nil
}

func toGeocodedAddress(result googleGeocodeResult) providers.GeocodedAddress {
	return providers.GeocodedAddress{
		FormattedAddress: result.FormattedAddress,
		Street:           buildStreet(result.AddressComponents),
		City:             component(result.AddressComponents, "locality", "administrative_area_level_2"),
		State:            component(result.AddressComponents, "administrative_area_level_1"),
		ZipCode:          component(result.AddressComponents, "postal_code"),
		Country:          component(result.AddressComponents, "country"),
		Coordinates: providers.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
	}
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func component(components []googleAddressComponent, primary string, fallback ...string) string {
	for _, t := range append([]string{primary}, fallback...) {
		for _, comp := range components {
			if slices.Contains(comp.Types, t) {
				return comp.LongName
			}
		}
	}
	return ""
}

func buildStreet(components []googleAddressComponent) string {
	route := component(components, "route")
	streetNumber := component(components, "street_number")
	// German addresses put the house number after the street name.
	if streetNumber != "" && route != "" {
		return route + " " + streetNumber
	}
	if route != "" {
		return route
	}
	return streetNumber
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          googleGeometry           `json:"geometry"`
}

type googleAddressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
