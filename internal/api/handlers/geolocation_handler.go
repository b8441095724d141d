package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/clarat-search/internal/adapters/providers/geolocation"
	"github.com/zatekoja/clarat-search/internal/domain/providers"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	addr, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		if errors.Is(err, providers.ErrLocationNotFound) {
			respondWithError(w, http.StatusNotFound, "address could not be found")
			return
		}
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("address", address).Msg("geocode failed")
		respondWithError(w, http.StatusBadGateway, "failed to geocode address")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address":           address,
		"formatted_address": addr.FormattedAddress,
		"lat":               addr.Coordinates.Latitude,
		"lon":               addr.Coordinates.Longitude,
		"geoloc":            geolocation.FormatGeoloc(addr.Coordinates),
	})
}

// ReverseGeocode handles GET /api/reverse-geocode?lat=...&lon=...
func (h *GeolocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	latStr := strings.TrimSpace(r.URL.Query().Get("lat"))
	lonStr := strings.TrimSpace(r.URL.Query().Get("lon"))
	if latStr == "" || lonStr == "" {
		respondWithError(w, http.StatusBadRequest, "lat and lon parameters are required")
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		respondWithError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}

	address, err := h.provider.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Float64("lat", lat).Float64("lon", lon).
			Msg("reverse geocode failed")
		respondWithError(w, http.StatusBadGateway, "failed to reverse geocode")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"formatted_address": address.FormattedAddress,
		"city":              address.City,
		"country":           address.Country,
		"lat":               address.Coordinates.Latitude,
		"lon":               address.Coordinates.Longitude,
	})
}
