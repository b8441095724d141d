package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/clarat-search/internal/adapters/providers/geolocation"
	"github.com/zatekoja/clarat-search/internal/api/handlers"
)

func TestGeolocationHandler_Geocode(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/geocode?address=Berlin", nil)
	rr := httptest.NewRecorder()
	handler.Geocode(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 52.52, body["lat"])
	assert.Equal(t, "52.52,13.405", body["geoloc"])
}

func TestGeolocationHandler_GeocodeErrors(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	rr := httptest.NewRecorder()
	handler.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/geocode", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	handler.Geocode(rr, httptest.NewRequest(http.MethodGet, "/api/geocode?address=Atlantis", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGeolocationHandler_ReverseGeocode(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	rr := httptest.NewRecorder()
	handler.ReverseGeocode(rr, httptest.NewRequest(http.MethodGet, "/api/reverse-geocode?lat=52.52&lon=13.405", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	for _, target := range []string{
		"/api/reverse-geocode?lat=52.52",
		"/api/reverse-geocode?lat=north&lon=13.4",
		"/api/reverse-geocode?lat=91&lon=13.4",
		"/api/reverse-geocode?lat=52.5&lon=181",
	} {
		rr = httptest.NewRecorder()
		handler.ReverseGeocode(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}
