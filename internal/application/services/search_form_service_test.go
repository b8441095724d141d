package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/clarat-search/internal/adapters/cookies"
	"github.com/zatekoja/clarat-search/internal/application/services"
	"github.com/zatekoja/clarat-search/internal/domain/entities"
	"github.com/zatekoja/clarat-search/internal/domain/providers"
	apperrors "github.com/zatekoja/clarat-search/pkg/errors"
)

type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) Resolve(ctx context.Context, locationText string) (string, error) {
	args := m.Called(ctx, locationText)
	return args.String(0), args.Error(1)
}

// staticLocales answers every current location lookup with "<locale> here",
// except German which uses the real label.
type staticLocales struct {
	err error
}

func (s staticLocales) Lookup(key, locale string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if key != services.CurrentLocationKey {
		return "", errors.New("unexpected key " + key)
	}
	if locale == "de" {
		return "Aktueller Standort", nil
	}
	return locale + " here", nil
}

func newService(resolver providers.LocationResolver) *services.SearchFormService {
	return services.NewSearchFormService(resolver, staticLocales{}, entities.DefaultFilterPolicy())
}

func TestSearchFormService_ExactLocationKeepsGeolocation(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), cookies.MapCookieStore{
		providers.CookieSavedSearchLocation: "Berlin",
		providers.CookieSavedGeolocation:    "52.52,13.40",
	}, entities.SearchFormAttributes{
		ExactLocation:        true,
		SearchLocation:       "Paris",
		GeneratedGeolocation: "1.5,2.5",
	})
	require.NoError(t, err)

	assert.Equal(t, "Paris", form.SearchLocation)
	assert.Equal(t, "1.5,2.5", form.GeneratedGeolocation)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_ExactLocationKeepsEmptyGeolocation(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{ExactLocation: true})
	require.NoError(t, err)

	assert.Empty(t, form.GeneratedGeolocation)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_BlankLocationRestoresCookies(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), cookies.MapCookieStore{
		providers.CookieSavedSearchLocation: "Berlin",
		providers.CookieSavedGeolocation:    "52.52,13.40",
	}, entities.SearchFormAttributes{Query: "Beratung"})
	require.NoError(t, err)

	assert.Equal(t, "Berlin", form.SearchLocation)
	assert.Equal(t, "52.52,13.40", form.GeneratedGeolocation)
	assert.Equal(t, "Beratung", form.Query)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_WhitespaceLocationCountsAsBlank(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), cookies.MapCookieStore{
		providers.CookieSavedSearchLocation: "Hamburg",
		providers.CookieSavedGeolocation:    "53.55,9.99",
	}, entities.SearchFormAttributes{SearchLocation: "   ", GeneratedGeolocation: "0,0"})
	require.NoError(t, err)

	assert.Equal(t, "Hamburg", form.SearchLocation)
	assert.Equal(t, "53.55,9.99", form.GeneratedGeolocation)
}

func TestSearchFormService_BlankLocationWithoutCookiesKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cookies providers.CookieStore
	}{
		{"no cookie store", nil},
		{"no cookies", cookies.MapCookieStore{}},
		{"only location", cookies.MapCookieStore{providers.CookieSavedSearchLocation: "Berlin"}},
		{"only geolocation", cookies.MapCookieStore{providers.CookieSavedGeolocation: "52.52,13.40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockLocationResolver)
			svc := newService(resolver)

			form, err := svc.Build(context.Background(), tt.cookies, entities.SearchFormAttributes{})
			require.NoError(t, err)

			assert.Empty(t, form.SearchLocation)
			assert.Empty(t, form.GeneratedGeolocation)
			resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}

func TestSearchFormService_CurrentLocationLabelKeepsSuppliedGeolocation(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	for _, label := range []string{"Aktueller Standort", "en here", "tr here"} {
		form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{
			SearchLocation:       label,
			GeneratedGeolocation: "52.52,13.40",
		})
		require.NoError(t, err)
		assert.Equal(t, label, form.SearchLocation)
		assert.Equal(t, "52.52,13.40", form.GeneratedGeolocation)
	}
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_CurrentLocationLabelWithoutGeolocationIsGeocoded(t *testing.T) {
	resolver := new(MockLocationResolver)
	resolver.On("Resolve", mock.Anything, "Aktueller Standort").Return("51.16,10.45", nil).Once()
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{
		SearchLocation: "Aktueller Standort",
	})
	require.NoError(t, err)

	assert.Equal(t, "51.16,10.45", form.GeneratedGeolocation)
	resolver.AssertExpectations(t)
}

func TestSearchFormService_GeocodesFreeTextLocation(t *testing.T) {
	resolver := new(MockLocationResolver)
	resolver.On("Resolve", mock.Anything, "Paris").Return("48.85,2.35", nil).Once()
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), cookies.MapCookieStore{
		providers.CookieSavedSearchLocation: "Berlin",
		providers.CookieSavedGeolocation:    "52.52,13.40",
	}, entities.SearchFormAttributes{SearchLocation: "Paris"})
	require.NoError(t, err)

	assert.Equal(t, "Paris", form.SearchLocation)
	assert.Equal(t, "48.85,2.35", form.GeneratedGeolocation)
	resolver.AssertExpectations(t)
	resolver.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestSearchFormService_GeocodingOverridesSuppliedGeolocation(t *testing.T) {
	resolver := new(MockLocationResolver)
	resolver.On("Resolve", mock.Anything, "Köln").Return("50.94,6.96", nil).Once()
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{
		SearchLocation:       "Köln",
		GeneratedGeolocation: "1,1",
	})
	require.NoError(t, err)

	assert.Equal(t, "50.94,6.96", form.GeneratedGeolocation)
}

func TestSearchFormService_ResolverErrorIsReturned(t *testing.T) {
	resolver := new(MockLocationResolver)
	resolver.On("Resolve", mock.Anything, "Atlantis").Return("", providers.ErrLocationNotFound).Once()
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{SearchLocation: "Atlantis"})
	assert.Nil(t, form)
	assert.Same(t, providers.ErrLocationNotFound, err)
}

func TestSearchFormService_NilRequestCookieStoreHoldsNoCookies(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	var store *cookies.RequestCookieStore
	form, err := svc.Build(context.Background(), store, entities.SearchFormAttributes{})
	require.NoError(t, err)

	assert.Empty(t, form.SearchLocation)
	assert.Empty(t, form.GeneratedGeolocation)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_InvalidEnumFailsBeforeResolution(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := newService(resolver)

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{
		SearchLocation: "Paris",
		SortOrder:      "alphabetical",
	})
	assert.Nil(t, form)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidAttributeValue))
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_LocaleErrorIsReturned(t *testing.T) {
	resolver := new(MockLocationResolver)
	svc := services.NewSearchFormService(resolver, staticLocales{err: errors.New("locales unavailable")}, entities.DefaultFilterPolicy())

	_, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{SearchLocation: "Paris"})
	assert.ErrorContains(t, err, "locales unavailable")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestSearchFormService_CurrentLocationLabels(t *testing.T) {
	svc := newService(new(MockLocationResolver))

	labels, err := svc.CurrentLocationLabels()
	require.NoError(t, err)
	assert.Len(t, labels, 8)
	assert.Contains(t, labels, "Aktueller Standort")
	assert.Contains(t, labels, "ar here")
}

func TestSearchFormService_DefaultEncounters(t *testing.T) {
	svc := newService(new(MockLocationResolver))

	form, err := svc.Build(context.Background(), nil, entities.SearchFormAttributes{})
	require.NoError(t, err)
	assert.Equal(t, "hotline,email,chat,forum,online-course,portal", form.Encounters)
	assert.NotContains(t, form.EncounterList(), entities.EncounterPersonal)
}
