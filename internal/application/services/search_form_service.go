package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/clarat-search/internal/domain/entities"
	"github.com/zatekoja/clarat-search/internal/domain/providers"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
)

// CurrentLocationKey is the translation key of the "current location" label
// the frontend submits when the browser supplied the geolocation.
const CurrentLocationKey = "conf.current_location"

// CurrentLocationLocales are the locales whose "current location" label is
// recognised as a search location.
var CurrentLocationLocales = []string{"ar", "de", "en", "fa", "fr", "pl", "ru", "tr"}

// Location resolution outcomes, used for tracing and logging.
const (
	resolutionExact           = "exact_location"
	resolutionCookies         = "cookies"
	resolutionDefaults        = "defaults"
	resolutionCurrentLocation = "current_location"
	resolutionGeocoded        = "geocoded"
)

// SearchFormService builds search forms and resolves their effective
// geolocation.
type SearchFormService struct {
	resolver providers.LocationResolver
	locales  providers.LocaleTextProvider
	policy   entities.FilterPolicy
}

// NewSearchFormService creates a new search form service
func NewSearchFormService(resolver providers.LocationResolver, locales providers.LocaleTextProvider, policy entities.FilterPolicy) *SearchFormService {
	return &SearchFormService{
		resolver: resolver,
		locales:  locales,
		policy:   policy,
	}
}

// Build constructs a search form from attrs and resolves its geolocation:
//
//   - exact location: the supplied geolocation is kept untouched
//   - blank search location: restored from the saved cookies when both are present
//   - a "current location" label with a supplied geolocation: kept as is
//   - anything else: geocoded through the location resolver
//
// Enum validation failures and resolver errors are returned to the caller
// unchanged. A nil cookies store behaves as one holding no cookies.
func (s *SearchFormService) Build(ctx context.Context, cookies providers.CookieStore, attrs entities.SearchFormAttributes) (*entities.SearchForm, error) {
	ctx, span := observability.StartSpan(ctx, "SearchFormService.Build")
	defer span.End()

	form, err := entities.NewSearchForm(attrs, s.policy)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	resolution, err := s.resolveLocation(ctx, cookies, form)
	observability.SetSpanAttributes(span, attribute.String("search_form.location_resolution", resolution))
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("resolution", resolution).
		Str("search_location", form.SearchLocation).
		Str("generated_geolocation", form.GeneratedGeolocation).
		Msg("search form built")

	return form, nil
}

func (s *SearchFormService) resolveLocation(ctx context.Context, cookies providers.CookieStore, form *entities.SearchForm) (string, error) {
	if form.ExactLocation {
		return resolutionExact, nil
	}

	if isBlank(form.SearchLocation) {
		if loadGeolocationValues(cookies, form) {
			return resolutionCookies, nil
		}
		return resolutionDefaults, nil
	}

	labels, err := s.CurrentLocationLabels()
	if err != nil {
		return resolutionCurrentLocation, err
	}
	if slices.Contains(labels, form.SearchLocation) && !isBlank(form.GeneratedGeolocation) {
		// Nothing is assigned; the supplied geolocation is used as is.
		// TODO: confirm with product whether a label without a geolocation
		// should still be geocoded (it currently falls through below).
		return resolutionCurrentLocation, nil
	}

	geoloc, err := s.resolver.Resolve(ctx, form.SearchLocation)
	if err != nil {
		return resolutionGeocoded, err
	}
	form.GeneratedGeolocation = geoloc
	return resolutionGeocoded, nil
}

// CurrentLocationLabels returns the "current location" label of every
// recognised locale.
func (s *SearchFormService) CurrentLocationLabels() ([]string, error) {
	labels := make([]string, 0, len(CurrentLocationLocales))
	for _, locale := range CurrentLocationLocales {
		label, err := s.locales.Lookup(CurrentLocationKey, locale)
		if err != nil {
			return nil, fmt.Errorf("failed to load current location label for %s: %w", locale, err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// loadGeolocationValues copies the saved location cookies into form when
// both are present.
func loadGeolocationValues(cookies providers.CookieStore, form *entities.SearchForm) bool {
	if cookies == nil {
		return false
	}
	location, ok := cookies.Get(providers.CookieSavedSearchLocation)
	if !ok {
		return false
	}
	geoloc, ok := cookies.Get(providers.CookieSavedGeolocation)
	if !ok {
		return false
	}
	form.SearchLocation = location
	form.GeneratedGeolocation = geoloc
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
