package geolocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zatekoja/clarat-search/internal/domain/providers"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
)

const searchLocationKeyPrefix = "geo:v1:search_location:"

// flightTimeout bounds a shared provider lookup, which no longer follows the
// cancellation of the request that started it.
const flightTimeout = 15 * time.Second

// SearchLocationResolver finds or generates the geolocation for a free-text
// search location. Results are cached per location text; concurrent misses
// for the same text share one provider lookup.
type SearchLocationResolver struct {
	provider   providers.GeolocationProvider
	cache      providers.CacheProvider
	ttlSeconds int
	metrics    *observability.Metrics
	sf         singleflight.Group
}

// NewSearchLocationResolver creates a resolver. cache and metrics may be nil.
func NewSearchLocationResolver(provider providers.GeolocationProvider, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *SearchLocationResolver {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultGeocodeCacheTTL
	}
	return &SearchLocationResolver{
		provider:   provider,
		cache:      cache,
		ttlSeconds: ttlSeconds,
		metrics:    metrics,
	}
}

// Resolve returns the "<lat>,<lng>" geolocation for locationText. Provider
// errors, including providers.ErrLocationNotFound, are returned unchanged.
// A caller whose ctx ends while waiting on a shared lookup gets ctx.Err();
// the other callers of that lookup are not affected.
func (r *SearchLocationResolver) Resolve(ctx context.Context, locationText string) (string, error) {
	text := strings.TrimSpace(locationText)
	if text == "" {
		return "", fmt.Errorf("location text is required")
	}

	key := searchLocationKeyPrefix + hashKey(text)
	if geoloc, ok := r.lookup(ctx, key); ok {
		observability.RecordGeocodeCache(ctx, r.metrics, true)
		return geoloc, nil
	}
	observability.RecordGeocodeCache(ctx, r.metrics, false)

	ch := r.sf.DoChan(key, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return r.fetch(flightCtx, key, text)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *SearchLocationResolver) fetch(ctx context.Context, key, text string) (string, error) {
	// A flight that finished between our lookup and DoChan has already
	// populated the cache.
	if geoloc, ok := r.lookup(ctx, key); ok {
		return geoloc, nil
	}

	start := time.Now()
	addr, err := r.provider.Geocode(ctx, text)
	observability.RecordGeocodeDuration(ctx, r.metrics, time.Since(start), err)
	if err != nil {
		return "", err
	}

	geoloc := FormatGeoloc(addr.Coordinates)
	if r.cache != nil {
		if err := r.cache.Set(ctx, key, []byte(geoloc), r.ttlSeconds); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("search_location", text).
				Msg("failed to cache search location")
		}
	}
	return geoloc, nil
}

func (r *SearchLocationResolver) lookup(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	payload, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("search location cache unavailable")
		}
		return "", false
	}
	if len(payload) == 0 {
		return "", false
	}
	return string(payload), true
}

// FormatGeoloc renders coordinates the way the search backend expects them.
func FormatGeoloc(c providers.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
