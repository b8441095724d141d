package providers

// Cookie names the search form restores its location from.
const (
	CookieSavedSearchLocation = "saved_search_location"
	CookieSavedGeolocation    = "saved_geolocation"
)

// CookieStore is a read-only view of the request cookies. Implementations
// must tolerate a nil receiver and report every cookie as absent.
type CookieStore interface {
	// Get returns the cookie value and whether the cookie was present.
	Get(key string) (string, bool)
}
