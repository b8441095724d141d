package cookies

import (
	"net/http"
	"net/url"

	"github.com/zatekoja/clarat-search/internal/domain/providers"
)

// RequestCookieStore reads cookies from an incoming request. Values are
// URL-unescaped, matching how the web frontend writes them.
type RequestCookieStore struct {
	r *http.Request
}

// NewRequestCookieStore wraps r.
func NewRequestCookieStore(r *http.Request) providers.CookieStore {
	return &RequestCookieStore{r: r}
}

// Get implements providers.CookieStore. A nil store holds no cookies.
func (s *RequestCookieStore) Get(key string) (string, bool) {
	if s == nil || s.r == nil {
		return "", false
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	if v, err := url.QueryUnescape(c.Value); err == nil {
		return v, true
	}
	return c.Value, true
}

// MapCookieStore is a CookieStore over a fixed map.
type MapCookieStore map[string]string

// Get implements providers.CookieStore.
func (m MapCookieStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
