package routes

import (
	"net/http"

	"github.com/zatekoja/clarat-search/internal/api/handlers"
	"github.com/zatekoja/clarat-search/internal/api/middleware"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchFormHandler  *handlers.SearchFormHandler
	geolocationHandler *handlers.GeolocationHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchFormHandler *handlers.SearchFormHandler,
	geolocationHandler *handlers.GeolocationHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		searchFormHandler:  searchFormHandler,
		geolocationHandler: geolocationHandler,
		allowedOrigins:     allowedOrigins,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.mux.HandleFunc("GET /api/search-form", r.searchFormHandler.GetSearchForm)

	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)

	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
