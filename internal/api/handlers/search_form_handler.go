package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zatekoja/clarat-search/internal/adapters/cookies"
	"github.com/zatekoja/clarat-search/internal/domain/entities"
	"github.com/zatekoja/clarat-search/internal/domain/providers"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clarat-search/pkg/errors"
)

// SearchFormBuilder builds search forms from request input.
type SearchFormBuilder interface {
	Build(ctx context.Context, cookies providers.CookieStore, attrs entities.SearchFormAttributes) (*entities.SearchForm, error)
}

// SearchFormHandler handles search form requests
type SearchFormHandler struct {
	builder SearchFormBuilder
}

// NewSearchFormHandler creates a new search form handler
func NewSearchFormHandler(builder SearchFormBuilder) *SearchFormHandler {
	return &SearchFormHandler{builder: builder}
}

// GetSearchForm handles GET /api/search-form
func (h *SearchFormHandler) GetSearchForm(w http.ResponseWriter, r *http.Request) {
	attrs := ParseSearchFormAttributes(r.URL.Query())

	form, err := h.builder.Build(r.Context(), cookies.NewRequestCookieStore(r), attrs)
	if err != nil {
		var appErr *apperrors.AppError
		switch {
		case errors.As(err, &appErr) && (appErr.Type == apperrors.ErrorTypeInvalidAttributeValue || appErr.Type == apperrors.ErrorTypeValidation):
			respondWithJSON(w, http.StatusBadRequest, map[string]string{
				"error":     appErr.Message,
				"attribute": appErr.Attribute,
			})
		case errors.Is(err, providers.ErrLocationNotFound):
			respondWithError(w, http.StatusNotFound, "search location could not be found")
		default:
			observability.LoggerFromContext(r.Context()).Error().Err(err).
				Str("search_location", attrs.SearchLocation).Msg("failed to build search form")
			respondWithError(w, http.StatusBadGateway, "failed to resolve search location")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, form)
}

// ParseSearchFormAttributes reads the search form attributes from query
// parameters. exact_location accepts the usual boolean spellings; anything
// unparsable counts as false.
func ParseSearchFormAttributes(q url.Values) entities.SearchFormAttributes {
	exact, _ := strconv.ParseBool(strings.TrimSpace(q.Get("exact_location")))
	return entities.SearchFormAttributes{
		Query:                q.Get("query"),
		SearchLocation:       q.Get("search_location"),
		GeneratedGeolocation: q.Get("generated_geolocation"),
		Category:             q.Get("category"),
		ExactLocation:        exact,
		ContactType:          q.Get("contact_type"),
		Age:                  q.Get("age"),
		Language:             q.Get("language"),
		TargetAudience:       q.Get("target_audience"),
		ExclusiveGender:      q.Get("exclusive_gender"),
		Encounters:           q.Get("encounters"),
		SortOrder:            q.Get("sort_order"),
		SectionIdentifier:    q.Get("section_identifier"),
	}
}
