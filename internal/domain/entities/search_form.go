package entities

import (
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/zatekoja/clarat-search/pkg/errors"
)

// ContactType is the interaction mode a searcher asks for.
type ContactType string

const (
	ContactTypePersonal ContactType = "personal"
	ContactTypeRemote   ContactType = "remote"
)

// ContactTypes lists the accepted contact types.
var ContactTypes = []ContactType{ContactTypePersonal, ContactTypeRemote}

// Valid reports whether c is a declared contact type.
func (c ContactType) Valid() bool {
	return slices.Contains(ContactTypes, c)
}

// SortOrder controls result ranking.
type SortOrder string

const (
	SortOrderNearby    SortOrder = "nearby"
	SortOrderRelevance SortOrder = "relevance"
)

// SortOrders lists the accepted sort orders.
var SortOrders = []SortOrder{SortOrderNearby, SortOrderRelevance}

// Valid reports whether s is a declared sort order.
func (s SortOrder) Valid() bool {
	return slices.Contains(SortOrders, s)
}

// EncounterPersonal is the face-to-face encounter kind. It is excluded from
// the default encounter filter.
const EncounterPersonal = "personal"

// FilterPolicy is the static configuration the search form is declared
// against: age bounds, language identifiers and encounter kinds.
type FilterPolicy struct {
	MinAge         int
	MaxAge         int
	Languages      []string
	Encounters     []string
	DefaultSection string
}

// DefaultFilterPolicy returns the policy used when nothing is configured.
func DefaultFilterPolicy() FilterPolicy {
	return FilterPolicy{
		MinAge: 0,
		MaxAge: 99,
		Languages: []string{
			"ara", "deu", "eng", "fas", "fra", "kur", "pol", "pus",
			"rus", "spa", "sqi", "srp", "tir", "tur", "ukr", "vie",
		},
		Encounters:     []string{"personal", "hotline", "email", "chat", "forum", "online-course", "portal"},
		DefaultSection: "family",
	}
}

// DefaultEncounters joins every encounter kind except personal.
func (p FilterPolicy) DefaultEncounters() string {
	kinds := make([]string, 0, len(p.Encounters))
	for _, e := range p.Encounters {
		if e != EncounterPersonal {
			kinds = append(kinds, e)
		}
	}
	return strings.Join(kinds, ",")
}

// AgeValues returns the age domain as decimal strings.
func (p FilterPolicy) AgeValues() []string {
	if p.MaxAge < p.MinAge {
		return nil
	}
	values := make([]string, 0, p.MaxAge-p.MinAge+1)
	for age := p.MinAge; age <= p.MaxAge; age++ {
		values = append(values, strconv.Itoa(age))
	}
	return values
}

func (p FilterPolicy) validAge(value string) bool {
	age, err := strconv.Atoi(value)
	if err != nil || strconv.Itoa(age) != value {
		return false
	}
	return age >= p.MinAge && age <= p.MaxAge
}

func (p FilterPolicy) validLanguage(value string) bool {
	return slices.Contains(p.Languages, value)
}

// SearchFormAttributes is the raw, untyped input a search form is built
// from. Empty strings mean "not supplied".
type SearchFormAttributes struct {
	Query                string
	SearchLocation       string
	GeneratedGeolocation string
	Category             string
	ExactLocation        bool
	ContactType          string
	Age                  string
	Language             string
	TargetAudience       string
	ExclusiveGender      string
	Encounters           string
	SortOrder            string
	SectionIdentifier    string
}

// SearchForm holds the typed parameters of a single search request.
type SearchForm struct {
	Query                string      `json:"query"`
	SearchLocation       string      `json:"search_location"`
	GeneratedGeolocation string      `json:"generated_geolocation"`
	Category             string      `json:"category"`
	ExactLocation        bool        `json:"exact_location"`
	ContactType          ContactType `json:"contact_type"`
	Age                  string      `json:"age,omitempty"`
	Language             string      `json:"language,omitempty"`
	TargetAudience       string      `json:"target_audience,omitempty"`
	ExclusiveGender      string      `json:"exclusive_gender,omitempty"`
	Encounters           string      `json:"encounters"`
	SortOrder            SortOrder   `json:"sort_order"`
	SectionIdentifier    string      `json:"section_identifier"`

	// Hit counters are filled in by the search backend after construction.
	Hits         int `json:"hits"`
	PersonalHits int `json:"personal_hits"`
	RemoteHits   int `json:"remote_hits"`
	NationalHits int `json:"national_hits"`
}

// NewSearchForm applies the declared defaults to attrs and validates the
// enum attributes against policy.
func NewSearchForm(attrs SearchFormAttributes, policy FilterPolicy) (*SearchForm, error) {
	form := &SearchForm{
		Query:                attrs.Query,
		SearchLocation:       attrs.SearchLocation,
		GeneratedGeolocation: attrs.GeneratedGeolocation,
		Category:             attrs.Category,
		ExactLocation:        attrs.ExactLocation,
		ContactType:          ContactType(orDefault(attrs.ContactType, string(ContactTypePersonal))),
		Age:                  attrs.Age,
		Language:             attrs.Language,
		TargetAudience:       attrs.TargetAudience,
		ExclusiveGender:      attrs.ExclusiveGender,
		Encounters:           orDefault(attrs.Encounters, policy.DefaultEncounters()),
		SortOrder:            SortOrder(orDefault(attrs.SortOrder, string(SortOrderRelevance))),
		SectionIdentifier:    orDefault(attrs.SectionIdentifier, policy.DefaultSection),
	}

	if err := form.Validate(policy); err != nil {
		return nil, err
	}
	return form, nil
}

// Validate checks every enum attribute and returns an
// INVALID_ATTRIBUTE_VALUE error for the first one outside its domain.
func (f *SearchForm) Validate(policy FilterPolicy) error {
	if !f.ContactType.Valid() {
		return apperrors.NewInvalidAttributeValueError("contact_type", string(f.ContactType), contactTypeNames())
	}
	if f.Age != "" && !policy.validAge(f.Age) {
		return apperrors.NewInvalidAttributeValueError("age", f.Age,
			[]string{strconv.Itoa(policy.MinAge) + ".." + strconv.Itoa(policy.MaxAge)})
	}
	if f.Language != "" && !policy.validLanguage(f.Language) {
		return apperrors.NewInvalidAttributeValueError("language", f.Language, policy.Languages)
	}
	if !f.SortOrder.Valid() {
		return apperrors.NewInvalidAttributeValueError("sort_order", string(f.SortOrder), sortOrderNames())
	}
	return nil
}

// EncounterList splits the comma-joined encounter filter.
func (f *SearchForm) EncounterList() []string {
	var out []string
	for _, e := range strings.Split(f.Encounters, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func contactTypeNames() []string {
	names := make([]string, len(ContactTypes))
	for i, c := range ContactTypes {
		names[i] = string(c)
	}
	return names
}

func sortOrderNames() []string {
	names := make([]string, len(SortOrders))
	for i, s := range SortOrders {
		names[i] = string(s)
	}
	return names
}
