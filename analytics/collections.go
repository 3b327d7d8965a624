package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"campusevents/models"
)

// DefaultTopN is the department chart cap used when none (or an unsupported
// value) is requested.
const DefaultTopN = 10

var allowedTopN = map[int]bool{5: true, 10: true, 20: true, 50: true}

// IsAllowedTopN reports whether n is one of the selectable chart caps.
func IsAllowedTopN(n int) bool {
	return allowedTopN[n]
}

// Collections is a read-only snapshot of the four source collections.
type Collections struct {
	Users         []models.User         `json:"users"`
	Events        []models.Event        `json:"events"`
	Fests         []models.Fest         `json:"fests"`
	Registrations []models.Registration `json:"registrations"`
}

// Fingerprint returns a content hash of the snapshot, suitable as the data part
// of a cache key.
func (c Collections) Fingerprint() string {
	payload, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Params are the dashboard filter inputs.
type Params struct {
	DateRange DateRange `json:"range"`
	Search    string    `json:"search"`
	TopN      int       `json:"top_n"`
}

// Normalize returns a copy with an unknown range mapped to the 30 day default,
// the search trimmed and the Top-N cap clamped to a supported value.
func (p Params) Normalize() Params {
	if r, ok := ParseDateRange(string(p.DateRange)); ok {
		p.DateRange = r
	} else {
		p.DateRange = DefaultDateRange
	}
	p.Search = strings.TrimSpace(p.Search)
	if !IsAllowedTopN(p.TopN) {
		p.TopN = DefaultTopN
	}
	return p
}

func (p Params) searchActive() bool {
	return normalizeQuery(p.Search) != ""
}

// Filtered holds the subsets of a snapshot that pass the current filters.
type Filtered struct {
	Users         []models.User
	Events        []models.Event
	Fests         []models.Fest
	Registrations []models.Registration
}

// ApplyFilters filters every collection to the current window and search query.
// While a search is active, registrations are limited to the events that passed
// both the date and search filters.
func ApplyFilters(c Collections, p Params, now time.Time) Filtered {
	w := ResolveWindow(p.DateRange, now)
	events := FilterBySearch(FilterByDate(c.Events, w.Cutoff, eventCreatedAt), p.Search, eventSearchFields)
	return Filtered{
		Users:         FilterBySearch(FilterByDate(c.Users, w.Cutoff, userCreatedAt), p.Search, userSearchFields),
		Events:        events,
		Fests:         FilterBySearch(FilterByDate(c.Fests, w.Cutoff, festCreatedAt), p.Search, festSearchFields),
		Registrations: FilterRegistrations(c.Registrations, w.Cutoff, events, p.searchActive()),
	}
}

// ApplyPriorFilters filters every collection to the window preceding the current
// one, using the same search predicates. All collections are empty for RangeAll.
func ApplyPriorFilters(c Collections, p Params, now time.Time) Filtered {
	w := ResolveWindow(p.DateRange, now)
	events := FilterBySearch(FilterByPriorWindow(c.Events, w.Previous, eventCreatedAt), p.Search, eventSearchFields)
	registrations := FilterByPriorWindow(c.Registrations, w.Previous, registrationCreatedAt)
	if p.searchActive() {
		registrations = restrictToEvents(registrations, events)
	}
	return Filtered{
		Users:         FilterBySearch(FilterByPriorWindow(c.Users, w.Previous, userCreatedAt), p.Search, userSearchFields),
		Events:        events,
		Fests:         FilterBySearch(FilterByPriorWindow(c.Fests, w.Previous, festCreatedAt), p.Search, festSearchFields),
		Registrations: registrations,
	}
}
