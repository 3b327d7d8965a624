package analytics

import (
	"strings"
	"time"

	"campusevents/models"
)

// FilterByDate keeps records whose timestamp is at or after cutoff. A nil cutoff
// keeps everything; otherwise records with a missing or unparseable timestamp
// are dropped.
func FilterByDate[T any](records []T, cutoff *time.Time, timestampOf func(T) string) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		if cutoff == nil {
			out = append(out, record)
			continue
		}
		t, ok := ParseTimestamp(timestampOf(record))
		if ok && !t.Before(*cutoff) {
			out = append(out, record)
		}
	}
	return out
}

// FilterByPriorWindow keeps records whose timestamp parses and falls in
// [window.Start, window.End). A nil window yields an empty result.
func FilterByPriorWindow[T any](records []T, window *Period, timestampOf func(T) string) []T {
	out := make([]T, 0)
	if window == nil {
		return out
	}
	for _, record := range records {
		t, ok := ParseTimestamp(timestampOf(record))
		if ok && window.Contains(t) {
			out = append(out, record)
		}
	}
	return out
}

// FilterBySearch keeps records where any of the extracted fields contains query,
// case-insensitively. Empty fields are skipped and an empty query matches all.
func FilterBySearch[T any](records []T, query string, fieldsOf func(T) []string) []T {
	q := normalizeQuery(query)
	if q == "" {
		return append(make([]T, 0, len(records)), records...)
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		for _, field := range fieldsOf(record) {
			if field == "" {
				continue
			}
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, record)
				break
			}
		}
	}
	return out
}

// FilterRegistrations applies the date cutoff to registrations and, when a search
// is active, keeps only registrations whose event is in matchedEvents. Search never
// applies to registrations directly.
func FilterRegistrations(registrations []models.Registration, cutoff *time.Time, matchedEvents []models.Event, searchActive bool) []models.Registration {
	dated := FilterByDate(registrations, cutoff, registrationCreatedAt)
	if !searchActive {
		return dated
	}
	return restrictToEvents(dated, matchedEvents)
}

func restrictToEvents(registrations []models.Registration, events []models.Event) []models.Registration {
	ids := make(map[string]struct{}, len(events))
	for _, e := range events {
		ids[e.EventID] = struct{}{}
	}

	out := make([]models.Registration, 0, len(registrations))
	for _, r := range registrations {
		if _, ok := ids[r.EventID]; ok {
			out = append(out, r)
		}
	}
	return out
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Timestamp and search-field extractors for each collection.

func userCreatedAt(u models.User) string                 { return u.CreatedAt }
func eventCreatedAt(e models.Event) string               { return e.CreatedAt }
func festCreatedAt(f models.Fest) string                 { return f.CreatedAt }
func registrationCreatedAt(r models.Registration) string { return r.CreatedAt }

func userSearchFields(u models.User) []string {
	return []string{u.Name, u.Email}
}

func eventSearchFields(e models.Event) []string {
	return []string{e.Title, e.OrganizingDept, e.CreatedBy}
}

func festSearchFields(f models.Fest) []string {
	return []string{f.FestTitle, f.OrganizingDept, f.CreatedBy}
}
