package analytics

import (
	"fmt"
	"sort"
	"time"

	"campusevents/models"
)

// Display truncation lengths and chart caps.
const (
	departmentNameLimit = 18
	eventTitleLimit     = 28
	organiserNameLimit  = 25
	festTitleLimit      = 22

	topEventsChartSize  = 8
	topOrganisersLimit  = 6
	unknownGroupName    = "Unknown"
	truncationEllipsis  = "…"
	timelineMonthLayout = "2006-01"
	timelineLabelLayout = "Jan 2006"
)

// KPIs are the scalar headline metrics.
type KPIs struct {
	TotalUsers               int     `json:"total_users"`
	TotalEvents              int     `json:"total_events"`
	TotalFests               int     `json:"total_fests"`
	TotalRegistrations       int     `json:"total_registrations"`
	TotalParticipants        int     `json:"total_participants"`
	AvgRegistrationsPerEvent string  `json:"avg_registrations_per_event"`
	EstimatedRevenue         float64 `json:"estimated_revenue"`
	UpcomingEvents           int     `json:"upcoming_events"`
}

// DepartmentRow is one department in the breakdown. Name is the chart label,
// FullName the untruncated department for tables.
type DepartmentRow struct {
	Name          string `json:"name"`
	Events        int    `json:"Events"`
	Registrations int    `json:"Registrations"`
	FullName      string `json:"fullName"`
}

type EventRow struct {
	EventID       string `json:"event_id"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	Department    string `json:"department"`
	Registrations int    `json:"registrations"`
}

type OrganiserRow struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Events   int    `json:"events"`
}

type FestRow struct {
	FestID        string `json:"fest_id"`
	Name          string `json:"name"`
	FullName      string `json:"fullName"`
	Registrations int    `json:"registrationCount"`
}

// Slice is one segment of a categorical split.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TimelinePoint is one calendar month of activity.
type TimelinePoint struct {
	Month         string `json:"month"`
	Label         string `json:"label"`
	Registrations int    `json:"registrations"`
	Events        int    `json:"events"`
}

// ComputeKPIs reduces the filtered collections to headline metrics.
func ComputeKPIs(f Filtered, now time.Time) KPIs {
	return KPIs{
		TotalUsers:               len(f.Users),
		TotalEvents:              len(f.Events),
		TotalFests:               len(f.Fests),
		TotalRegistrations:       len(f.Registrations),
		TotalParticipants:        TotalParticipants(f.Registrations),
		AvgRegistrationsPerEvent: AverageRegistrations(len(f.Registrations), len(f.Events)),
		EstimatedRevenue:         EstimatedRevenue(f.Events),
		UpcomingEvents:           UpcomingEvents(f.Events, now),
	}
}

// TotalParticipants counts heads: a team registration contributes its
// registrant plus teammates, anything else contributes one.
func TotalParticipants(registrations []models.Registration) int {
	total := 0
	for _, r := range registrations {
		total += r.Participants()
	}
	return total
}

// AverageRegistrations formats registrations per event with one decimal, or "0"
// when there are no events.
func AverageRegistrations(registrations, events int) string {
	if events == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(registrations)/float64(events))
}

// EstimatedRevenue sums fee times the event's aggregate registration count. The
// count is the event's stored total, not the filtered registrations, so revenue
// does not follow the registration date filter.
func EstimatedRevenue(events []models.Event) float64 {
	var revenue float64
	for _, e := range events {
		revenue += e.Fee() * float64(e.Registrations())
	}
	return revenue
}

// UpcomingEvents counts events dated at or after now. Undated events are not
// upcoming.
func UpcomingEvents(events []models.Event, now time.Time) int {
	count := 0
	for _, e := range events {
		if t, ok := ParseTimestamp(e.EventDate); ok && !t.Before(now) {
			count++
		}
	}
	return count
}

// DepartmentBreakdown groups events by organizing department, sorted by event
// count descending. Ties keep first-seen order.
func DepartmentBreakdown(events []models.Event) []DepartmentRow {
	rows := make([]DepartmentRow, 0)
	index := make(map[string]int)

	for _, e := range events {
		dept := e.OrganizingDept
		if dept == "" {
			dept = unknownGroupName
		}
		i, ok := index[dept]
		if !ok {
			i = len(rows)
			index[dept] = i
			rows = append(rows, DepartmentRow{
				Name:     Truncate(dept, departmentNameLimit),
				FullName: dept,
			})
		}
		rows[i].Events++
		rows[i].Registrations += e.Registrations()
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Events > rows[b].Events
	})
	return rows
}

// TopEvents returns events with at least one registration, most registered first.
func TopEvents(events []models.Event) []EventRow {
	rows := make([]EventRow, 0)
	for _, e := range events {
		count := e.Registrations()
		if count <= 0 {
			continue
		}
		rows = append(rows, EventRow{
			EventID:       e.EventID,
			Name:          Truncate(e.Title, eventTitleLimit),
			FullName:      e.Title,
			Department:    e.OrganizingDept,
			Registrations: count,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Registrations > rows[b].Registrations
	})
	return rows
}

// RegistrationTypeSplit counts individual and team registrations. Empty segments
// are omitted.
func RegistrationTypeSplit(registrations []models.Registration) []Slice {
	var individual, team int
	for _, r := range registrations {
		switch r.RegistrationType {
		case models.RegistrationIndividual:
			individual++
		case models.RegistrationTeam:
			team++
		}
	}
	return nonEmptySlices(
		Slice{Name: "Individual", Value: individual},
		Slice{Name: "Team", Value: team},
	)
}

// FeeTypeSplit counts free (no fee or fee <= 0) and paid events.
func FeeTypeSplit(events []models.Event) []Slice {
	var free, paid int
	for _, e := range events {
		if e.Fee() > 0 {
			paid++
		} else {
			free++
		}
	}
	return nonEmptySlices(
		Slice{Name: "Free", Value: free},
		Slice{Name: "Paid", Value: paid},
	)
}

// UserRoleSplit counts users per role. Organiser, support and admin flags are
// counted independently, so one user may appear in several of them; regular
// users hold none.
func UserRoleSplit(users []models.User) []Slice {
	var regular, organisers, support, admins int
	for _, u := range users {
		if u.IsRegular() {
			regular++
		}
		if u.IsOrganiser {
			organisers++
		}
		if u.IsSupport {
			support++
		}
		if u.IsMasterAdmin {
			admins++
		}
	}
	return nonEmptySlices(
		Slice{Name: "Regular", Value: regular},
		Slice{Name: "Organiser", Value: organisers},
		Slice{Name: "Support", Value: support},
		Slice{Name: "Admin", Value: admins},
	)
}

// MonthlyTimeline buckets registrations and events by creation month (UTC) and
// returns every month from the earliest to the latest bucket, zero-filled.
func MonthlyTimeline(registrations []models.Registration, events []models.Event) []TimelinePoint {
	regCounts := make(map[string]int)
	eventCounts := make(map[string]int)
	var first, last time.Time

	track := func(raw string, counts map[string]int) {
		t, ok := ParseTimestamp(raw)
		if !ok {
			return
		}
		month := monthStart(t)
		counts[month.Format(timelineMonthLayout)]++
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if last.IsZero() || month.After(last) {
			last = month
		}
	}

	for _, r := range registrations {
		track(r.CreatedAt, regCounts)
	}
	for _, e := range events {
		track(e.CreatedAt, eventCounts)
	}

	points := make([]TimelinePoint, 0)
	if first.IsZero() {
		return points
	}
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format(timelineMonthLayout)
		points = append(points, TimelinePoint{
			Month:         key,
			Label:         m.Format(timelineLabelLayout),
			Registrations: regCounts[key],
			Events:        eventCounts[key],
		})
	}
	return points
}

// TopOrganisers groups events by creator email and returns the most active.
func TopOrganisers(events []models.Event) []OrganiserRow {
	rows := make([]OrganiserRow, 0)
	index := make(map[string]int)

	for _, e := range events {
		creator := e.CreatedBy
		if creator == "" {
			creator = unknownGroupName
		}
		i, ok := index[creator]
		if !ok {
			i = len(rows)
			index[creator] = i
			rows = append(rows, OrganiserRow{
				Name:     Truncate(creator, organiserNameLimit),
				FullName: creator,
			})
		}
		rows[i].Events++
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Events > rows[b].Events
	})
	return capRows(rows, topOrganisersLimit)
}

// FestRegistrations lists fests by registration count, highest first.
func FestRegistrations(fests []models.Fest) []FestRow {
	rows := make([]FestRow, 0, len(fests))
	for _, f := range fests {
		rows = append(rows, FestRow{
			FestID:        f.FestID,
			Name:          Truncate(f.FestTitle, festTitleLimit),
			FullName:      f.FestTitle,
			Registrations: f.Registrations(),
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Registrations > rows[b].Registrations
	})
	return rows
}

// Truncate shortens s to limit characters followed by an ellipsis. Strings of
// limit characters or fewer are returned unchanged.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationEllipsis
}

func capRows[T any](rows []T, n int) []T {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

func nonEmptySlices(slices ...Slice) []Slice {
	out := make([]Slice, 0, len(slices))
	for _, s := range slices {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
