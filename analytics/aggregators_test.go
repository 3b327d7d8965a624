package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/models"
)

func TestTotalParticipants(t *testing.T) {
	regs := []models.Registration{
		{RegistrationType: models.RegistrationTeam, Teammates: []interface{}{"a", "b"}},
		{RegistrationType: models.RegistrationIndividual},
		{RegistrationType: models.RegistrationTeam},
		{RegistrationType: models.RegistrationIndividual, Teammates: []interface{}{"ignored"}},
	}
	assert.Equal(t, 3+1+1+1, TotalParticipants(regs))
	assert.Equal(t, 0, TotalParticipants(nil))
}

func TestAverageRegistrations(t *testing.T) {
	assert.Equal(t, "0", AverageRegistrations(12, 0))
	assert.Equal(t, "0", AverageRegistrations(0, 0))
	assert.Equal(t, "2.5", AverageRegistrations(5, 2))
	assert.Equal(t, "3.3", AverageRegistrations(10, 3))
	assert.Equal(t, "0.0", AverageRegistrations(0, 4))
}

func TestEstimatedRevenueTreatsMissingAsZero(t *testing.T) {
	events := []models.Event{
		{RegistrationFee: floatPtr(100), RegistrationCount: intPtr(3)},
		{RegistrationFee: nil, RegistrationCount: intPtr(50)},
		{RegistrationFee: floatPtr(20), RegistrationCount: nil},
		{RegistrationFee: floatPtr(12.5), RegistrationCount: intPtr(2)},
	}
	assert.InDelta(t, 325.0, EstimatedRevenue(events), 1e-9)
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{EventDate: "2024-06-01T12:00:00Z"},
		{EventDate: "2024-07-01"},
		{EventDate: "2024-05-01"},
		{EventDate: ""},
		{EventDate: "tbd"},
	}
	assert.Equal(t, 2, UpcomingEvents(events, now))
}

func TestDepartmentBreakdown(t *testing.T) {
	longDept := "Electronics and Comm" + "Engg." // 25 characters
	require.Len(t, []rune(longDept), 25)

	events := []models.Event{
		{OrganizingDept: "CS", RegistrationCount: intPtr(4)},
		{OrganizingDept: longDept, RegistrationCount: intPtr(1)},
		{OrganizingDept: longDept},
		{OrganizingDept: "", RegistrationCount: intPtr(7)},
		{OrganizingDept: "CS", RegistrationCount: intPtr(6)},
		{OrganizingDept: longDept, RegistrationCount: intPtr(2)},
	}

	rows := DepartmentBreakdown(events)
	require.Len(t, rows, 3)

	assert.Equal(t, string([]rune(longDept)[:18])+"…", rows[0].Name)
	assert.Equal(t, longDept, rows[0].FullName)
	assert.Equal(t, 3, rows[0].Events)
	assert.Equal(t, 3, rows[0].Registrations)

	assert.Equal(t, "CS", rows[1].Name)
	assert.Equal(t, 2, rows[1].Events)
	assert.Equal(t, 10, rows[1].Registrations)

	assert.Equal(t, "Unknown", rows[2].FullName)
	assert.Equal(t, 7, rows[2].Registrations)
}

func TestDepartmentBreakdownTiesKeepFirstSeenOrder(t *testing.T) {
	events := []models.Event{
		{OrganizingDept: "Music"},
		{OrganizingDept: "Art"},
		{OrganizingDept: "Drama"},
	}
	rows := DepartmentBreakdown(events)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Music", "Art", "Drama"}, names)
}

func TestTopEvents(t *testing.T) {
	title := strings.Repeat("x", 30)
	events := []models.Event{
		{EventID: "a", Title: "Quiet", RegistrationCount: intPtr(0)},
		{EventID: "b", Title: title, RegistrationCount: intPtr(9)},
		{EventID: "c", Title: "Missing count"},
		{EventID: "d", Title: "Popular", RegistrationCount: intPtr(20)},
	}

	rows := TopEvents(events)
	require.Len(t, rows, 2)
	assert.Equal(t, "d", rows[0].EventID)
	assert.Equal(t, "b", rows[1].EventID)
	assert.Equal(t, strings.Repeat("x", 28)+"…", rows[1].Name)
	assert.Equal(t, title, rows[1].FullName)
}

func TestSplitsOmitEmptyBuckets(t *testing.T) {
	t.Run("registration types", func(t *testing.T) {
		got := RegistrationTypeSplit([]models.Registration{
			{RegistrationType: models.RegistrationTeam},
			{RegistrationType: models.RegistrationTeam},
		})
		assert.Equal(t, []Slice{{Name: "Team", Value: 2}}, got)
	})

	t.Run("fee types", func(t *testing.T) {
		got := FeeTypeSplit([]models.Event{
			{RegistrationFee: floatPtr(0)},
			{RegistrationFee: floatPtr(-5)},
			{},
		})
		assert.Equal(t, []Slice{{Name: "Free", Value: 3}}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RegistrationTypeSplit(nil))
		assert.Empty(t, FeeTypeSplit(nil))
		assert.Empty(t, UserRoleSplit(nil))
	})
}

func TestUserRoleSplit(t *testing.T) {
	users := []models.User{
		{ID: "plain"},
		{ID: "plain2"},
		{ID: "org", IsOrganiser: true},
		{ID: "org-support", IsOrganiser: true, IsSupport: true},
		{ID: "admin", IsMasterAdmin: true},
	}
	assert.Equal(t, []Slice{
		{Name: "Regular", Value: 2},
		{Name: "Organiser", Value: 2},
		{Name: "Support", Value: 1},
		{Name: "Admin", Value: 1},
	}, UserRoleSplit(users))
}

func TestMonthlyTimelineFillsGaps(t *testing.T) {
	regs := []models.Registration{
		registration("r1", "e", "2024-01-03T00:00:00Z"),
		registration("r2", "e", "2024-01-28T00:00:00Z"),
		registration("r3", "e", "2024-04-10T00:00:00Z"),
		registration("r4", "e", "bogus"),
	}

	points := MonthlyTimeline(regs, nil)
	require.Len(t, points, 4)

	months := make([]string, 0, len(points))
	counts := make([]int, 0, len(points))
	for _, p := range points {
		months = append(months, p.Month)
		counts = append(counts, p.Registrations)
	}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04"}, months)
	assert.Equal(t, []int{2, 0, 0, 1}, counts)
	assert.Equal(t, "Jan 2024", points[0].Label)
}

func TestMonthlyTimelineSpansBothSeriesAcrossYears(t *testing.T) {
	regs := []models.Registration{registration("r", "e", "2024-02-01")}
	events := []models.Event{event("e", "t", "d", "2023-11-15")}

	points := MonthlyTimeline(regs, events)
	require.Len(t, points, 4)
	assert.Equal(t, "2023-11", points[0].Month)
	assert.Equal(t, 1, points[0].Events)
	assert.Equal(t, "2024-02", points[3].Month)
	assert.Equal(t, 1, points[3].Registrations)

	assert.Empty(t, MonthlyTimeline(nil, nil))
}

func TestTopOrganisers(t *testing.T) {
	var events []models.Event
	for i, creator := range []string{"a@x.edu", "b@x.edu", "c@x.edu", "d@x.edu", "e@x.edu", "f@x.edu", "g@x.edu"} {
		for j := 0; j <= i; j++ {
			events = append(events, models.Event{CreatedBy: creator})
		}
	}
	long := "someone.with.a.very.long.address@campus.edu"
	events = append(events, models.Event{CreatedBy: long})

	rows := TopOrganisers(events)
	require.Len(t, rows, 6)
	assert.Equal(t, "g@x.edu", rows[0].FullName)
	assert.Equal(t, 7, rows[0].Events)
	assert.Equal(t, "b@x.edu", rows[5].FullName)

	one := TopOrganisers([]models.Event{{CreatedBy: long}, {}})
	assert.Equal(t, string([]rune(long)[:25])+"…", one[0].Name)
	assert.Equal(t, "Unknown", one[1].Name)
}

func TestFestRegistrations(t *testing.T) {
	fests := []models.Fest{
		{FestID: "f1", FestTitle: "Spring Cultural Festival 2024", RegistrationCount: intPtr(3)},
		{FestID: "f2", FestTitle: "TechFest"},
		{FestID: "f3", FestTitle: "Sports Meet", RegistrationCount: intPtr(40)},
	}

	rows := FestRegistrations(fests)
	require.Len(t, rows, 3)
	assert.Equal(t, "f3", rows[0].FestID)
	assert.Equal(t, "f1", rows[1].FestID)
	assert.Equal(t, "Spring Cultural Festiv…", rows[1].Name)
	assert.Equal(t, 0, rows[2].Registrations)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 18))
	assert.Equal(t, "exactly-eighteen!!", Truncate("exactly-eighteen!!", 18))
	assert.Equal(t, "ab…", Truncate("abc", 2))
	assert.Equal(t, "éé…", Truncate("ééé", 2))
}
