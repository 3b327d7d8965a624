package analytics

import "time"

// Dashboard is the full set of view-models for one combination of filters. It is
// rebuilt from scratch for every parameter change and never mutated afterwards.
type Dashboard struct {
	Params      Params    `json:"params"`
	Window      Window    `json:"window"`
	GeneratedAt time.Time `json:"generated_at"`

	KPIs   KPIs           `json:"kpis"`
	Growth *GrowthSummary `json:"growth"`

	DepartmentChart []DepartmentRow `json:"department_chart"`
	DepartmentTable []DepartmentRow `json:"department_table"`
	TopEventsChart  []EventRow      `json:"top_events_chart"`
	TopEventsTable  []EventRow      `json:"top_events_table"`

	RegistrationTypes []Slice `json:"registration_types"`
	FeeTypes          []Slice `json:"fee_types"`
	UserRoles         []Slice `json:"user_roles"`

	Timeline          []TimelinePoint `json:"timeline"`
	TopOrganisers     []OrganiserRow  `json:"top_organisers"`
	FestRegistrations []FestRow       `json:"fest_registrations"`
}

// Compute runs the whole pipeline: resolve the window, filter the snapshot for
// the current and previous periods, then aggregate. It is a pure function of its
// arguments.
func Compute(c Collections, p Params, now time.Time) *Dashboard {
	p = p.Normalize()
	current := ApplyFilters(c, p, now)

	departments := DepartmentBreakdown(current.Events)
	topEvents := TopEvents(current.Events)

	d := &Dashboard{
		Params:      p,
		Window:      ResolveWindow(p.DateRange, now),
		GeneratedAt: now,

		KPIs: ComputeKPIs(current, now),

		DepartmentChart: capRows(departments, p.TopN),
		DepartmentTable: departments,
		TopEventsChart:  capRows(topEvents, topEventsChartSize),
		TopEventsTable:  topEvents,

		RegistrationTypes: RegistrationTypeSplit(current.Registrations),
		FeeTypes:          FeeTypeSplit(current.Events),
		UserRoles:         UserRoleSplit(current.Users),

		Timeline:          MonthlyTimeline(current.Registrations, current.Events),
		TopOrganisers:     TopOrganisers(current.Events),
		FestRegistrations: FestRegistrations(current.Fests),
	}

	if !p.DateRange.IsAll() {
		d.Growth = ComputeGrowth(p.DateRange, current, ApplyPriorFilters(c, p, now))
	}
	return d
}
