package analytics

import "fmt"

// GrowthIndicator is a period-over-period change ready for display.
type GrowthIndicator struct {
	Pct     string `json:"pct"`
	Up      bool   `json:"up"`
	Neutral bool   `json:"neutral"`
}

// Growth compares a current-period count with the previous period's. Growth from
// zero is reported as a fixed +100% rather than infinity.
func Growth(current, previous int) GrowthIndicator {
	if previous == 0 {
		if current == 0 {
			return GrowthIndicator{Pct: "0%", Neutral: true}
		}
		return GrowthIndicator{Pct: "+100%", Up: true}
	}

	pct := float64(current-previous) / float64(previous) * 100
	return GrowthIndicator{
		Pct:     fmt.Sprintf("%+.1f%%", pct),
		Up:      pct > 0,
		Neutral: pct == 0,
	}
}

// GrowthSummary holds growth for each headline count.
type GrowthSummary struct {
	Users         GrowthIndicator `json:"users"`
	Events        GrowthIndicator `json:"events"`
	Fests         GrowthIndicator `json:"fests"`
	Registrations GrowthIndicator `json:"registrations"`
	Participants  GrowthIndicator `json:"participants"`
}

// ComputeGrowth compares the current and prior filtered sets. It returns nil for
// RangeAll, where no previous period exists; callers must treat that as absent,
// not as zero growth.
func ComputeGrowth(r DateRange, current, previous Filtered) *GrowthSummary {
	if r.IsAll() {
		return nil
	}
	return &GrowthSummary{
		Users:         Growth(len(current.Users), len(previous.Users)),
		Events:        Growth(len(current.Events), len(previous.Events)),
		Fests:         Growth(len(current.Fests), len(previous.Fests)),
		Registrations: Growth(len(current.Registrations), len(previous.Registrations)),
		Participants:  Growth(TotalParticipants(current.Registrations), TotalParticipants(previous.Registrations)),
	}
}
