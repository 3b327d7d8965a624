package analytics

import (
	"strings"
	"time"
)

// DateRange is the symbolic dashboard range selector.
type DateRange string

const (
	Range7Days  DateRange = "7d"
	Range30Days DateRange = "30d"
	Range90Days DateRange = "90d"
	RangeYear   DateRange = "1y"
	RangeAll    DateRange = "all"

	// DefaultDateRange is used when no range is supplied.
	DefaultDateRange = Range30Days
)

const day = 24 * time.Hour

// ParseDateRange normalizes a range token. ok is false for anything outside
// 7d, 30d, 90d, 1y and all.
func ParseDateRange(value string) (DateRange, bool) {
	r := DateRange(strings.ToLower(strings.TrimSpace(value)))
	switch r {
	case Range7Days, Range30Days, Range90Days, RangeYear, RangeAll:
		return r, true
	}
	return DefaultDateRange, false
}

// Days returns the window length in days. Unrecognized tokens fall back to 30;
// RangeAll has no length and returns 0.
func (r DateRange) Days() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	case RangeYear:
		return 365
	case RangeAll:
		return 0
	default:
		return 30
	}
}

func (r DateRange) IsAll() bool {
	return r == RangeAll
}

// Period is a half-open time interval [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Window is the resolved form of a DateRange at a given instant. Cutoff and
// Previous are both nil for RangeAll.
type Window struct {
	Range    DateRange  `json:"range"`
	Cutoff   *time.Time `json:"cutoff"`
	Previous *Period    `json:"previous"`
}

// ResolveWindow maps a range token to the current window's cutoff (now - N days)
// and the equal-length, non-overlapping window before it (now - 2N to now - N).
func ResolveWindow(r DateRange, now time.Time) Window {
	if r.IsAll() {
		return Window{Range: r}
	}

	length := time.Duration(r.Days()) * day
	cutoff := now.Add(-length)
	return Window{
		Range:  r,
		Cutoff: &cutoff,
		Previous: &Period{
			Start: now.Add(-2 * length),
			End:   cutoff,
		},
	}
}
