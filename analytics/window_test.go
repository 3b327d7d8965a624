package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token DateRange
		days  int
	}{
		{name: "7 days", token: Range7Days, days: 7},
		{name: "30 days", token: Range30Days, days: 30},
		{name: "90 days", token: Range90Days, days: 90},
		{name: "one year", token: RangeYear, days: 365},
		{name: "unknown token falls back to 30", token: DateRange("fortnight"), days: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ResolveWindow(tt.token, now)
			require.NotNil(t, w.Cutoff)
			require.NotNil(t, w.Previous)

			length := time.Duration(tt.days) * 24 * time.Hour
			assert.Equal(t, now.Add(-length), *w.Cutoff)
			assert.Equal(t, now.Add(-2*length), w.Previous.Start)
			assert.Equal(t, *w.Cutoff, w.Previous.End)
		})
	}
}

func TestResolveWindowAll(t *testing.T) {
	w := ResolveWindow(RangeAll, time.Now())
	assert.Nil(t, w.Cutoff)
	assert.Nil(t, w.Previous)
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		in     string
		want   DateRange
		wantOK bool
	}{
		{in: "7d", want: Range7Days, wantOK: true},
		{in: " 1Y ", want: RangeYear, wantOK: true},
		{in: "ALL", want: RangeAll, wantOK: true},
		{in: "", want: DefaultDateRange, wantOK: false},
		{in: "2w", want: DefaultDateRange, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDateRange(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPeriodContainsIsHalfOpen(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	p := Period{Start: start, End: end}

	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(end.Add(-time.Nanosecond)))
	assert.False(t, p.Contains(end))
	assert.False(t, p.Contains(start.Add(-time.Nanosecond)))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{name: "rfc3339", in: "2024-03-05T10:20:30Z", want: time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), wantOK: true},
		{name: "rfc3339 offset and millis", in: "2024-03-05T10:20:30.500+05:30", want: time.Date(2024, 3, 5, 4, 50, 30, 500000000, time.UTC), wantOK: true},
		{name: "no zone", in: "2024-03-05T10:20:30", want: time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), wantOK: true},
		{name: "postgres text", in: "2024-03-05 10:20:30.123456+00", want: time.Date(2024, 3, 5, 10, 20, 30, 123456000, time.UTC), wantOK: true},
		{name: "date only", in: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "empty", in: "", wantOK: false},
		{name: "garbage", in: "next tuesday", wantOK: false},
		{name: "impossible date", in: "2024-02-31", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}
