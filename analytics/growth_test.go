package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		name              string
		current, previous int
		want              GrowthIndicator
	}{
		{name: "both zero", current: 0, previous: 0, want: GrowthIndicator{Pct: "0%", Up: false, Neutral: true}},
		{name: "from zero", current: 5, previous: 0, want: GrowthIndicator{Pct: "+100%", Up: true, Neutral: false}},
		{name: "doubled", current: 10, previous: 5, want: GrowthIndicator{Pct: "+100.0%", Up: true, Neutral: false}},
		{name: "halved", current: 5, previous: 10, want: GrowthIndicator{Pct: "-50.0%", Up: false, Neutral: false}},
		{name: "flat", current: 7, previous: 7, want: GrowthIndicator{Pct: "+0.0%", Up: false, Neutral: true}},
		{name: "to zero", current: 0, previous: 4, want: GrowthIndicator{Pct: "-100.0%", Up: false, Neutral: false}},
		{name: "fractional", current: 4, previous: 3, want: GrowthIndicator{Pct: "+33.3%", Up: true, Neutral: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Growth(tt.current, tt.previous))
		})
	}
}

func TestComputeGrowthAbsentForAllRange(t *testing.T) {
	assert.Nil(t, ComputeGrowth(RangeAll, Filtered{}, Filtered{}))

	g := ComputeGrowth(Range7Days, Filtered{}, Filtered{})
	if assert.NotNil(t, g) {
		assert.True(t, g.Events.Neutral)
	}
}
