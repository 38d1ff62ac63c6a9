package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlannedRisk(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, PlannedRisk(10000, 1.2000, 1.1900), 1e-9)
	assert.InDelta(t, 100.0, PlannedRisk(10000, 1.1900, 1.2000), 1e-9)
	assert.Zero(t, PlannedRisk(10000, 1.2, 1.2))
}

func TestRR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		entry, stop, tp  float64
		want             float64
	}{
		{"long 1:2", 1.2000, 1.1950, 1.2100, 2.0},
		{"short 1:3", 150.00, 150.50, 148.50, 3.0},
		{"zero risk", 1.2000, 1.2000, 1.2100, 0},
		{"target on entry", 1.2000, 1.1950, 1.2000, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, RR(tt.entry, tt.stop, tt.tp), 1e-9)
		})
	}
}

func TestRiskPct(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.01, RiskPct(100, 10000), 1e-12)
	assert.True(t, math.IsInf(RiskPct(100, 0), 1))
	assert.True(t, math.IsInf(RiskPct(100, -50), 1))
}
