package trade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferStatus(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name string
		tr   Trade
		want Status
	}{
		{"no exit evidence", Trade{Status: Open}, Open},
		{"exit time set", Trade{Status: Open, ExitTime: timePtr(now)}, Closed},
		{"exit price set", Trade{Status: Open, ExitPrice: ptr(1.1)}, Closed},
		{"profit loss set", Trade{Status: Open, ProfitLoss: ptr(-20)}, Closed},
		{"breakeven pnl counts", Trade{Status: Open, ProfitLoss: ptr(0)}, Closed},
		{"already closed stays closed", Trade{Status: Closed}, Closed},
		{"empty status no evidence", Trade{}, Open},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, InferStatus(&tt.tr))
		})
	}
}

func TestHasExitEvidence(t *testing.T) {
	t.Parallel()

	var tr Trade
	assert.False(t, tr.HasExitEvidence())

	tr.ProfitLoss = ptr(0)
	assert.True(t, tr.HasExitEvidence())
}
