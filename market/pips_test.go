package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pair string
		want float64
	}{
		{"eurusd", "EURUSD", 0.0001},
		{"usdjpy", "USDJPY", 0.01},
		{"lowercase jpy", "usd/jpy", 0.01},
		{"underscored", "EUR_USD", 0.0001},
		{"jpy base", "JPYCHF", 0.01},
		{"unknown pair", "XAUUSD", 0.0001},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, PipSize(tt.pair), 1e-12)
		})
	}
}

func TestPipLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -4, PipLocation("EURUSD"))
	assert.Equal(t, -2, PipLocation("USDJPY"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"EUR/USD", "EURUSD"},
		{"eur_usd", "EURUSD"},
		{" GBPUSD ", "GBPUSD"},
		{"usd-jpy", "USDJPY"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestValidSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"EURUSD", true},
		{"gbp/jpy", true},
		{"EURJPYX", true},
		{"EU", false},
		{"EUR123", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSymbol(tt.in), tt.in)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	meta, ok := Lookup("eur/usd")
	assert.True(t, ok)
	assert.Equal(t, "USD", meta.QuoteCurrency)

	_, ok = Lookup("XAUUSD")
	assert.False(t, ok)
}
