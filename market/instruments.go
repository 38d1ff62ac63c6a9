// market/instruments.go
package market

// InstrumentMeta carries per-instrument context the journal can display
// alongside a trade. The pip fields must agree with PipSize/PipLocation for
// the same symbol.
type InstrumentMeta struct {
	Name             string
	BaseCurrency     string
	QuoteCurrency    string
	PipLocation      int
	MinimumTradeSize float64
}

// Instruments lists the pairs the journal knows extra metadata for. Trades on
// pairs outside this table are still accepted; they just fall back to the
// textual pip convention.
var Instruments = map[string]InstrumentMeta{
	"EURUSD": {
		Name:             "EURUSD",
		BaseCurrency:     "EUR",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		MinimumTradeSize: 0.01,
	},
	"GBPUSD": {
		Name:             "GBPUSD",
		BaseCurrency:     "GBP",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		MinimumTradeSize: 0.01,
	},
	"USDJPY": {
		Name:             "USDJPY",
		BaseCurrency:     "USD",
		QuoteCurrency:    "JPY",
		PipLocation:      -2,
		MinimumTradeSize: 0.01,
	},
	"AUDUSD": {
		Name:             "AUDUSD",
		BaseCurrency:     "AUD",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		MinimumTradeSize: 0.01,
	},
}

// Lookup returns metadata for a symbol in any accepted textual form.
func Lookup(symbol string) (InstrumentMeta, bool) {
	meta, ok := Instruments[Normalize(symbol)]
	return meta, ok
}
