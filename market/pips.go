// market/pips.go
package market

import "strings"

// PipSize returns the pip convention for a currency pair based on its textual
// form: JPY-quoted pairs tick in 0.01, everything else in 0.0001. Matching is
// by substring so "USDJPY", "USD_JPY" and "usd/jpy" all agree. This is the
// simplified retail FX convention, not a lookup against a real instrument
// table.
func PipSize(pair string) float64 {
	if strings.Contains(strings.ToUpper(pair), "JPY") {
		return 0.01
	}
	return 0.0001
}

// PipLocation returns the base-10 exponent of the pip size, e.g. -4 for
// EUR_USD and -2 for USD_JPY.
func PipLocation(pair string) int {
	if PipSize(pair) == 0.01 {
		return -2
	}
	return -4
}

// ValidSymbol reports whether a symbol normalizes to a plausible FX pair:
// six or seven ASCII letters. Pairs outside the Instruments table still pass;
// the journal accepts any pair and falls back to the textual pip convention.
func ValidSymbol(symbol string) bool {
	s := Normalize(symbol)
	if len(s) < 6 || len(s) > 7 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Normalize canonicalizes a broker symbol into journal form: separators
// stripped, uppercased. "eur/usd", "EUR_USD" and "EURUSD " all become
// "EURUSD".
func Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
