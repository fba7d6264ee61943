package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// TargetCurrencies is the fixed set of codes the application understands for
// conversion display.
var TargetCurrencies = []string{"USD", "EUR", "GBP", "INR"}

// Rate is a single exchange rate expressed relative to the snapshot base.
type Rate struct {
	Code  string          `json:"code"`
	Value decimal.Decimal `json:"value"`
}

// Snapshot is an immutable, timestamped set of exchange rates. A snapshot is
// never mutated in place: each refresh produces a new value that replaces the
// cached one wholesale.
type Snapshot struct {
	Base        string          `json:"base"`
	Rates       map[string]Rate `json:"rates"`
	Success     bool            `json:"success"`
	Fallback    bool            `json:"fallback,omitempty"`
	LastUpdated time.Time       `json:"last_updated"`
}

// FallbackSnapshot returns the hardcoded rate table served when the live
// provider is unavailable. Success is always false so conversions become
// no-ops rather than guesses from stale constants.
func FallbackSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Base: "USD",
		Rates: map[string]Rate{
			"USD": {Code: "USD", Value: decimal.RequireFromString("1.00")},
			"EUR": {Code: "EUR", Value: decimal.RequireFromString("0.92")},
			"GBP": {Code: "GBP", Value: decimal.RequireFromString("0.79")},
			"INR": {Code: "INR", Value: decimal.RequireFromString("83.12")},
		},
		Success:     false,
		Fallback:    true,
		LastUpdated: now,
	}
}

// Symbol maps a known currency code to its display symbol. Unknown codes
// render as the raw code string.
func Symbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "INR":
		return "₹"
	default:
		return code
	}
}
