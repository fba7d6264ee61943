package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource yields the current snapshot. Satisfied by *Cache.
type RateSource interface {
	GetRates(ctx context.Context) Snapshot
}

// Converter turns amounts from one currency into another via the snapshot's
// shared base currency. It only ever reads snapshots, never mutates them.
type Converter struct {
	source RateSource
}

func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

var one = decimal.NewFromInt(1)

// Convert returns amount expressed in the target currency, rounded to two
// decimal places. When the snapshot is not trustworthy (Success=false) the
// amount passes through unchanged. Currencies missing from the snapshot are
// treated as base-currency-equivalent (rate 1.0).
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}

	snap := c.source.GetRates(ctx)
	if !snap.Success {
		return amount
	}

	baseAmount := amount.Div(rateOrOne(snap, from))
	return baseAmount.Mul(rateOrOne(snap, to)).Round(2)
}

// FormattedRate is the display shape served by the rates API.
type FormattedRate struct {
	Code   string          `json:"code"`
	Rate   decimal.Decimal `json:"rate"`
	Symbol string          `json:"symbol"`
}

// FormattedRates maps every rate in the current snapshot to its display form.
func (c *Converter) FormattedRates(ctx context.Context) map[string]FormattedRate {
	snap := c.source.GetRates(ctx)
	formatted := make(map[string]FormattedRate, len(snap.Rates))
	for code, rate := range snap.Rates {
		formatted[code] = FormattedRate{
			Code:   code,
			Rate:   rate.Value,
			Symbol: Symbol(code),
		}
	}
	return formatted
}

func rateOrOne(snap Snapshot, code string) decimal.Decimal {
	if rate, ok := snap.Rates[code]; ok && !rate.Value.IsZero() {
		return rate.Value
	}
	return one
}
