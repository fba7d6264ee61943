package handlers

import "net/http"

// CurrencyRates serves the formatted rate list used for display:
// code -> {code, rate, symbol}. Provider failures never surface here; the
// cache substitutes its fallback table instead.
func (a *App) CurrencyRates(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Converter.FormattedRates(r.Context()))
}
