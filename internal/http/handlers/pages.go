package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"givebox/internal/currency"
	"givebox/internal/middleware"
	"givebox/internal/web"
)

// Welcome renders the landing page.
func (a *App) Welcome(w http.ResponseWriter, r *http.Request) {
	success, errMsg := a.popFlash(r.Context())
	a.render(w, http.StatusOK, "welcome.html", web.WelcomePage{Success: success, Error: errMsg})
}

// DonateShow renders the donation form, repopulated from any flashed
// validation failure.
func (a *App) DonateShow(w http.ResponseWriter, r *http.Request) {
	success, errMsg := a.popFlash(r.Context())
	errs, old := a.popFormState(r.Context())
	a.render(w, http.StatusOK, "donate.html", web.DonatePage{
		Success:    success,
		Error:      errMsg,
		Errors:     errs,
		Old:        old,
		Currencies: currency.TargetCurrencies,
		CSRF:       a.csrfToken(r.Context()),
	})
}

// AdminLoginShow renders the login form, or sends an already signed-in admin
// straight to the dashboard.
func (a *App) AdminLoginShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if a.Sessions.GetString(ctx, middleware.SessionUserIDKey) != "" && a.Sessions.GetBool(ctx, middleware.SessionIsAdminKey) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	success, errMsg := a.popFlash(ctx)
	errs, old := a.popFormState(ctx)
	a.render(w, http.StatusOK, "login.html", web.LoginPage{
		Success: success,
		Error:   errMsg,
		Errors:  errs,
		Email:   old["email"],
		CSRF:    a.csrfToken(ctx),
	})
}

// AdminDashboard renders the protected reporting view: every donation newest
// first, with amounts additionally shown converted to the base currency, plus
// aggregate stat cards and the current rate table.
func (a *App) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donations, err := a.Donations.List(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	views := make([]web.DonationView, 0, len(donations))
	total := decimal.Zero
	today := 0
	now := time.Now()
	for _, d := range donations {
		converted := a.Converter.Convert(ctx, d.Amount, d.Currency, a.BaseCurrency)
		total = total.Add(converted)
		if sameDay(d.CreatedAt, now) {
			today++
		}
		views = append(views, web.DonationView{
			ID:         d.ID,
			DonorName:  d.DonorName,
			DonorEmail: d.DonorEmail,
			Amount:     d.Amount.StringFixed(2),
			Currency:   d.Currency,
			Converted:  currency.Symbol(a.BaseCurrency) + converted.StringFixed(2),
			Message:    d.Message,
			CreatedAt:  d.CreatedAt,
		})
	}

	avg := decimal.Zero
	if len(donations) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(donations)))).Round(2)
	}

	success, errMsg := a.popFlash(ctx)
	a.render(w, http.StatusOK, "admin.html", web.AdminPage{
		Success:      success,
		Error:        errMsg,
		UserName:     a.Sessions.GetString(ctx, middleware.SessionUserNameKey),
		BaseCurrency: a.BaseCurrency,
		Donations:    views,
		Stats: web.DashboardStats{
			Total:       len(donations),
			TotalAmount: total.StringFixed(2),
			AvgAmount:   avg.StringFixed(2),
			TodayCount:  today,
		},
		Rates: a.Converter.FormattedRates(ctx),
		CSRF:  a.csrfToken(ctx),
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
