package httpapi

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"givebox/internal/http/handlers"
	"givebox/internal/infra"
	"givebox/internal/middleware"
)

// NewRouter wires every route. Web pages run inside the session middleware;
// the JSON API is stateless and gets CORS instead.
func NewRouter(app *handlers.App, sessions *scs.SessionManager, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
	)

	// Web surface (session-backed)
	r.Group(func(r chi.Router) {
		r.Use(sessions.LoadAndSave)

		r.Get("/", app.Welcome)
		r.Get("/donate", app.DonateShow)
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/donate", app.DonateSubmit)

		r.Get("/admin/login", app.AdminLoginShow)
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
			Post("/admin/login", app.AdminLogin)
		r.Post("/admin/logout", app.AdminLogout)
		r.With(middleware.RequireAdmin(sessions)).Get("/admin", app.AdminDashboard)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))

		r.Get("/donations", app.DonationsIndex)
		r.Post("/donations", app.DonationsStore)
		r.Put("/donations/{id}", app.DonationsUpdate)
		r.Patch("/donations/{id}", app.DonationsUpdate)
		r.Delete("/donations/{id}", app.DonationsDestroy)

		r.Get("/currency/rates", app.CurrencyRates)
	})

	// Health
	r.Get("/v1/healthz", app.Health)

	return r
}
