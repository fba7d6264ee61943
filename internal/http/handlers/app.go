package handlers

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"

	"givebox/internal/currency"
	"givebox/internal/domain"
	"givebox/internal/middleware"
	"givebox/internal/web"
)

const csrfTokenKey = "csrf_token"

// App bundles the dependencies shared by every handler.
type App struct {
	Logger       zerolog.Logger
	Donations    domain.DonationRepository
	Users        domain.UserRepository
	Sessions     *scs.SessionManager
	Converter    *currency.Converter
	BaseCurrency string
	Views        *web.Templates
}

func NewApp(
	logger zerolog.Logger,
	donations domain.DonationRepository,
	users domain.UserRepository,
	sessions *scs.SessionManager,
	converter *currency.Converter,
	baseCurrency string,
	views *web.Templates,
) *App {
	return &App{
		Logger:       logger,
		Donations:    donations,
		Users:        users,
		Sessions:     sessions,
		Converter:    converter,
		BaseCurrency: baseCurrency,
		Views:        views,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]any{"error": slug, "message": msg})
}

func (a *App) render(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := a.Views.Render(w, name, data); err != nil {
		a.Logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// csrfToken returns the session's anti-forgery token, minting one on first use.
func (a *App) csrfToken(ctx context.Context) string {
	token := a.Sessions.GetString(ctx, csrfTokenKey)
	if token == "" {
		token = newCSRFToken()
		a.Sessions.Put(ctx, csrfTokenKey, token)
	}
	return token
}

func (a *App) rotateCSRFToken(ctx context.Context) {
	a.Sessions.Put(ctx, csrfTokenKey, newCSRFToken())
}

func (a *App) checkCSRF(r *http.Request) bool {
	token := a.Sessions.GetString(r.Context(), csrfTokenKey)
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(r.PostFormValue("_token"))) == 1
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// popFlash drains the one-shot status messages stored for the next page view.
func (a *App) popFlash(ctx context.Context) (success, errMsg string) {
	return a.Sessions.PopString(ctx, middleware.FlashSuccessKey),
		a.Sessions.PopString(ctx, middleware.FlashErrorKey)
}

// stashFormState flashes validation errors plus the submitted input so the
// follow-up GET can re-render the form populated.
func (a *App) stashFormState(ctx context.Context, errs, old map[string]string) {
	if encoded, err := json.Marshal(errs); err == nil {
		a.Sessions.Put(ctx, middleware.FormErrorsKey, string(encoded))
	}
	if encoded, err := json.Marshal(old); err == nil {
		a.Sessions.Put(ctx, middleware.FormOldKey, string(encoded))
	}
}

func (a *App) popFormState(ctx context.Context) (errs, old map[string]string) {
	errs = map[string]string{}
	old = map[string]string{}
	if raw := a.Sessions.PopString(ctx, middleware.FormErrorsKey); raw != "" {
		_ = json.Unmarshal([]byte(raw), &errs)
	}
	if raw := a.Sessions.PopString(ctx, middleware.FormOldKey); raw != "" {
		_ = json.Unmarshal([]byte(raw), &old)
	}
	return errs, old
}
