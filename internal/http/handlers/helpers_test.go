package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"givebox/internal/currency"
	"givebox/internal/domain"
	"givebox/internal/middleware"
	"givebox/internal/web"
)

type fakeDonationRepo struct {
	items     []domain.Donation
	creates   int
	createErr error
}

func (f *fakeDonationRepo) Create(ctx context.Context, donation *domain.Donation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	donation.ID = fmt.Sprintf("donation-%d", f.creates)
	donation.CreatedAt = time.Now().UTC()
	f.items = append([]domain.Donation{*donation}, f.items...)
	return nil
}

func (f *fakeDonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	out := make([]domain.Donation, len(f.items))
	copy(out, f.items)
	return out, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := f.users[email]; ok {
		return &user, nil
	}
	return nil, domain.ErrNotFound
}

type fixedRates struct {
	snap currency.Snapshot
}

func (f fixedRates) GetRates(ctx context.Context) currency.Snapshot {
	return f.snap
}

func successSnapshot() currency.Snapshot {
	return currency.Snapshot{
		Base: "USD",
		Rates: map[string]currency.Rate{
			"USD": {Code: "USD", Value: decimal.RequireFromString("1")},
			"EUR": {Code: "EUR", Value: decimal.RequireFromString("0.92")},
			"GBP": {Code: "GBP", Value: decimal.RequireFromString("0.79")},
			"INR": {Code: "INR", Value: decimal.RequireFromString("83.12")},
		},
		Success:     true,
		LastUpdated: time.Now().UTC(),
	}
}

func newTestApp(t *testing.T, donations *fakeDonationRepo, users *fakeUserRepo) *App {
	t.Helper()
	views, err := web.NewTemplates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	if users == nil {
		users = &fakeUserRepo{}
	}
	return NewApp(
		zerolog.New(io.Discard),
		donations,
		users,
		scs.New(),
		currency.NewConverter(fixedRates{snap: successSnapshot()}),
		"USD",
		views,
	)
}

// webMux mirrors the session-backed web routes from the real router.
func webMux(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/donate", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			app.DonateShow(w, r)
		case http.MethodPost:
			app.DonateSubmit(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			app.AdminLoginShow(w, r)
		case http.MethodPost:
			app.AdminLogin(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/admin/logout", app.AdminLogout)
	mux.Handle("/admin", middleware.RequireAdmin(app.Sessions)(http.HandlerFunc(app.AdminDashboard)))
	return app.Sessions.LoadAndSave(mux)
}

// browser drives a handler while carrying cookies between requests, enough to
// follow the flash-and-redirect flows.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, handler http.Handler) *browser {
	return &browser{t: t, handler: handler, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) sessionCookie() string {
	if c, ok := b.cookies["session"]; ok {
		return c.Value
	}
	return ""
}

var csrfRe = regexp.MustCompile(`name="_token" value="([0-9a-f]{64})"`)

func extractCSRF(t *testing.T, body string) string {
	t.Helper()
	m := csrfRe.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no csrf token found in body:\n%s", body)
	}
	return m[1]
}
