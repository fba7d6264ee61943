package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"givebox/internal/currency"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed page set. Pages are self-contained; the
// presentation layer is deliberately minimal.
type Templates struct {
	set *template.Template
}

func NewTemplates() (*Templates, error) {
	set, err := template.New("").Funcs(template.FuncMap{
		"symbol": currency.Symbol,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Render(w io.Writer, name string, data any) error {
	return t.set.ExecuteTemplate(w, name, data)
}

// WelcomePage backs the landing page.
type WelcomePage struct {
	Success string
	Error   string
}

// DonatePage backs the donation form, including flashed validation errors and
// the submitter's previous input.
type DonatePage struct {
	Success    string
	Error      string
	Errors     map[string]string
	Old        map[string]string
	Currencies []string
	CSRF       string
}

// LoginPage backs the admin login form.
type LoginPage struct {
	Success string
	Error   string
	Errors  map[string]string
	Email   string
	CSRF    string
}

// DonationView is one dashboard table row.
type DonationView struct {
	ID         string
	DonorName  string
	DonorEmail string
	Amount     string
	Currency   string
	Converted  string
	Message    string
	CreatedAt  time.Time
}

// DashboardStats are the admin stat cards, amounts expressed in the base currency.
type DashboardStats struct {
	Total       int
	TotalAmount string
	AvgAmount   string
	TodayCount  int
}

// AdminPage backs the protected dashboard.
type AdminPage struct {
	Success      string
	Error        string
	UserName     string
	BaseCurrency string
	Donations    []DonationView
	Stats        DashboardStats
	Rates        map[string]currency.FormattedRate
	CSRF         string
}
