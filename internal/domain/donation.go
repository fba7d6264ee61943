package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxDonorNameLen  = 255
	maxDonorEmailLen = 255
	maxCurrencyLen   = 3
	maxMessageLen    = 1000
)

// Donation represents a single supporter contribution. Records are
// insert-only: nothing in the application updates or deletes them.
type Donation struct {
	ID         string
	DonorName  string
	DonorEmail string
	Amount     decimal.Decimal
	Currency   string
	Message    string
	CreatedAt  time.Time
}

// DonationInput carries the raw submitted fields before validation. Amount
// stays a string because both the HTML form and the JSON API deliver it as
// text; it is parsed only after validation accepts it.
type DonationInput struct {
	DonorName  string
	DonorEmail string
	Amount     string
	Currency   string
	Message    string
}

var minDonationAmount = decimal.RequireFromString("0.01")

// NewDonation validates the input and, when every rule passes, builds a
// Donation ready for persistence. On failure it returns a field-keyed message
// map and no donation; callers must not write anything in that case. The
// currency defaults to baseCurrency when the submitter left it blank.
func NewDonation(in DonationInput, baseCurrency string) (*Donation, map[string]string) {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.DonorName)
	switch {
	case name == "":
		errs["donor_name"] = "The donor name field is required."
	case len(name) > maxDonorNameLen:
		errs["donor_name"] = "The donor name field must not be greater than 255 characters."
	}

	email := strings.TrimSpace(in.DonorEmail)
	switch {
	case email == "":
		errs["donor_email"] = "The donor email field is required."
	case len(email) > maxDonorEmailLen:
		errs["donor_email"] = "The donor email field must not be greater than 255 characters."
	case !validEmail(email):
		errs["donor_email"] = "The donor email field must be a valid email address."
	}

	var amount decimal.Decimal
	rawAmount := strings.TrimSpace(in.Amount)
	if rawAmount == "" {
		errs["amount"] = "The amount field is required."
	} else {
		parsed, err := decimal.NewFromString(rawAmount)
		switch {
		case err != nil:
			errs["amount"] = "The amount field must be a number."
		case parsed.LessThan(minDonationAmount):
			errs["amount"] = "The amount field must be at least 0.01."
		default:
			amount = parsed
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if len(currency) > maxCurrencyLen {
		errs["currency"] = "The currency field must not be greater than 3 characters."
	}
	if currency == "" {
		currency = strings.ToUpper(baseCurrency)
	}

	message := strings.TrimSpace(in.Message)
	if len(message) > maxMessageLen {
		errs["message"] = "The message field must not be greater than 1000 characters."
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Donation{
		DonorName:  name,
		DonorEmail: email,
		Amount:     amount.Round(2),
		Currency:   currency,
		Message:    message,
	}, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// reject addresses carrying a display name ("Jane <jane@x.com>")
	return addr.Address == s
}
