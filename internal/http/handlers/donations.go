package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"givebox/internal/domain"
	"givebox/internal/middleware"
)

type donationDTO struct {
	ID         string    `json:"id"`
	DonorName  string    `json:"donor_name"`
	DonorEmail string    `json:"donor_email"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func toDonationDTO(d domain.Donation) donationDTO {
	return donationDTO{
		ID:         d.ID,
		DonorName:  d.DonorName,
		DonorEmail: d.DonorEmail,
		Amount:     d.Amount.StringFixed(2),
		Currency:   d.Currency,
		Message:    d.Message,
		CreatedAt:  d.CreatedAt,
	}
}

// DonationsIndex lists every donation, newest first.
func (a *App) DonationsIndex(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Donations.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	data := make([]donationDTO, 0, len(donations))
	for _, d := range donations {
		data = append(data, toDonationDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// DonationsStore creates a donation through the JSON API.
func (a *App) DonationsStore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DonorName  string `json:"donor_name"`
		DonorEmail string `json:"donor_email"`
		Amount     any    `json:"amount"`
		Currency   string `json:"currency"`
		Message    string `json:"message"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	input := domain.DonationInput{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Amount:     amountString(req.Amount),
		Currency:   req.Currency,
		Message:    req.Message,
	}
	donation, errs := domain.NewDonation(input, a.BaseCurrency)
	if errs != nil {
		a.json(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  fieldErrorLists(errs),
		})
		return
	}

	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Donation created successfully",
		"data":    toDonationDTO(*donation),
	})
}

// DonationsUpdate exists so the route fails loudly instead of silently accepting writes.
func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusNotImplemented, "not_implemented", "updating donations is not supported")
}

// DonationsDestroy exists so the route fails loudly instead of silently accepting deletes.
func (a *App) DonationsDestroy(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusNotImplemented, "not_implemented", "deleting donations is not supported")
}

// DonateSubmit handles the HTML form variant: validation failures flash the
// field errors and old input back to the form, success flashes a thank-you.
func (a *App) DonateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form payload")
		return
	}
	if !a.checkCSRF(r) {
		a.error(w, http.StatusForbidden, "forbidden", "invalid or missing form token")
		return
	}

	input := domain.DonationInput{
		DonorName:  r.PostFormValue("donor_name"),
		DonorEmail: r.PostFormValue("donor_email"),
		Amount:     r.PostFormValue("amount"),
		Currency:   r.PostFormValue("currency"),
		Message:    r.PostFormValue("message"),
	}

	donation, errs := domain.NewDonation(input, a.BaseCurrency)
	if errs != nil {
		a.stashFormState(r.Context(), errs, map[string]string{
			"donor_name":  input.DonorName,
			"donor_email": input.DonorEmail,
			"amount":      input.Amount,
			"currency":    input.Currency,
			"message":     input.Message,
		})
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
		return
	}

	if err := a.Donations.Create(r.Context(), donation); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.Sessions.Put(r.Context(), middleware.FlashErrorKey, "We could not record your donation right now. Please try again.")
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
		return
	}

	a.Sessions.Put(r.Context(), middleware.FlashSuccessKey, "Thank you for your donation!")
	http.Redirect(w, r, "/donate", http.StatusSeeOther)
}

func fieldErrorLists(errs map[string]string) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field, msg := range errs {
		out[field] = []string{msg}
	}
	return out
}

func amountString(v any) string {
	switch amount := v.(type) {
	case string:
		return amount
	case json.Number:
		return amount.String()
	case nil:
		return ""
	default:
		// booleans, arrays, objects: render as text so validation reports
		// a type error rather than a missing field
		return fmt.Sprintf("%v", amount)
	}
}
