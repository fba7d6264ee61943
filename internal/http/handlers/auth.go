package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"givebox/internal/domain"
	"givebox/internal/middleware"
)

// genericLoginError is deliberately identical for every failure mode (unknown
// email, non-admin account, wrong password) so nothing leaks about which
// check failed.
const genericLoginError = "The provided credentials do not match our records or you are not an admin."

// dummyPasswordHash keeps the bcrypt cost on the unknown-email path, so
// response timing does not reveal whether an account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AdminLogin authenticates an admin and establishes a session. The session
// token is regenerated on success to defeat fixation.
func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form payload")
		return
	}
	if !a.checkCSRF(r) {
		a.error(w, http.StatusForbidden, "forbidden", "invalid or missing form token")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	fieldErrs := map[string]string{}
	if email == "" {
		fieldErrs["email"] = "The email field is required."
	}
	if password == "" {
		fieldErrs["password"] = "The password field is required."
	}
	if len(fieldErrs) > 0 {
		a.stashFormState(r.Context(), fieldErrs, map[string]string{"email": email})
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign in")
		return
	}

	hash := dummyPasswordHash
	if user != nil {
		hash = user.PasswordHash
	}
	passwordOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil

	if user == nil || !user.IsAdmin || !passwordOK {
		a.stashFormState(r.Context(), map[string]string{"email": genericLoginError}, map[string]string{"email": email})
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if err := a.Sessions.RenewToken(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("renew session token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign in")
		return
	}
	a.Sessions.Put(r.Context(), middleware.SessionUserIDKey, user.ID)
	a.Sessions.Put(r.Context(), middleware.SessionUserNameKey, user.Name)
	a.Sessions.Put(r.Context(), middleware.SessionIsAdminKey, user.IsAdmin)
	a.rotateCSRFToken(r.Context())
	a.Sessions.Put(r.Context(), middleware.FlashSuccessKey, "Welcome back, "+user.Name+"!")

	a.Logger.Info().Str("user_id", user.ID).Msg("admin signed in")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AdminLogout destroys the session; destroying also rotates the session token
// and the anti-forgery token carried inside it.
func (a *App) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form payload")
		return
	}
	if !a.checkCSRF(r) {
		a.error(w, http.StatusForbidden, "forbidden", "invalid or missing form token")
		return
	}

	if err := a.Sessions.Destroy(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("destroy session failed")
	}
	a.Sessions.Put(r.Context(), middleware.FlashSuccessKey, "You have been logged out successfully.")
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
