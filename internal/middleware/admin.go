package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Session keys shared between the auth handlers and the admin guard.
const (
	SessionUserIDKey   = "admin_user_id"
	SessionUserNameKey = "admin_user_name"
	SessionIsAdminKey  = "admin_is_admin"

	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
	FormErrorsKey   = "form_errors"
	FormOldKey      = "form_old"
)

// RequireAdmin gates the admin area. Anonymous visitors are sent to the login
// form, authenticated non-admins are sent away from the admin area; both get
// an explanatory flash message on the next page they land on.
func RequireAdmin(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sessions.GetString(ctx, SessionUserIDKey) == "" {
				sessions.Put(ctx, FlashErrorKey, "Please login to access the admin panel.")
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			if !sessions.GetBool(ctx, SessionIsAdminKey) {
				sessions.Put(ctx, FlashErrorKey, "You do not have permission to access this area.")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
