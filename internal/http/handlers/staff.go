package handlers

import (
	"errors"
	"net/http"

	"charity/internal/domain"
	"charity/internal/middleware"
)

// ActiveStaff re-checks the account behind a verified token. Deleted or
// deactivated users are rejected, and the role in the context is replaced by
// the stored one so a demotion takes effect before the token expires. It must
// run after middleware.AuthJWT.
func (a *App) ActiveStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			a.Deny(w, r, http.StatusUnauthorized)
			return
		}
		u, err := a.Users.GetByID(r.Context(), claims.Subject)
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
			a.logger(r).Warn().Str("user_id", claims.Subject).Msg("token for unknown user")
			a.Deny(w, r, http.StatusUnauthorized)
			return
		case err != nil:
			a.fail(w, r, err, "load staff user failed")
			return
		case !u.IsActive:
			a.logger(r).Warn().Str("user_id", u.ID).Msg("token for inactive user")
			a.Deny(w, r, http.StatusUnauthorized)
			return
		}
		if string(u.Role) != claims.Role {
			fresh := *claims
			fresh.Role = string(u.Role)
			r = r.WithContext(middleware.ContextWithClaims(r.Context(), &fresh))
		}
		next.ServeHTTP(w, r)
	})
}
