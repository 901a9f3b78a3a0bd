package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/snackshop/storefront/internal/cart"
)

// SessionCookieName carries the opaque cart session id.
const SessionCookieName = "storefront_session"

type sessionKey struct{}

// SessionMiddleware assigns every visitor a session id cookie and marks
// the session active on each request, which resets the idle-timeout
// clear of the cart.
func SessionMiddleware(store cart.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				sessionID = c.Value
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			store.Touch(sessionID)

			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}
