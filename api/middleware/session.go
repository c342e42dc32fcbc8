// ABOUTME: Browser session cookie and feature flag context middleware
// ABOUTME: Sessions key view state and in-flight request tracking per browser tab group

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mediacheck/pkg/featureflags"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "mc_session"

type sessionContextKey struct{}

// SessionMiddleware reads the session cookie, issuing a new one when it is missing or malformed.
func SessionMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), id)))
		})
	}
}

// WithSession stores a session id in the context.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

// SessionFromContext returns the session id, or "" outside SessionMiddleware.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey{}).(string)
	return id
}

// FeatureFlagMiddleware makes manager available to handlers and services through the context.
func FeatureFlagMiddleware(manager featureflags.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(featureflags.WithManager(r.Context(), manager)))
		})
	}
}
