package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"consulting-booking-api/internal/auth"
	"consulting-booking-api/internal/guard"
	"consulting-booking-api/internal/model"
)

type ctxKey string

const ClaimsKey ctxKey = "claims"

// ClaimsFrom returns the session claims the middleware stored.
// Only call it under RequireSession.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	return ctx.Value(ClaimsKey).(*auth.Claims)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "unauthorized"})
}

// RequireSession guards API routes. Unlike the page guard it never
// redirects; API clients get 401 JSON.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := guard.TokenFromRequest(r)
			if raw == "" {
				unauthorized(w)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sits under RequireSession on the admin API routes.
// The booking service re-checks the role again on top of this.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFrom(r.Context()).Role != model.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin access required", "code": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
