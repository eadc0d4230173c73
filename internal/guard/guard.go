// Package guard enforces role-based routing on page paths. The policy
// is a pure function so the middleware and any page-level check consult
// the same rules.
package guard

import (
	"net/http"
	"strings"

	"consulting-booking-api/internal/auth"
	"consulting-booking-api/internal/model"
)

// Protected page prefixes. Every protected feature area is listed here;
// nothing relies on page-level checks alone.
var protectedPrefixes = []string{"/profile", "/admin", "/appointment"}

// Admin-only page prefixes.
var adminPrefixes = []string{"/admin"}

// API prefixes are passed through unconditionally; API routes enforce
// their own session and answer 401/403 as JSON, never a redirect.
var apiPrefixes = []string{"/auth/", "/appointments", "/admin/appointments", "/api/"}

type Decision int

const (
	PassThrough Decision = iota
	Granted
	RedirectLanding // missing or invalid credential -> "/"
	RedirectProfile // authenticated but not admin -> "/profile"
)

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide resolves the routing policy for one request. claims is nil
// when no valid session credential was presented.
func Decide(path string, claims *auth.Claims) Decision {
	if hasPrefix(path, apiPrefixes) || strings.HasPrefix(path, "/static/") ||
		strings.Contains(path, ".") {
		return PassThrough
	}
	if !hasPrefix(path, protectedPrefixes) {
		return PassThrough
	}
	if claims == nil {
		return RedirectLanding
	}
	if hasPrefix(path, adminPrefixes) && claims.Role != model.RoleAdmin {
		return RedirectProfile
	}
	return Granted
}

// SessionCookie is the cookie the login endpoint sets.
const SessionCookie = "session"

// TokenFromRequest extracts the raw session token from the Authorization
// header or the session cookie, in that order.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Middleware applies Decide to every page request. Verification errors
// behave exactly like a missing credential; the browser never sees a 5xx.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *auth.Claims
			if raw := TokenFromRequest(r); raw != "" {
				if c, err := auth.ParseToken(raw, secret); err == nil {
					claims = c
				}
			}

			switch Decide(r.URL.Path, claims) {
			case RedirectLanding:
				http.Redirect(w, r, absolute(r, "/"), http.StatusFound)
			case RedirectProfile:
				http.Redirect(w, r, absolute(r, "/profile"), http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// absolute resolves a redirect target against the request's origin.
func absolute(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
