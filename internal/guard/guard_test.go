package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-booking-api/internal/auth"
	"consulting-booking-api/internal/model"
)

const secret = "guard-test-secret"

func claims(role string) *auth.Claims {
	tok, _ := auth.MakeToken("uid", "a@x.com", "A", role, secret, time.Hour)
	c, _ := auth.ParseToken(tok, secret)
	return c
}

func TestDecide(t *testing.T) {
	user := claims(model.RoleUser)
	admin := claims(model.RoleAdmin)

	tests := []struct {
		name   string
		path   string
		claims *auth.Claims
		want   Decision
	}{
		{"landing open", "/", nil, PassThrough},
		{"api passthrough", "/auth/login", nil, PassThrough},
		{"appointments api passthrough", "/appointments", nil, PassThrough},
		{"admin api passthrough", "/admin/appointments", nil, PassThrough},
		{"static passthrough", "/static/logo.png", nil, PassThrough},
		{"file passthrough", "/favicon.ico", nil, PassThrough},
		{"profile no token", "/profile", nil, RedirectLanding},
		{"appointment no token", "/appointment", nil, RedirectLanding},
		{"admin no token", "/admin", nil, RedirectLanding},
		{"profile user", "/profile", user, Granted},
		{"appointment user", "/appointment", user, Granted},
		{"admin as user", "/admin", user, RedirectProfile},
		{"admin subpage as user", "/admin/calendar", user, RedirectProfile},
		{"admin as admin", "/admin", admin, Granted},
		{"profile as admin", "/profile", admin, Granted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.path, tt.claims))
		})
	}
}

func serve(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "http://site.test"+path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	Middleware(secret)(next).ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareRedirects(t *testing.T) {
	userTok, err := auth.MakeToken("uid", "a@x.com", "A", model.RoleUser, secret, time.Hour)
	require.NoError(t, err)
	adminTok, err := auth.MakeToken("uid", "b@x.com", "B", model.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	// unauthenticated protected page -> absolute redirect to landing
	rec := serve(t, "/admin", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://site.test/", rec.Header().Get("Location"))

	// authenticated non-admin -> profile, not an error page
	rec = serve(t, "/admin", userTok)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://site.test/profile", rec.Header().Get("Location"))

	// admin is let through
	rec = serve(t, "/admin", adminTok)
	assert.Equal(t, http.StatusOK, rec.Code)

	// a garbage token behaves exactly like no token, never a 5xx
	rec = serve(t, "/profile", "not.a.token")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://site.test/", rec.Header().Get("Location"))

	// an expired token behaves like no token
	expired, err := auth.MakeToken("uid", "a@x.com", "A", model.RoleUser, secret, -time.Minute)
	require.NoError(t, err)
	rec = serve(t, "/profile", expired)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestMiddlewareBearerHeader(t *testing.T) {
	tok, err := auth.MakeToken("uid", "a@x.com", "A", model.RoleUser, secret, time.Hour)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "http://site.test/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	Middleware(secret)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
