package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitDeniesAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if do() != http.StatusOK || do() != http.StatusOK {
		t.Fatal("burst requests should pass")
	}
	if do() != http.StatusTooManyRequests {
		t.Fatal("expected 429 after burst exhausted")
	}

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("independent client was throttled: %d", rec.Code)
	}
}
