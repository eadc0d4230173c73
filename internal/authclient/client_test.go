package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-booking-api/internal/apperr"
)

func TestValidateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/validate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@x.com", body["email"])

		json.NewEncoder(w).Encode(Identity{
			ID: "u1", Name: "User A", Email: "a@x.com", Role: "admin",
		})
	}))
	defer srv.Close()

	id, err := New(srv.URL).Validate(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "admin", id.Role)
}

func TestValidateInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Validate(context.Background(), "a@x.com", "wrong")
	assert.Equal(t, "invalid_credentials", apperr.From(err).Code)
}

func TestValidateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Validate(ctx, "a@x.com", "pw")
	ae := apperr.From(err)
	assert.Equal(t, apperr.Timeout, ae.Kind)
	assert.Equal(t, "timeout", ae.Code)
}

func TestValidateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Validate(context.Background(), "a@x.com", "pw")
	assert.Equal(t, apperr.Internal, apperr.From(err).Kind)
}
