// Package authclient is the consumer side of the POST /auth/validate
// trust boundary: a server-to-server credential check that returns a
// plain identity payload instead of a signed token.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"consulting-booking-api/internal/apperr"
)

// DefaultTimeout bounds every validate call. An overrun aborts the
// in-flight request; nothing is retried.
const DefaultTimeout = 8 * time.Second

// Identity is the payload a successful validation returns.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Client struct {
	base string
	http *http.Client
}

// New builds a client for the auth service at base, e.g.
// "http://localhost:8080".
func New(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

// Validate checks the credentials against the remote service. A wrong
// password and an unknown email are indistinguishable by design.
func (c *Client) Validate(ctx context.Context, email, password string) (*Identity, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, apperr.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/validate", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperr.New(apperr.Timeout, "timeout", "auth service did not respond in time")
		}
		return nil, apperr.Wrap(err, "auth service unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var id Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return nil, apperr.Wrap(err, "decode response")
		}
		return &id, nil
	case http.StatusUnauthorized:
		return nil, apperr.ErrInvalidCredentials
	case http.StatusBadRequest:
		return nil, apperr.New(apperr.Validation, "missing_fields", "email and password are required")
	default:
		return nil, apperr.New(apperr.Internal, "internal", "auth service error")
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
