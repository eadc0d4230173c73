package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"consulting-booking-api/internal/apperr"
	"consulting-booking-api/internal/auth"
	"consulting-booking-api/internal/guard"
	"consulting-booking-api/internal/model"
	"consulting-booking-api/internal/store"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(r, &req); err != nil {
		h.writeErr(w, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.writeErr(w, apperr.New(apperr.Validation, "missing_fields", "name, email and password are required"))
		return
	}
	if len(req.Password) < 8 {
		h.writeErr(w, apperr.New(apperr.Validation, "password_too_short", "password must be at least 8 characters"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeErr(w, apperr.Wrap(err, "could not hash password"))
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.RoleUser,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique-index race: the loser sees the duplicate
		if store.IsUniqueViolation(err) {
			h.writeErr(w, apperr.ErrDuplicateEmail)
			return
		}
		h.writeErr(w, apperr.Wrap(err, "could not create user"))
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{"user": u})
}

// checkCredentials is the shared lookup+compare for login and validate.
// Unknown email and wrong password are indistinguishable on purpose.
func (h *Handler) checkCredentials(r *http.Request) (*model.User, error) {
	var req credentials
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	if req.Email == "" || req.Password == "" {
		return nil, apperr.New(apperr.Validation, "missing_fields", "email and password are required")
	}

	u, err := h.store.UserByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	u, err := h.checkCredentials(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Email, u.Name, u.Role, h.secret, h.sessionTTL)
	if err != nil {
		h.writeErr(w, apperr.Wrap(err, "could not sign token"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     guard.SessionCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.writeJSON(w, http.StatusOK, map[string]any{"token": tok, "user": u})
}

// Validate serves the server-to-server trust boundary: same checks as
// login, but the caller mints its own credential from the payload.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	u, err := h.checkCredentials(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	})
}
