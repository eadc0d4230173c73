package handler

import (
	"encoding/json"
	"net/http"

	"consulting-booking-api/internal/apperr"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("write response")
	}
}

// writeErr translates the taxonomy to HTTP once, here. Internal causes
// are logged in full and never leak to the client.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.Internal {
		h.log.WithError(ae).Error("internal error")
	}
	h.writeJSON(w, ae.HTTPStatus(), map[string]string{
		"error": ae.Msg,
		"code":  ae.Code,
	})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.New(apperr.Validation, "invalid_body", "invalid request body")
	}
	return nil
}
