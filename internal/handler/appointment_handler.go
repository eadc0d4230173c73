package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"consulting-booking-api/internal/booking"
	"consulting-booking-api/internal/middleware"
)

type appointmentRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := decode(r, &req); err != nil {
		h.writeErr(w, err)
		return
	}

	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.Create(r.Context(), claims.UserID, req.Date, req.Time, req.Reason)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, apt)
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	page, limit, err := booking.ParsePage(
		r.URL.Query().Get("page"), r.URL.Query().Get("limit"), booking.DefaultLimit)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	claims := middleware.ClaimsFrom(r.Context())
	apts, pg, err := h.svc.ListOwn(r.Context(), claims.UserID, page, limit)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=30, stale-while-revalidate=59")
	h.writeJSON(w, http.StatusOK, map[string]any{
		"appointments": apts,
		"pagination":   pg,
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apt)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := decode(r, &req); err != nil {
		h.writeErr(w, err)
		return
	}

	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Date, req.Time, req.Reason)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apt)
}

// CancelAppointment is the owner's DELETE: a soft transition to
// cancelled, so the record stays visible to the admin view.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apt)
}
