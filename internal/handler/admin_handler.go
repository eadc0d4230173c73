package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consulting-booking-api/internal/booking"
	"consulting-booking-api/internal/middleware"
	"consulting-booking-api/internal/store"
)

const adminCachePrefix = "admin:"

func (h *Handler) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "private, s-maxage=10, stale-while-revalidate=59")

	key := adminCachePrefix + r.Method + ":" + r.URL.RequestURI()
	if body, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	page, limit, err := booking.ParsePage(
		r.URL.Query().Get("page"), r.URL.Query().Get("limit"), booking.DefaultAdminLimit)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	filter := store.AdminFilter{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}

	claims := middleware.ClaimsFrom(r.Context())
	apts, pg, err := h.svc.ListAll(r.Context(), claims.Role, filter, page, limit)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	body, err := json.Marshal(map[string]any{
		"appointments": apts,
		"pagination":   pg,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.cache.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (h *Handler) AdminGetAppointment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.AdminGet(r.Context(), claims.Role, chi.URLParam(r, "id"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apt)
}

func (h *Handler) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		h.writeErr(w, err)
		return
	}

	claims := middleware.ClaimsFrom(r.Context())
	apt, err := h.svc.SetStatus(r.Context(), claims.Role, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	// every cached admin page is stale now
	h.cache.InvalidatePrefix(r.Context(), adminCachePrefix)
	h.writeJSON(w, http.StatusOK, apt)
}
