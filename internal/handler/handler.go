package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"consulting-booking-api/internal/booking"
	"consulting-booking-api/internal/cache"
	"consulting-booking-api/internal/guard"
	"consulting-booking-api/internal/middleware"
	"consulting-booking-api/internal/store"
)

type Handler struct {
	store      *store.Store
	svc        *booking.Service
	cache      cache.Cache
	log        *logrus.Logger
	secret     string
	sessionTTL time.Duration
}

func New(st *store.Store, c cache.Cache, log *logrus.Logger, secret string, sessionTTL time.Duration) *Handler {
	return &Handler{
		store:      st,
		svc:        booking.New(st),
		cache:      c,
		log:        log,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

// Router assembles the full HTTP surface: credential endpoints,
// self-service booking CRUD, the admin view, and the guarded pages.
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLog(h.log))
	r.Use(middleware.CORS(allowedOrigins))

	rl := middleware.NewRateLimiter(5, 10)
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(rl))
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/validate", h.Validate)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.secret))
		r.Get("/", h.ListAppointments)
		r.Post("/", h.CreateAppointment)
		r.Get("/{id}", h.GetAppointment)
		r.Put("/{id}", h.UpdateAppointment)
		r.Delete("/{id}", h.CancelAppointment)
	})

	r.Route("/admin/appointments", func(r chi.Router) {
		r.Use(middleware.RequireSession(h.secret))
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.AdminListAppointments)
		r.Get("/{id}", h.AdminGetAppointment)
		r.Put("/{id}", h.AdminSetStatus)
	})

	// page routes behind the session guard
	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware(h.secret))
		r.Get("/", h.page("landing"))
		r.Get("/profile", h.page("profile"))
		r.Get("/appointment", h.page("appointment"))
		r.Get("/admin", h.page("admin"))
	})

	return r
}

// page is a stub for the server-rendered pages; the frontend owns the
// markup. The guard semantics are what matter here.
func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<!doctype html><title>" + name + "</title>"))
	}
}
