// Package booking enforces the appointment lifecycle: creation
// constraints, ownership checks, pagination validation, and status
// transitions. Handlers translate its errors to HTTP; it never touches
// the transport.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"consulting-booking-api/internal/apperr"
	"consulting-booking-api/internal/model"
	"consulting-booking-api/internal/store"
)

// Store is the persistence surface the lifecycle rules need.
// *store.Store satisfies it.
type Store interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	ListByOwner(ctx context.Context, userID string, page, limit int) ([]model.Appointment, int, error)
	ListAll(ctx context.Context, f store.AdminFilter, page, limit int) ([]model.AdminAppointment, int, error)
	AdminAppointmentByID(ctx context.Context, id string) (*model.AdminAppointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	SetStatus(ctx context.Context, id, status string) error
}

const (
	DefaultLimit      = 10
	DefaultAdminLimit = 20
)

const dateTimeLayout = "2006-01-02 15:04"

type Service struct {
	store Store
	now   func() time.Time
}

func New(st Store) *Service {
	return &Service{store: st, now: time.Now}
}

// parseInstant combines the date and time strings into one instant.
func parseInstant(date, tm string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, date+" "+tm, time.Local)
}

func (s *Service) validateSlot(date, tm, reason string) error {
	if date == "" || tm == "" || reason == "" {
		return apperr.New(apperr.Validation, "missing_fields", "date, time and reason are required")
	}
	at, err := parseInstant(date, tm)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid_datetime", "unparseable date or time")
	}
	if !at.After(s.now()) {
		return apperr.New(apperr.Validation, "past_appointment", "appointment must be in the future")
	}
	return nil
}

// Create books a new pending appointment for ownerID.
func (s *Service) Create(ctx context.Context, ownerID, date, tm, reason string) (*model.Appointment, error) {
	if err := s.validateSlot(date, tm, reason); err != nil {
		return nil, err
	}
	a := &model.Appointment{
		ID:     uuid.New().String(),
		UserID: ownerID,
		Date:   date,
		Time:   tm,
		Reason: reason,
		Status: model.StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		return nil, apperr.Wrap(err, "could not create appointment")
	}
	return a, nil
}

// ParsePage validates user-supplied pagination. Empty strings take the
// default; anything that is not a positive integer is rejected.
func ParsePage(page, limit string, defaultLimit int) (int, int, error) {
	p, l := 1, defaultLimit
	bad := apperr.New(apperr.Validation, "invalid_pagination", "invalid pagination parameters")
	if page != "" {
		n, err := atoiPositive(page)
		if err != nil {
			return 0, 0, bad
		}
		p = n
	}
	if limit != "" {
		n, err := atoiPositive(limit)
		if err != nil {
			return 0, 0, bad
		}
		l = n
	}
	return p, l, nil
}

func atoiPositive(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errors.New("not a number")
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, errors.New("out of range")
		}
	}
	if n < 1 {
		return 0, errors.New("not positive")
	}
	return n, nil
}

func pages(total, limit int) int {
	return (total + limit - 1) / limit
}

// ListOwn returns one page of the caller's own appointments.
func (s *Service) ListOwn(ctx context.Context, ownerID string, page, limit int) ([]model.Appointment, model.Pagination, error) {
	apts, total, err := s.store.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, model.Pagination{}, apperr.Wrap(err, "could not list appointments")
	}
	return apts, model.Pagination{Total: total, Page: page, Limit: limit, Pages: pages(total, limit)}, nil
}

// ListAll is the admin listing. The role was already checked by the
// session layer; it is re-checked here so the rule cannot drift.
func (s *Service) ListAll(ctx context.Context, role string, f store.AdminFilter, page, limit int) ([]model.AdminAppointment, model.Pagination, error) {
	if role != model.RoleAdmin {
		return nil, model.Pagination{}, apperr.ErrForbidden
	}
	apts, total, err := s.store.ListAll(ctx, f, page, limit)
	if err != nil {
		return nil, model.Pagination{}, apperr.Wrap(err, "could not list appointments")
	}
	return apts, model.Pagination{Total: total, Page: page, Limit: limit, Pages: pages(total, limit)}, nil
}

// owned fetches an appointment and enforces the ownership rule.
func (s *Service) owned(ctx context.Context, id, ownerID string) (*model.Appointment, error) {
	a, err := s.store.AppointmentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(err, "could not load appointment")
	}
	if a.UserID != ownerID {
		return nil, apperr.ErrForbidden
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID string) (*model.Appointment, error) {
	return s.owned(ctx, id, ownerID)
}

// Update lets the owner move a non-cancelled appointment. The future
// rule applies to the new slot the same as at creation.
func (s *Service) Update(ctx context.Context, id, ownerID, date, tm, reason string) (*model.Appointment, error) {
	a, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if a.Status == model.StatusCancelled {
		return nil, apperr.New(apperr.Conflict, "cancelled", "appointment is cancelled")
	}
	if err := s.validateSlot(date, tm, reason); err != nil {
		return nil, err
	}
	a.Date, a.Time, a.Reason = date, tm, reason
	if err := s.store.UpdateAppointment(ctx, a); err != nil {
		return nil, apperr.Wrap(err, "could not update appointment")
	}
	return a, nil
}

// Cancel is the owner's cancellation: a soft transition to cancelled.
// The record is retained for the admin view.
func (s *Service) Cancel(ctx context.Context, id, ownerID string) (*model.Appointment, error) {
	a, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, apperr.Wrap(err, "could not cancel appointment")
	}
	a.Status = model.StatusCancelled
	return a, nil
}

// AdminGet fetches any appointment with the owner joined in.
func (s *Service) AdminGet(ctx context.Context, role, id string) (*model.AdminAppointment, error) {
	if role != model.RoleAdmin {
		return nil, apperr.ErrForbidden
	}
	a, err := s.store.AdminAppointmentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(err, "could not load appointment")
	}
	return a, nil
}

// SetStatus is the admin transition: any enumerated status may replace
// any other, including a no-op.
func (s *Service) SetStatus(ctx context.Context, role, id, status string) (*model.AdminAppointment, error) {
	if role != model.RoleAdmin {
		return nil, apperr.ErrForbidden
	}
	if !model.ValidStatus(status) {
		return nil, apperr.New(apperr.Validation, "invalid_status", "invalid status value")
	}
	a, err := s.store.AdminAppointmentByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(err, "could not load appointment")
	}
	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return nil, apperr.Wrap(err, "could not update status")
	}
	a.Status = status
	return a, nil
}
