package store

import (
	"context"

	"consulting-booking-api/internal/model"
)

// AdminFilter holds the optional equality filters for the admin listing.
// Empty fields match everything.
type AdminFilter struct {
	Status string
	Date   string
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, user_id, date, time, reason, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Date, a.Time, a.Reason, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, date, time, reason, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByOwner returns one page of the owner's appointments ordered by
// date then time ascending, plus the owner's total count.
func (s *Store) ListByOwner(ctx context.Context, userID string, page, limit int) ([]model.Appointment, int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, date, time, reason, status, created_at, updated_at
		 FROM appointments
		 WHERE user_id = $1
		 ORDER BY date, time
		 LIMIT $2 OFFSET $3`, userID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.Time, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE user_id = $1`, userID,
	).Scan(&total)
	return out, total, err
}

// ListAll returns one page over every owner's appointments with the
// owner's display fields joined in, plus the filtered total.
func (s *Store) ListAll(ctx context.Context, f AdminFilter, page, limit int) ([]model.AdminAppointment, int, error) {
	where := `WHERE ($1 = '' OR a.status = $1) AND ($2 = '' OR a.date = $2)`

	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.date, a.time, a.reason, a.status,
		        a.created_at, a.updated_at, u.name, u.email
		 FROM appointments a
		 JOIN users u ON u.id = a.user_id `+where+`
		 ORDER BY a.date, a.time
		 LIMIT $3 OFFSET $4`, f.Status, f.Date, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.AdminAppointment
	for rows.Next() {
		var a model.AdminAppointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.Time, &a.Reason, &a.Status,
			&a.CreatedAt, &a.UpdatedAt, &a.UserName, &a.UserEmail,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments a `+where, f.Status, f.Date,
	).Scan(&total)
	return out, total, err
}

// AdminAppointmentByID is AppointmentByID with the owner joined in.
func (s *Store) AdminAppointmentByID(ctx context.Context, id string) (*model.AdminAppointment, error) {
	a := &model.AdminAppointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT a.id, a.user_id, a.date, a.time, a.reason, a.status,
		        a.created_at, a.updated_at, u.name, u.email
		 FROM appointments a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.Reason, &a.Status,
		&a.CreatedAt, &a.UpdatedAt, &a.UserName, &a.UserEmail)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	return s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET date=$1, time=$2, reason=$3, updated_at=NOW()
		 WHERE id=$4
		 RETURNING updated_at`,
		a.Date, a.Time, a.Reason, a.ID,
	).Scan(&a.UpdatedAt)
}

// SetStatus applies a status unconditionally; last writer wins.
func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id,
	)
	return err
}
