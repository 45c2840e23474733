// Queries from queries/reservations.sql, in sqlc's output layout.

package generated

import (
	"context"
	"database/sql"
)

const cancelReservation = `-- name: CancelReservation :one
UPDATE reservations
SET status = 'cancelled', cancelled_at = ?
WHERE id = ? AND status = 'confirmed'
RETURNING id, court_id, reservation_date, starts_at, ends_at, client_name, client_phone,
    client_email, user_id, notes, created_by_admin, status, created_at, cancelled_at
`

type CancelReservationParams struct {
	CancelledAt sql.NullTime `json:"cancelledAt"`
	ID          int64        `json:"id"`
}

func (q *Queries) CancelReservation(ctx context.Context, arg CancelReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, cancelReservation, arg.CancelledAt, arg.ID)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.ReservationDate,
		&i.StartsAt,
		&i.EndsAt,
		&i.ClientName,
		&i.ClientPhone,
		&i.ClientEmail,
		&i.UserID,
		&i.Notes,
		&i.CreatedByAdmin,
		&i.Status,
		&i.CreatedAt,
		&i.CancelledAt,
	)
	return i, err
}

const confirmedReservationExists = `-- name: ConfirmedReservationExists :one
SELECT COUNT(*)
FROM reservations
WHERE reservation_date = ? AND court_id = ? AND starts_at = ? AND ends_at = ?
  AND status = 'confirmed'
`

type ConfirmedReservationExistsParams struct {
	ReservationDate string `json:"reservationDate"`
	CourtID         int64  `json:"courtId"`
	StartsAt        string `json:"startsAt"`
	EndsAt          string `json:"endsAt"`
}

func (q *Queries) ConfirmedReservationExists(ctx context.Context, arg ConfirmedReservationExistsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, confirmedReservationExists,
		arg.ReservationDate,
		arg.CourtID,
		arg.StartsAt,
		arg.EndsAt,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    court_id, reservation_date, starts_at, ends_at,
    client_name, client_phone, client_email, user_id, notes, created_by_admin
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, court_id, reservation_date, starts_at, ends_at, client_name, client_phone,
    client_email, user_id, notes, created_by_admin, status, created_at, cancelled_at
`

type CreateReservationParams struct {
	CourtID         int64         `json:"courtId"`
	ReservationDate string        `json:"reservationDate"`
	StartsAt        string        `json:"startsAt"`
	EndsAt          string        `json:"endsAt"`
	ClientName      string        `json:"clientName"`
	ClientPhone     string        `json:"clientPhone"`
	ClientEmail     string        `json:"clientEmail"`
	UserID          sql.NullInt64 `json:"userId"`
	Notes           string        `json:"notes"`
	CreatedByAdmin  bool          `json:"createdByAdmin"`
}

func (q *Queries) CreateReservation(ctx context.Context, arg CreateReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, createReservation,
		arg.CourtID,
		arg.ReservationDate,
		arg.StartsAt,
		arg.EndsAt,
		arg.ClientName,
		arg.ClientPhone,
		arg.ClientEmail,
		arg.UserID,
		arg.Notes,
		arg.CreatedByAdmin,
	)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.ReservationDate,
		&i.StartsAt,
		&i.EndsAt,
		&i.ClientName,
		&i.ClientPhone,
		&i.ClientEmail,
		&i.UserID,
		&i.Notes,
		&i.CreatedByAdmin,
		&i.Status,
		&i.CreatedAt,
		&i.CancelledAt,
	)
	return i, err
}

const getReservation = `-- name: GetReservation :one
SELECT id, court_id, reservation_date, starts_at, ends_at, client_name, client_phone,
    client_email, user_id, notes, created_by_admin, status, created_at, cancelled_at
FROM reservations
WHERE id = ?
`

func (q *Queries) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, getReservation, id)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.ReservationDate,
		&i.StartsAt,
		&i.EndsAt,
		&i.ClientName,
		&i.ClientPhone,
		&i.ClientEmail,
		&i.UserID,
		&i.Notes,
		&i.CreatedByAdmin,
		&i.Status,
		&i.CreatedAt,
		&i.CancelledAt,
	)
	return i, err
}

const listConfirmedReservationsForDate = `-- name: ListConfirmedReservationsForDate :many
SELECT id, court_id, reservation_date, starts_at, ends_at, client_name, client_phone,
    client_email, user_id, notes, created_by_admin, status, created_at, cancelled_at
FROM reservations
WHERE reservation_date = ? AND status = 'confirmed'
ORDER BY court_id, starts_at
`

func (q *Queries) ListConfirmedReservationsForDate(ctx context.Context, reservationDate string) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, listConfirmedReservationsForDate, reservationDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		var i Reservation
		if err := rows.Scan(
			&i.ID,
			&i.CourtID,
			&i.ReservationDate,
			&i.StartsAt,
			&i.EndsAt,
			&i.ClientName,
			&i.ClientPhone,
			&i.ClientEmail,
			&i.UserID,
			&i.Notes,
			&i.CreatedByAdmin,
			&i.Status,
			&i.CreatedAt,
			&i.CancelledAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservations = `-- name: ListReservations :many
SELECT r.id, r.court_id, c.name AS court_name, r.reservation_date, r.starts_at, r.ends_at,
    r.client_name, r.client_phone, r.client_email, r.user_id, r.notes,
    r.created_by_admin, r.status
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE (?1 IS NULL OR r.reservation_date = ?1)
  AND (?2 IS NULL OR r.court_id = ?2)
  AND (?3 IS NULL OR r.status = ?3)
ORDER BY r.reservation_date, r.starts_at, r.court_id
`

type ListReservationsParams struct {
	ReservationDate sql.NullString `json:"reservationDate"`
	CourtID         sql.NullInt64  `json:"courtId"`
	Status          sql.NullString `json:"status"`
}

type ListReservationsRow struct {
	ID              int64         `json:"id"`
	CourtID         int64         `json:"courtId"`
	CourtName       string        `json:"courtName"`
	ReservationDate string        `json:"reservationDate"`
	StartsAt        string        `json:"startsAt"`
	EndsAt          string        `json:"endsAt"`
	ClientName      string        `json:"clientName"`
	ClientPhone     string        `json:"clientPhone"`
	ClientEmail     string        `json:"clientEmail"`
	UserID          sql.NullInt64 `json:"userId"`
	Notes           string        `json:"notes"`
	CreatedByAdmin  bool          `json:"createdByAdmin"`
	Status          string        `json:"status"`
}

func (q *Queries) ListReservations(ctx context.Context, arg ListReservationsParams) ([]ListReservationsRow, error) {
	rows, err := q.db.QueryContext(ctx, listReservations, arg.ReservationDate, arg.CourtID, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReservationsRow
	for rows.Next() {
		var i ListReservationsRow
		if err := rows.Scan(
			&i.ID,
			&i.CourtID,
			&i.CourtName,
			&i.ReservationDate,
			&i.StartsAt,
			&i.EndsAt,
			&i.ClientName,
			&i.ClientPhone,
			&i.ClientEmail,
			&i.UserID,
			&i.Notes,
			&i.CreatedByAdmin,
			&i.Status,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationsByUser = `-- name: ListReservationsByUser :many
SELECT r.id, r.court_id, c.name AS court_name, r.reservation_date, r.starts_at, r.ends_at,
    r.client_name, r.status, r.created_by_admin
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.user_id = ?
ORDER BY r.reservation_date DESC, r.starts_at DESC
`

type ListReservationsByUserRow struct {
	ID              int64  `json:"id"`
	CourtID         int64  `json:"courtId"`
	CourtName       string `json:"courtName"`
	ReservationDate string `json:"reservationDate"`
	StartsAt        string `json:"startsAt"`
	EndsAt          string `json:"endsAt"`
	ClientName      string `json:"clientName"`
	Status          string `json:"status"`
	CreatedByAdmin  bool   `json:"createdByAdmin"`
}

func (q *Queries) ListReservationsByUser(ctx context.Context, userID sql.NullInt64) ([]ListReservationsByUserRow, error) {
	rows, err := q.db.QueryContext(ctx, listReservationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReservationsByUserRow
	for rows.Next() {
		var i ListReservationsByUserRow
		if err := rows.Scan(
			&i.ID,
			&i.CourtID,
			&i.CourtName,
			&i.ReservationDate,
			&i.StartsAt,
			&i.EndsAt,
			&i.ClientName,
			&i.Status,
			&i.CreatedByAdmin,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markReservationCreatedByAdmin = `-- name: MarkReservationCreatedByAdmin :execrows
UPDATE reservations
SET created_by_admin = 1
WHERE id = ?
`

func (q *Queries) MarkReservationCreatedByAdmin(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, markReservationCreatedByAdmin, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateReservationDetails = `-- name: UpdateReservationDetails :one
UPDATE reservations
SET client_name = ?, client_phone = ?, client_email = ?, notes = ?
WHERE id = ?
RETURNING id, court_id, reservation_date, starts_at, ends_at, client_name, client_phone,
    client_email, user_id, notes, created_by_admin, status, created_at, cancelled_at
`

type UpdateReservationDetailsParams struct {
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	ClientEmail string `json:"clientEmail"`
	Notes       string `json:"notes"`
	ID          int64  `json:"id"`
}

func (q *Queries) UpdateReservationDetails(ctx context.Context, arg UpdateReservationDetailsParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, updateReservationDetails,
		arg.ClientName,
		arg.ClientPhone,
		arg.ClientEmail,
		arg.Notes,
		arg.ID,
	)
	var i Reservation
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.ReservationDate,
		&i.StartsAt,
		&i.EndsAt,
		&i.ClientName,
		&i.ClientPhone,
		&i.ClientEmail,
		&i.UserID,
		&i.Notes,
		&i.CreatedByAdmin,
		&i.Status,
		&i.CreatedAt,
		&i.CancelledAt,
	)
	return i, err
}
