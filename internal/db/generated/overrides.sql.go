// Queries from queries/overrides.sql, in sqlc's output layout.

package generated

import (
	"context"
)

const addDayOverrideSlot = `-- name: AddDayOverrideSlot :exec
INSERT INTO day_override_slots (day_override_id, time_slot_id)
VALUES (?, ?)
`

type AddDayOverrideSlotParams struct {
	DayOverrideID int64 `json:"dayOverrideId"`
	TimeSlotID    int64 `json:"timeSlotId"`
}

func (q *Queries) AddDayOverrideSlot(ctx context.Context, arg AddDayOverrideSlotParams) error {
	_, err := q.db.ExecContext(ctx, addDayOverrideSlot, arg.DayOverrideID, arg.TimeSlotID)
	return err
}

const addWeekdayOverrideSlot = `-- name: AddWeekdayOverrideSlot :exec
INSERT INTO weekday_override_slots (weekday_override_id, time_slot_id)
VALUES (?, ?)
`

type AddWeekdayOverrideSlotParams struct {
	WeekdayOverrideID int64 `json:"weekdayOverrideId"`
	TimeSlotID        int64 `json:"timeSlotId"`
}

func (q *Queries) AddWeekdayOverrideSlot(ctx context.Context, arg AddWeekdayOverrideSlotParams) error {
	_, err := q.db.ExecContext(ctx, addWeekdayOverrideSlot, arg.WeekdayOverrideID, arg.TimeSlotID)
	return err
}

const clearDayOverrideSlots = `-- name: ClearDayOverrideSlots :exec
DELETE FROM day_override_slots
WHERE day_override_id = ?
`

func (q *Queries) ClearDayOverrideSlots(ctx context.Context, dayOverrideID int64) error {
	_, err := q.db.ExecContext(ctx, clearDayOverrideSlots, dayOverrideID)
	return err
}

const clearWeekdayOverrideSlots = `-- name: ClearWeekdayOverrideSlots :exec
DELETE FROM weekday_override_slots
WHERE weekday_override_id = ?
`

func (q *Queries) ClearWeekdayOverrideSlots(ctx context.Context, weekdayOverrideID int64) error {
	_, err := q.db.ExecContext(ctx, clearWeekdayOverrideSlots, weekdayOverrideID)
	return err
}

const deleteDayOverride = `-- name: DeleteDayOverride :execrows
DELETE FROM day_overrides
WHERE court_id = ? AND override_date = ?
`

type DeleteDayOverrideParams struct {
	CourtID      int64  `json:"courtId"`
	OverrideDate string `json:"overrideDate"`
}

func (q *Queries) DeleteDayOverride(ctx context.Context, arg DeleteDayOverrideParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteDayOverride, arg.CourtID, arg.OverrideDate)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteWeekdayOverride = `-- name: DeleteWeekdayOverride :execrows
DELETE FROM weekday_overrides
WHERE court_id = ? AND day_of_week = ?
`

type DeleteWeekdayOverrideParams struct {
	CourtID   int64 `json:"courtId"`
	DayOfWeek int64 `json:"dayOfWeek"`
}

func (q *Queries) DeleteWeekdayOverride(ctx context.Context, arg DeleteWeekdayOverrideParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteWeekdayOverride, arg.CourtID, arg.DayOfWeek)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getActiveWeekdayOverride = `-- name: GetActiveWeekdayOverride :one
SELECT id, court_id, day_of_week, is_active
FROM weekday_overrides
WHERE court_id = ? AND day_of_week = ? AND is_active = 1
`

type GetActiveWeekdayOverrideParams struct {
	CourtID   int64 `json:"courtId"`
	DayOfWeek int64 `json:"dayOfWeek"`
}

func (q *Queries) GetActiveWeekdayOverride(ctx context.Context, arg GetActiveWeekdayOverrideParams) (WeekdayOverride, error) {
	row := q.db.QueryRowContext(ctx, getActiveWeekdayOverride, arg.CourtID, arg.DayOfWeek)
	var i WeekdayOverride
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.DayOfWeek,
		&i.IsActive,
	)
	return i, err
}

const getDayOverride = `-- name: GetDayOverride :one
SELECT id, court_id, override_date, is_closed, note
FROM day_overrides
WHERE court_id = ? AND override_date = ?
`

type GetDayOverrideParams struct {
	CourtID      int64  `json:"courtId"`
	OverrideDate string `json:"overrideDate"`
}

func (q *Queries) GetDayOverride(ctx context.Context, arg GetDayOverrideParams) (DayOverride, error) {
	row := q.db.QueryRowContext(ctx, getDayOverride, arg.CourtID, arg.OverrideDate)
	var i DayOverride
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.OverrideDate,
		&i.IsClosed,
		&i.Note,
	)
	return i, err
}

const listDayOverrideSlots = `-- name: ListDayOverrideSlots :many
SELECT ts.id, ts.starts_at, ts.ends_at, ts.is_active, ts.sort_order, ts.created_at
FROM day_override_slots dos
JOIN time_slots ts ON ts.id = dos.time_slot_id
WHERE dos.day_override_id = ? AND ts.is_active = 1
ORDER BY ts.sort_order, ts.starts_at
`

func (q *Queries) ListDayOverrideSlots(ctx context.Context, dayOverrideID int64) ([]TimeSlot, error) {
	rows, err := q.db.QueryContext(ctx, listDayOverrideSlots, dayOverrideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TimeSlot
	for rows.Next() {
		var i TimeSlot
		if err := rows.Scan(
			&i.ID,
			&i.StartsAt,
			&i.EndsAt,
			&i.IsActive,
			&i.SortOrder,
			&i.CreatedAt,
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

const listWeekdayOverrideSlots = `-- name: ListWeekdayOverrideSlots :many
SELECT ts.id, ts.starts_at, ts.ends_at, ts.is_active, ts.sort_order, ts.created_at
FROM weekday_override_slots wos
JOIN time_slots ts ON ts.id = wos.time_slot_id
WHERE wos.weekday_override_id = ? AND ts.is_active = 1
ORDER BY ts.sort_order, ts.starts_at
`

func (q *Queries) ListWeekdayOverrideSlots(ctx context.Context, weekdayOverrideID int64) ([]TimeSlot, error) {
	rows, err := q.db.QueryContext(ctx, listWeekdayOverrideSlots, weekdayOverrideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TimeSlot
	for rows.Next() {
		var i TimeSlot
		if err := rows.Scan(
			&i.ID,
			&i.StartsAt,
			&i.EndsAt,
			&i.IsActive,
			&i.SortOrder,
			&i.CreatedAt,
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

const upsertDayOverride = `-- name: UpsertDayOverride :one
INSERT INTO day_overrides (court_id, override_date, is_closed, note)
VALUES (?, ?, ?, ?)
ON CONFLICT (court_id, override_date) DO UPDATE
SET is_closed = excluded.is_closed,
    note = excluded.note
RETURNING id, court_id, override_date, is_closed, note
`

type UpsertDayOverrideParams struct {
	CourtID      int64  `json:"courtId"`
	OverrideDate string `json:"overrideDate"`
	IsClosed     bool   `json:"isClosed"`
	Note         string `json:"note"`
}

func (q *Queries) UpsertDayOverride(ctx context.Context, arg UpsertDayOverrideParams) (DayOverride, error) {
	row := q.db.QueryRowContext(ctx, upsertDayOverride,
		arg.CourtID,
		arg.OverrideDate,
		arg.IsClosed,
		arg.Note,
	)
	var i DayOverride
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.OverrideDate,
		&i.IsClosed,
		&i.Note,
	)
	return i, err
}

const upsertWeekdayOverride = `-- name: UpsertWeekdayOverride :one
INSERT INTO weekday_overrides (court_id, day_of_week, is_active)
VALUES (?, ?, ?)
ON CONFLICT (court_id, day_of_week) DO UPDATE
SET is_active = excluded.is_active
RETURNING id, court_id, day_of_week, is_active
`

type UpsertWeekdayOverrideParams struct {
	CourtID   int64 `json:"courtId"`
	DayOfWeek int64 `json:"dayOfWeek"`
	IsActive  bool  `json:"isActive"`
}

func (q *Queries) UpsertWeekdayOverride(ctx context.Context, arg UpsertWeekdayOverrideParams) (WeekdayOverride, error) {
	row := q.db.QueryRowContext(ctx, upsertWeekdayOverride, arg.CourtID, arg.DayOfWeek, arg.IsActive)
	var i WeekdayOverride
	err := row.Scan(
		&i.ID,
		&i.CourtID,
		&i.DayOfWeek,
		&i.IsActive,
	)
	return i, err
}
