// Queries from queries/time_slots.sql, in sqlc's output layout.

package generated

import (
	"context"
)

const countTimeSlots = `-- name: CountTimeSlots :one
SELECT COUNT(*) FROM time_slots
`

func (q *Queries) CountTimeSlots(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTimeSlots)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createTimeSlot = `-- name: CreateTimeSlot :one
INSERT INTO time_slots (starts_at, ends_at, is_active, sort_order)
VALUES (?, ?, ?, ?)
RETURNING id, starts_at, ends_at, is_active, sort_order, created_at
`

type CreateTimeSlotParams struct {
	StartsAt  string `json:"startsAt"`
	EndsAt    string `json:"endsAt"`
	IsActive  bool   `json:"isActive"`
	SortOrder int64  `json:"sortOrder"`
}

func (q *Queries) CreateTimeSlot(ctx context.Context, arg CreateTimeSlotParams) (TimeSlot, error) {
	row := q.db.QueryRowContext(ctx, createTimeSlot,
		arg.StartsAt,
		arg.EndsAt,
		arg.IsActive,
		arg.SortOrder,
	)
	var i TimeSlot
	err := row.Scan(
		&i.ID,
		&i.StartsAt,
		&i.EndsAt,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
	)
	return i, err
}

const getTimeSlot = `-- name: GetTimeSlot :one
SELECT id, starts_at, ends_at, is_active, sort_order, created_at
FROM time_slots
WHERE id = ?
`

func (q *Queries) GetTimeSlot(ctx context.Context, id int64) (TimeSlot, error) {
	row := q.db.QueryRowContext(ctx, getTimeSlot, id)
	var i TimeSlot
	err := row.Scan(
		&i.ID,
		&i.StartsAt,
		&i.EndsAt,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
	)
	return i, err
}

const listActiveTimeSlots = `-- name: ListActiveTimeSlots :many
SELECT id, starts_at, ends_at, is_active, sort_order, created_at
FROM time_slots
WHERE is_active = 1
ORDER BY sort_order, starts_at
`

func (q *Queries) ListActiveTimeSlots(ctx context.Context) ([]TimeSlot, error) {
	rows, err := q.db.QueryContext(ctx, listActiveTimeSlots)
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

const listTimeSlots = `-- name: ListTimeSlots :many
SELECT id, starts_at, ends_at, is_active, sort_order, created_at
FROM time_slots
ORDER BY sort_order, starts_at
`

func (q *Queries) ListTimeSlots(ctx context.Context) ([]TimeSlot, error) {
	rows, err := q.db.QueryContext(ctx, listTimeSlots)
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

const setTimeSlotActive = `-- name: SetTimeSlotActive :one
UPDATE time_slots
SET is_active = ?
WHERE id = ?
RETURNING id, starts_at, ends_at, is_active, sort_order, created_at
`

type SetTimeSlotActiveParams struct {
	IsActive bool  `json:"isActive"`
	ID       int64 `json:"id"`
}

func (q *Queries) SetTimeSlotActive(ctx context.Context, arg SetTimeSlotActiveParams) (TimeSlot, error) {
	row := q.db.QueryRowContext(ctx, setTimeSlotActive, arg.IsActive, arg.ID)
	var i TimeSlot
	err := row.Scan(
		&i.ID,
		&i.StartsAt,
		&i.EndsAt,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
	)
	return i, err
}

const updateTimeSlotOrder = `-- name: UpdateTimeSlotOrder :one
UPDATE time_slots
SET sort_order = ?
WHERE id = ?
RETURNING id, starts_at, ends_at, is_active, sort_order, created_at
`

type UpdateTimeSlotOrderParams struct {
	SortOrder int64 `json:"sortOrder"`
	ID        int64 `json:"id"`
}

func (q *Queries) UpdateTimeSlotOrder(ctx context.Context, arg UpdateTimeSlotOrderParams) (TimeSlot, error) {
	row := q.db.QueryRowContext(ctx, updateTimeSlotOrder, arg.SortOrder, arg.ID)
	var i TimeSlot
	err := row.Scan(
		&i.ID,
		&i.StartsAt,
		&i.EndsAt,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
	)
	return i, err
}
