// Queries from queries/courts.sql, in sqlc's output layout.

package generated

import (
	"context"
)

const createCourt = `-- name: CreateCourt :one
INSERT INTO courts (name, is_active)
VALUES (?, ?)
RETURNING id, name, is_active, created_at
`

type CreateCourtParams struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (q *Queries) CreateCourt(ctx context.Context, arg CreateCourtParams) (Court, error) {
	row := q.db.QueryRowContext(ctx, createCourt, arg.Name, arg.IsActive)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const getCourt = `-- name: GetCourt :one
SELECT id, name, is_active, created_at
FROM courts
WHERE id = ?
`

func (q *Queries) GetCourt(ctx context.Context, id int64) (Court, error) {
	row := q.db.QueryRowContext(ctx, getCourt, id)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}

const listActiveCourts = `-- name: ListActiveCourts :many
SELECT id, name, is_active, created_at
FROM courts
WHERE is_active = 1
ORDER BY id
`

func (q *Queries) ListActiveCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listActiveCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Court
	for rows.Next() {
		var i Court
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.IsActive,
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

const listCourts = `-- name: ListCourts :many
SELECT id, name, is_active, created_at
FROM courts
ORDER BY id
`

func (q *Queries) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := q.db.QueryContext(ctx, listCourts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Court
	for rows.Next() {
		var i Court
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.IsActive,
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

const setCourtActive = `-- name: SetCourtActive :one
UPDATE courts
SET is_active = ?
WHERE id = ?
RETURNING id, name, is_active, created_at
`

type SetCourtActiveParams struct {
	IsActive bool  `json:"isActive"`
	ID       int64 `json:"id"`
}

func (q *Queries) SetCourtActive(ctx context.Context, arg SetCourtActiveParams) (Court, error) {
	row := q.db.QueryRowContext(ctx, setCourtActive, arg.IsActive, arg.ID)
	var i Court
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.IsActive,
		&i.CreatedAt,
	)
	return i, err
}
