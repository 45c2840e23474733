// Queries from queries/users.sql, in sqlc's output layout.

package generated

import (
	"context"
	"database/sql"
)

const getUserByClerkID = `-- name: GetUserByClerkID :one
SELECT id, email, display_name, is_admin, clerk_user_id, created_at
FROM users
WHERE clerk_user_id = ?
`

func (q *Queries) GetUserByClerkID(ctx context.Context, clerkUserID sql.NullString) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByClerkID, clerkUserID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.DisplayName,
		&i.IsAdmin,
		&i.ClerkUserID,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, display_name, is_admin, clerk_user_id, created_at
FROM users
WHERE email = ? COLLATE NOCASE
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.DisplayName,
		&i.IsAdmin,
		&i.ClerkUserID,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, display_name, is_admin, clerk_user_id, created_at
FROM users
WHERE id = ?
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.DisplayName,
		&i.IsAdmin,
		&i.ClerkUserID,
		&i.CreatedAt,
	)
	return i, err
}

const linkClerkUser = `-- name: LinkClerkUser :exec
UPDATE users
SET clerk_user_id = ?
WHERE id = ?
`

type LinkClerkUserParams struct {
	ClerkUserID sql.NullString `json:"clerkUserId"`
	ID          int64          `json:"id"`
}

func (q *Queries) LinkClerkUser(ctx context.Context, arg LinkClerkUserParams) error {
	_, err := q.db.ExecContext(ctx, linkClerkUser, arg.ClerkUserID, arg.ID)
	return err
}
