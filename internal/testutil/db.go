package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/turnero/internal/db"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

func CreateCourt(t *testing.T, database *db.DB, name string, active bool) dbgen.Court {
	t.Helper()

	court, err := database.Queries.CreateCourt(context.Background(), dbgen.CreateCourtParams{
		Name:     name,
		IsActive: active,
	})
	if err != nil {
		t.Fatalf("create court %q: %v", name, err)
	}
	return court
}

func CreateTimeSlot(t *testing.T, database *db.DB, start, end string, sortOrder int64, active bool) dbgen.TimeSlot {
	t.Helper()

	slot, err := database.Queries.CreateTimeSlot(context.Background(), dbgen.CreateTimeSlotParams{
		StartsAt:  start,
		EndsAt:    end,
		IsActive:  active,
		SortOrder: sortOrder,
	})
	if err != nil {
		t.Fatalf("create time slot %s-%s: %v", start, end, err)
	}
	return slot
}

// CreateUser inserts a user row directly; the app itself never creates users.
func CreateUser(t *testing.T, database *db.DB, email string, isAdmin bool) dbgen.User {
	t.Helper()

	ctx := context.Background()
	res, err := database.ExecContext(ctx,
		"INSERT INTO users (email, display_name, is_admin) VALUES (?, ?, ?)",
		email, email, isAdmin,
	)
	if err != nil {
		t.Fatalf("create user %q: %v", email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	user, err := database.Queries.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("load user %d: %v", id, err)
	}
	return user
}
