package db

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "unique.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	insert := "INSERT INTO time_slots (starts_at, ends_at) VALUES ('08:00', '09:00')"
	if _, err := database.Exec(insert); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, dupErr := database.Exec(insert)
	_, checkErr := database.Exec("INSERT INTO time_slots (starts_at, ends_at) VALUES ('10:00', '09:00')")
	if checkErr == nil {
		t.Fatal("expected CHECK constraint failure")
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unique", err: dupErr, want: true},
		{name: "wrapped_unique", err: fmt.Errorf("create slot: %w", dupErr), want: true},
		{name: "check_constraint", err: checkErr, want: false},
		{name: "plain_error", err: fmt.Errorf("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsUniqueViolation(test.err); got != test.want {
				t.Fatalf("IsUniqueViolation(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}
