package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaultSlotsFile(t *testing.T) {
	slots, err := ParseDefaultSlotsFile()
	if err != nil {
		t.Fatalf("ParseDefaultSlotsFile() error = %v", err)
	}

	if len(slots) != 7 {
		t.Fatalf("ParseDefaultSlotsFile() slot count = %d, want 7", len(slots))
	}
	if slots[0].StartsAt != "12:00" || slots[0].EndsAt != "13:30" {
		t.Fatalf("first slot = %s-%s, want 12:00-13:30", slots[0].StartsAt, slots[0].EndsAt)
	}
	for i, slot := range slots {
		if slot.SortOrder != int64(i) {
			t.Fatalf("slot %d sort order = %d", i, slot.SortOrder)
		}
	}
}

func TestParseDefaultSlotsRejectsBadLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "one_field", input: "12:00\n", wantErr: "want"},
		{name: "bad_start", input: "25:00 26:00\n", wantErr: "invalid start"},
		{name: "reversed", input: "13:30 12:00\n", wantErr: "end must be after start"},
		{name: "duplicate", input: "12:00 13:30\n12:00 13:30\n", wantErr: "duplicate"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseDefaultSlots(strings.NewReader(test.input))
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("parseDefaultSlots() error = %v, want containing %q", err, test.wantErr)
			}
		})
	}
}

func TestSeedDefaultSlotsOnlyOnce(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	inserted, err := database.SeedDefaultSlots(ctx)
	if err != nil {
		t.Fatalf("SeedDefaultSlots() error = %v", err)
	}
	if inserted != 7 {
		t.Fatalf("first seed inserted %d, want 7", inserted)
	}

	inserted, err = database.SeedDefaultSlots(ctx)
	if err != nil {
		t.Fatalf("second SeedDefaultSlots() error = %v", err)
	}
	if inserted != 0 {
		t.Fatalf("second seed inserted %d, want 0", inserted)
	}
}

func TestWithSQLiteOptions(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "plain", dsn: "app.db", want: "app.db?_fk=1&_busy_timeout=5000&_journal_mode=WAL"},
		{name: "keeps_existing", dsn: "app.db?_fk=0", want: "app.db?_fk=0&_busy_timeout=5000&_journal_mode=WAL"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := withSQLiteOptions(test.dsn); got != test.want {
				t.Fatalf("withSQLiteOptions(%q) = %q, want %q", test.dsn, got, test.want)
			}
		})
	}
}
