package schedule

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/codr1/turnero/internal/testutil"
)

func TestResolveFallbackOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	court := testutil.CreateCourt(t, f.db, "Cancha 1", true)

	testutil.CreateTimeSlot(t, f.db, "18:00", "19:30", 1, true)
	testutil.CreateTimeSlot(t, f.db, "12:00", "13:30", 1, true)
	testutil.CreateTimeSlot(t, f.db, "21:00", "22:30", 0, true)
	testutil.CreateTimeSlot(t, f.db, "15:00", "16:30", 0, false)

	slots, err := f.svc.Resolve(ctx, mustDate(t, "2025-06-02"), court.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"21:00-22:30", "12:00-13:30", "18:00-19:30"}
	if got := slotPairs(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveTiers(t *testing.T) {
	ctx := context.Background()
	// 2025-06-02 is a Monday.
	date := "2025-06-02"

	tests := []struct {
		name  string
		setup func(t *testing.T, f fixture, courtID int64, ids map[string]int64)
		want  []string
	}{
		{
			name: "fallback",
			want: []string{"12:00-13:30", "13:30-15:00", "18:00-19:30"},
		},
		{
			name: "weekday_override",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setWeekday(t, f, courtID, time.Monday, true, ids["18:00"])
			},
			want: []string{"18:00-19:30"},
		},
		{
			name: "inactive_weekday_override_ignored",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setWeekday(t, f, courtID, time.Monday, false, ids["18:00"])
			},
			want: []string{"12:00-13:30", "13:30-15:00", "18:00-19:30"},
		},
		{
			name: "other_weekday_override_ignored",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setWeekday(t, f, courtID, time.Tuesday, true, ids["18:00"])
			},
			want: []string{"12:00-13:30", "13:30-15:00", "18:00-19:30"},
		},
		{
			name: "day_override_beats_weekday",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setWeekday(t, f, courtID, time.Monday, true, ids["18:00"])
				setDay(t, f, courtID, date, false, ids["13:30"], ids["12:00"])
			},
			want: []string{"12:00-13:30", "13:30-15:00"},
		},
		{
			name: "closed_day_is_empty",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setWeekday(t, f, courtID, time.Monday, true, ids["18:00"])
				setDay(t, f, courtID, date, true, ids["12:00"])
			},
			want: []string{},
		},
		{
			name: "day_override_without_slots_is_empty",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setDay(t, f, courtID, date, false)
			},
			want: []string{},
		},
		{
			name: "day_override_skips_inactive_definitions",
			setup: func(t *testing.T, f fixture, courtID int64, ids map[string]int64) {
				setDay(t, f, courtID, date, false, ids["12:00"], ids["18:00"])
				if _, err := f.svc.ToggleTimeSlot(context.Background(), ids["18:00"]); err != nil {
					t.Fatalf("ToggleTimeSlot() error = %v", err)
				}
			},
			want: []string{"12:00-13:30"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t)
			court := testutil.CreateCourt(t, f.db, "Cancha 1", true)
			ids := map[string]int64{
				"12:00": testutil.CreateTimeSlot(t, f.db, "12:00", "13:30", 0, true).ID,
				"13:30": testutil.CreateTimeSlot(t, f.db, "13:30", "15:00", 1, true).ID,
				"18:00": testutil.CreateTimeSlot(t, f.db, "18:00", "19:30", 2, true).ID,
			}
			if test.setup != nil {
				test.setup(t, f, court.ID, ids)
			}

			slots, err := f.svc.ResolveInput(ctx, date, court.ID)
			if err != nil {
				t.Fatalf("ResolveInput() error = %v", err)
			}
			if got := slotPairs(slots); !reflect.DeepEqual(got, test.want) {
				t.Fatalf("ResolveInput() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestResolveOverridesAreScopedToCourt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := testutil.CreateCourt(t, f.db, "Cancha 1", true)
	second := testutil.CreateCourt(t, f.db, "Cancha 2", true)
	testutil.CreateTimeSlot(t, f.db, "12:00", "13:30", 0, true)

	setDay(t, f, first.ID, "2025-06-02", true)

	closed, err := f.svc.Resolve(ctx, mustDate(t, "2025-06-02"), first.ID)
	if err != nil {
		t.Fatalf("Resolve(first) error = %v", err)
	}
	open, err := f.svc.Resolve(ctx, mustDate(t, "2025-06-02"), second.ID)
	if err != nil {
		t.Fatalf("Resolve(second) error = %v", err)
	}
	if len(closed) != 0 || len(open) != 1 {
		t.Fatalf("closed = %v, open = %v", slotPairs(closed), slotPairs(open))
	}
}

func TestResolveErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.ResolveInput(ctx, "2025-13-01", 1); !IsValidation(err) {
		t.Fatalf("malformed date error = %v, want validation", err)
	}
	if _, err := f.svc.ResolveInput(ctx, "2025-06-01", 99); !IsNotFound(err) {
		t.Fatalf("unknown court error = %v, want not found", err)
	}
}

func TestNormalizeSlotsDropsDuplicatePairs(t *testing.T) {
	slots := normalizeSlots([]Slot{
		{ID: 3, Start: "18:00", End: "19:30", SortOrder: 1},
		{ID: 1, Start: "12:00", End: "13:30", SortOrder: 1},
		{ID: 2, Start: "12:00", End: "13:30", SortOrder: 2},
		{ID: 4, Start: "09:00", End: "10:30", SortOrder: 0},
	})

	want := []string{"09:00-10:30", "12:00-13:30", "18:00-19:30"}
	if got := slotPairs(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeSlots() = %v, want %v", got, want)
	}
	if slots[1].ID != 1 {
		t.Fatalf("kept slot id = %d, want first occurrence 1", slots[1].ID)
	}
}

func setWeekday(t *testing.T, f fixture, courtID int64, day time.Weekday, active bool, slotIDs ...int64) {
	t.Helper()
	_, err := f.svc.SetWeekdayOverride(context.Background(), WeekdayOverrideInput{
		CourtID:  courtID,
		Weekday:  day,
		IsActive: active,
		SlotIDs:  slotIDs,
	})
	if err != nil {
		t.Fatalf("SetWeekdayOverride() error = %v", err)
	}
}

func setDay(t *testing.T, f fixture, courtID int64, date string, closed bool, slotIDs ...int64) {
	t.Helper()
	_, err := f.svc.SetDayOverride(context.Background(), DayOverrideInput{
		CourtID:  courtID,
		Date:     date,
		IsClosed: closed,
		SlotIDs:  slotIDs,
	})
	if err != nil {
		t.Fatalf("SetDayOverride() error = %v", err)
	}
}
