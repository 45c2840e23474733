package schedule

import (
	"context"
	"reflect"
	"testing"

	"github.com/codr1/turnero/internal/testutil"
)

func TestBuildGridCoversActiveCourts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := testutil.CreateCourt(t, f.db, "Cancha 1", true)
	testutil.CreateCourt(t, f.db, "Cancha vieja", false)
	closed := testutil.CreateCourt(t, f.db, "Cancha 3", true)
	testutil.CreateTimeSlot(t, f.db, "12:00", "13:30", 0, true)
	testutil.CreateTimeSlot(t, f.db, "13:30", "15:00", 1, true)
	setDay(t, f, closed.ID, "2025-06-02", true)

	grid, err := f.svc.BuildGrid(ctx, mustDate(t, "2025-06-02"))
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}

	if grid.Date != "2025-06-02" {
		t.Fatalf("grid date = %s", grid.Date)
	}
	if len(grid.Courts) != 2 {
		t.Fatalf("grid courts = %d, want 2 active courts", len(grid.Courts))
	}
	if grid.Courts[0].Court.ID != first.ID || grid.Courts[1].Court.ID != closed.ID {
		t.Fatalf("grid court order = %d, %d", grid.Courts[0].Court.ID, grid.Courts[1].Court.ID)
	}
	if len(grid.Courts[1].Slots) != 0 {
		t.Fatalf("closed court slots = %v, want none", grid.Courts[1].Slots)
	}

	for _, row := range grid.Courts {
		resolved, err := f.svc.Resolve(ctx, mustDate(t, "2025-06-02"), row.Court.ID)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		got := make([]string, 0, len(row.Slots))
		for _, slot := range row.Slots {
			got = append(got, slot.Start+"-"+slot.End)
		}
		if !reflect.DeepEqual(got, slotPairs(resolved)) {
			t.Fatalf("court %d grid slots = %v, resolved = %v", row.Court.ID, got, slotPairs(resolved))
		}
	}
}

func TestBuildGridMarksOccupiedSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := testutil.CreateCourt(t, f.db, "Cancha 1", true)
	second := testutil.CreateCourt(t, f.db, "Cancha 2", true)
	testutil.CreateTimeSlot(t, f.db, "12:00", "13:30", 0, true)
	testutil.CreateTimeSlot(t, f.db, "13:30", "15:00", 1, true)

	if _, err := f.svc.Book(ctx, BookingRequest{
		Date: "2025-06-02", CourtID: second.ID, Start: "13:30", End: "15:00",
		Client: ClientInfo{Name: "Ana"},
	}); err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	cancelled, err := f.svc.Book(ctx, BookingRequest{
		Date: "2025-06-02", CourtID: first.ID, Start: "12:00", End: "13:30",
		Client: ClientInfo{Name: "Beto"}, Principal: Principal{IsAdmin: true},
	})
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if _, err := f.svc.CancelReservation(ctx, cancelled.ID, Principal{IsAdmin: true}); err != nil {
		t.Fatalf("CancelReservation() error = %v", err)
	}

	grid, err := f.svc.BuildGridInput(ctx, "2025-06-02")
	if err != nil {
		t.Fatalf("BuildGridInput() error = %v", err)
	}

	occupied := map[string]bool{}
	for _, row := range grid.Courts {
		for _, slot := range row.Slots {
			occupied[row.Court.Name+" "+slot.Start] = slot.Occupied
		}
	}
	want := map[string]bool{
		"Cancha 1 12:00": false,
		"Cancha 1 13:30": false,
		"Cancha 2 12:00": false,
		"Cancha 2 13:30": true,
	}
	if !reflect.DeepEqual(occupied, want) {
		t.Fatalf("occupancy = %v, want %v", occupied, want)
	}

	again, err := f.svc.BuildGridInput(ctx, "2025-06-02")
	if err != nil {
		t.Fatalf("second BuildGridInput() error = %v", err)
	}
	if !reflect.DeepEqual(grid, again) {
		t.Fatalf("BuildGrid not idempotent: %+v vs %+v", grid, again)
	}
}

func TestBuildGridRejectsMalformedDate(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.BuildGridInput(context.Background(), "01/06/2025"); !IsValidation(err) {
		t.Fatalf("BuildGridInput() error = %v, want validation", err)
	}
}
