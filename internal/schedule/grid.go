package schedule

import (
	"context"
	"fmt"
	"time"
)

type GridSlot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Occupied bool   `json:"occupied"`
}

type GridCourt struct {
	Court Court      `json:"court"`
	Slots []GridSlot `json:"slots"`
}

type Grid struct {
	Date   string      `json:"date"`
	Courts []GridCourt `json:"courts"`
}

type occupancyKey struct {
	courtID int64
	start   string
	end     string
}

// BuildGrid resolves every active court for date and marks the slots that
// already hold a confirmed reservation. It only reads.
func (s *Service) BuildGrid(ctx context.Context, date time.Time) (Grid, error) {
	dateKey := FormatDate(date)

	courts, err := s.db.Queries.ListActiveCourts(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("list active courts: %w", err)
	}

	reservations, err := s.db.Queries.ListConfirmedReservationsForDate(ctx, dateKey)
	if err != nil {
		return Grid{}, fmt.Errorf("list reservations for %s: %w", dateKey, err)
	}
	occupied := make(map[occupancyKey]struct{}, len(reservations))
	for _, r := range reservations {
		occupied[occupancyKey{courtID: r.CourtID, start: r.StartsAt, end: r.EndsAt}] = struct{}{}
	}

	grid := Grid{Date: dateKey, Courts: make([]GridCourt, 0, len(courts))}
	for _, court := range courts {
		slots, err := s.resolve(ctx, date, court.ID)
		if err != nil {
			return Grid{}, fmt.Errorf("resolve court %d: %w", court.ID, err)
		}
		row := GridCourt{Court: courtFromDB(court), Slots: make([]GridSlot, 0, len(slots))}
		for _, slot := range slots {
			_, taken := occupied[occupancyKey{courtID: court.ID, start: slot.Start, end: slot.End}]
			row.Slots = append(row.Slots, GridSlot{Start: slot.Start, End: slot.End, Occupied: taken})
		}
		grid.Courts = append(grid.Courts, row)
	}
	return grid, nil
}

// BuildGridInput is BuildGrid for a raw YYYY-MM-DD date.
func (s *Service) BuildGridInput(ctx context.Context, dateValue string) (Grid, error) {
	date, err := ParseDate(dateValue)
	if err != nil {
		return Grid{}, err
	}
	return s.BuildGrid(ctx, date)
}
