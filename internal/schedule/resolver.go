package schedule

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	dbgen "github.com/codr1/turnero/internal/db/generated"
)

// Resolve returns the slots offered on date for one court. The first
// matching tier wins: a day override for the exact date, then an active
// weekday override, then every active slot definition. Tiers are never
// merged.
func (s *Service) Resolve(ctx context.Context, date time.Time, courtID int64) ([]Slot, error) {
	if _, err := s.getCourt(ctx, courtID); err != nil {
		return nil, err
	}
	return s.resolve(ctx, date, courtID)
}

// ResolveInput is Resolve for a raw YYYY-MM-DD date.
func (s *Service) ResolveInput(ctx context.Context, dateValue string, courtID int64) ([]Slot, error) {
	date, err := ParseDate(dateValue)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, date, courtID)
}

func (s *Service) resolve(ctx context.Context, date time.Time, courtID int64) ([]Slot, error) {
	q := s.db.Queries

	dayOverride, err := q.GetDayOverride(ctx, dbgen.GetDayOverrideParams{
		CourtID:      courtID,
		OverrideDate: FormatDate(date),
	})
	switch {
	case err == nil:
		if dayOverride.IsClosed {
			return []Slot{}, nil
		}
		rows, err := q.ListDayOverrideSlots(ctx, dayOverride.ID)
		if err != nil {
			return nil, fmt.Errorf("list day override slots: %w", err)
		}
		return normalizeSlots(slotsFromDB(rows)), nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("get day override: %w", err)
	}

	weekdayOverride, err := q.GetActiveWeekdayOverride(ctx, dbgen.GetActiveWeekdayOverrideParams{
		CourtID:   courtID,
		DayOfWeek: int64(date.Weekday()),
	})
	switch {
	case err == nil:
		rows, err := q.ListWeekdayOverrideSlots(ctx, weekdayOverride.ID)
		if err != nil {
			return nil, fmt.Errorf("list weekday override slots: %w", err)
		}
		return normalizeSlots(slotsFromDB(rows)), nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("get weekday override: %w", err)
	}

	rows, err := q.ListActiveTimeSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active time slots: %w", err)
	}
	return normalizeSlots(slotsFromDB(rows)), nil
}

// normalizeSlots orders by (sort order, start) and drops repeated
// (start, end) pairs, keeping the first.
func normalizeSlots(slots []Slot) []Slot {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})

	seen := make(map[[2]string]struct{}, len(slots))
	out := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		key := [2]string{slot.Start, slot.End}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, slot)
	}
	return out
}

func offers(slots []Slot, start, end string) bool {
	return slices.ContainsFunc(slots, func(slot Slot) bool {
		return slot.Start == start && slot.End == end
	})
}
