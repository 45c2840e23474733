package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/turnero/internal/db"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

const maxCourtNameLength = 100

type Court struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// Slot is a time slot definition. Start and End are HH:MM.
type Slot struct {
	ID        int64  `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	SortOrder int64  `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

type DayOverride struct {
	ID       int64   `json:"id"`
	CourtID  int64   `json:"courtId"`
	Date     string  `json:"date"`
	IsClosed bool    `json:"isClosed"`
	Note     string  `json:"note"`
	SlotIDs  []int64 `json:"slotIds"`
}

type WeekdayOverride struct {
	ID       int64        `json:"id"`
	CourtID  int64        `json:"courtId"`
	Weekday  time.Weekday `json:"dayOfWeek"`
	IsActive bool         `json:"isActive"`
	SlotIDs  []int64      `json:"slotIds"`
}

type DayOverrideInput struct {
	CourtID  int64
	Date     string
	IsClosed bool
	Note     string
	SlotIDs  []int64
}

type WeekdayOverrideInput struct {
	CourtID  int64
	Weekday  time.Weekday
	IsActive bool
	SlotIDs  []int64
}

func courtFromDB(c dbgen.Court) Court {
	return Court{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

func slotFromDB(ts dbgen.TimeSlot) Slot {
	return Slot{
		ID:        ts.ID,
		Start:     ts.StartsAt,
		End:       ts.EndsAt,
		SortOrder: ts.SortOrder,
		IsActive:  ts.IsActive,
	}
}

func slotsFromDB(rows []dbgen.TimeSlot) []Slot {
	slots := make([]Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, slotFromDB(row))
	}
	return slots
}

func (s *Service) getCourt(ctx context.Context, courtID int64) (dbgen.Court, error) {
	court, err := s.db.Queries.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Court{}, notFoundError("court %d not found", courtID)
		}
		return dbgen.Court{}, fmt.Errorf("get court %d: %w", courtID, err)
	}
	return court, nil
}

func (s *Service) GetCourt(ctx context.Context, courtID int64) (Court, error) {
	court, err := s.getCourt(ctx, courtID)
	if err != nil {
		return Court{}, err
	}
	return courtFromDB(court), nil
}

func (s *Service) ListCourts(ctx context.Context) ([]Court, error) {
	rows, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	courts := make([]Court, 0, len(rows))
	for _, row := range rows {
		courts = append(courts, courtFromDB(row))
	}
	return courts, nil
}

func (s *Service) CreateCourt(ctx context.Context, name string) (Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Court{}, validationError("court name is required")
	}
	if len(name) > maxCourtNameLength {
		return Court{}, validationError("court name must be %d characters or fewer", maxCourtNameLength)
	}
	court, err := s.db.Queries.CreateCourt(ctx, dbgen.CreateCourtParams{Name: name, IsActive: true})
	if err != nil {
		return Court{}, fmt.Errorf("create court: %w", err)
	}
	return courtFromDB(court), nil
}

func (s *Service) SetCourtActive(ctx context.Context, courtID int64, active bool) (Court, error) {
	court, err := s.db.Queries.SetCourtActive(ctx, dbgen.SetCourtActiveParams{IsActive: active, ID: courtID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Court{}, notFoundError("court %d not found", courtID)
		}
		return Court{}, fmt.Errorf("set court %d active: %w", courtID, err)
	}
	return courtFromDB(court), nil
}

func (s *Service) ToggleCourt(ctx context.Context, courtID int64) (Court, error) {
	court, err := s.getCourt(ctx, courtID)
	if err != nil {
		return Court{}, err
	}
	return s.SetCourtActive(ctx, courtID, !court.IsActive)
}

func (s *Service) ListTimeSlots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.Queries.ListTimeSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slotsFromDB(rows), nil
}

func (s *Service) CreateTimeSlot(ctx context.Context, start, end string, sortOrder int64) (Slot, error) {
	start, err := ParseClock(start)
	if err != nil {
		return Slot{}, err
	}
	end, err = ParseClock(end)
	if err != nil {
		return Slot{}, err
	}
	if end <= start {
		return Slot{}, validationError("end time must be after start time")
	}
	if sortOrder < 0 {
		return Slot{}, validationError("sort order must not be negative")
	}

	slot, err := s.db.Queries.CreateTimeSlot(ctx, dbgen.CreateTimeSlotParams{
		StartsAt:  start,
		EndsAt:    end,
		IsActive:  true,
		SortOrder: sortOrder,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Slot{}, conflictError(fmt.Sprintf("time slot %s-%s already exists", start, end), err)
		}
		return Slot{}, fmt.Errorf("create time slot: %w", err)
	}
	return slotFromDB(slot), nil
}

func (s *Service) ToggleTimeSlot(ctx context.Context, slotID int64) (Slot, error) {
	current, err := s.db.Queries.GetTimeSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Slot{}, notFoundError("time slot %d not found", slotID)
		}
		return Slot{}, fmt.Errorf("get time slot %d: %w", slotID, err)
	}
	updated, err := s.db.Queries.SetTimeSlotActive(ctx, dbgen.SetTimeSlotActiveParams{
		IsActive: !current.IsActive,
		ID:       slotID,
	})
	if err != nil {
		return Slot{}, fmt.Errorf("toggle time slot %d: %w", slotID, err)
	}
	return slotFromDB(updated), nil
}

func (s *Service) UpdateTimeSlotOrder(ctx context.Context, slotID, sortOrder int64) (Slot, error) {
	if sortOrder < 0 {
		return Slot{}, validationError("sort order must not be negative")
	}
	updated, err := s.db.Queries.UpdateTimeSlotOrder(ctx, dbgen.UpdateTimeSlotOrderParams{
		SortOrder: sortOrder,
		ID:        slotID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Slot{}, notFoundError("time slot %d not found", slotID)
		}
		return Slot{}, fmt.Errorf("update time slot %d order: %w", slotID, err)
	}
	return slotFromDB(updated), nil
}

// SetDayOverride replaces the override for one court and date. A closed
// override ignores SlotIDs.
func (s *Service) SetDayOverride(ctx context.Context, input DayOverrideInput) (DayOverride, error) {
	date, err := ParseDate(input.Date)
	if err != nil {
		return DayOverride{}, err
	}
	if _, err := s.getCourt(ctx, input.CourtID); err != nil {
		return DayOverride{}, err
	}
	slotIDs := input.SlotIDs
	if input.IsClosed {
		slotIDs = nil
	}

	var result DayOverride
	err = s.db.RunInTx(ctx, func(txdb *db.DB) error {
		override, err := txdb.Queries.UpsertDayOverride(ctx, dbgen.UpsertDayOverrideParams{
			CourtID:      input.CourtID,
			OverrideDate: FormatDate(date),
			IsClosed:     input.IsClosed,
			Note:         strings.TrimSpace(input.Note),
		})
		if err != nil {
			return fmt.Errorf("upsert day override: %w", err)
		}
		if err := txdb.Queries.ClearDayOverrideSlots(ctx, override.ID); err != nil {
			return fmt.Errorf("clear day override slots: %w", err)
		}
		linked, err := linkSlots(ctx, txdb, slotIDs, func(slotID int64) error {
			return txdb.Queries.AddDayOverrideSlot(ctx, dbgen.AddDayOverrideSlotParams{
				DayOverrideID: override.ID,
				TimeSlotID:    slotID,
			})
		})
		if err != nil {
			return err
		}
		result = DayOverride{
			ID:       override.ID,
			CourtID:  override.CourtID,
			Date:     override.OverrideDate,
			IsClosed: override.IsClosed,
			Note:     override.Note,
			SlotIDs:  linked,
		}
		return nil
	})
	if err != nil {
		return DayOverride{}, err
	}
	return result, nil
}

func (s *Service) DeleteDayOverride(ctx context.Context, courtID int64, dateValue string) error {
	date, err := ParseDate(dateValue)
	if err != nil {
		return err
	}
	deleted, err := s.db.Queries.DeleteDayOverride(ctx, dbgen.DeleteDayOverrideParams{
		CourtID:      courtID,
		OverrideDate: FormatDate(date),
	})
	if err != nil {
		return fmt.Errorf("delete day override: %w", err)
	}
	if deleted == 0 {
		return notFoundError("no override for court %d on %s", courtID, FormatDate(date))
	}
	return nil
}

func (s *Service) SetWeekdayOverride(ctx context.Context, input WeekdayOverrideInput) (WeekdayOverride, error) {
	if input.Weekday < time.Sunday || input.Weekday > time.Saturday {
		return WeekdayOverride{}, validationError("day of week must be between 0 and 6")
	}
	if _, err := s.getCourt(ctx, input.CourtID); err != nil {
		return WeekdayOverride{}, err
	}

	var result WeekdayOverride
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		override, err := txdb.Queries.UpsertWeekdayOverride(ctx, dbgen.UpsertWeekdayOverrideParams{
			CourtID:   input.CourtID,
			DayOfWeek: int64(input.Weekday),
			IsActive:  input.IsActive,
		})
		if err != nil {
			return fmt.Errorf("upsert weekday override: %w", err)
		}
		if err := txdb.Queries.ClearWeekdayOverrideSlots(ctx, override.ID); err != nil {
			return fmt.Errorf("clear weekday override slots: %w", err)
		}
		linked, err := linkSlots(ctx, txdb, input.SlotIDs, func(slotID int64) error {
			return txdb.Queries.AddWeekdayOverrideSlot(ctx, dbgen.AddWeekdayOverrideSlotParams{
				WeekdayOverrideID: override.ID,
				TimeSlotID:        slotID,
			})
		})
		if err != nil {
			return err
		}
		result = WeekdayOverride{
			ID:       override.ID,
			CourtID:  override.CourtID,
			Weekday:  time.Weekday(override.DayOfWeek),
			IsActive: override.IsActive,
			SlotIDs:  linked,
		}
		return nil
	})
	if err != nil {
		return WeekdayOverride{}, err
	}
	return result, nil
}

func (s *Service) DeleteWeekdayOverride(ctx context.Context, courtID int64, weekday time.Weekday) error {
	deleted, err := s.db.Queries.DeleteWeekdayOverride(ctx, dbgen.DeleteWeekdayOverrideParams{
		CourtID:   courtID,
		DayOfWeek: int64(weekday),
	})
	if err != nil {
		return fmt.Errorf("delete weekday override: %w", err)
	}
	if deleted == 0 {
		return notFoundError("no override for court %d on weekday %d", courtID, weekday)
	}
	return nil
}

// linkSlots checks every slot exists and links it once, keeping input order.
func linkSlots(ctx context.Context, txdb *db.DB, slotIDs []int64, link func(int64) error) ([]int64, error) {
	linked := make([]int64, 0, len(slotIDs))
	seen := make(map[int64]struct{}, len(slotIDs))
	for _, slotID := range slotIDs {
		if _, ok := seen[slotID]; ok {
			continue
		}
		seen[slotID] = struct{}{}
		if _, err := txdb.Queries.GetTimeSlot(ctx, slotID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, notFoundError("time slot %d not found", slotID)
			}
			return nil, fmt.Errorf("get time slot %d: %w", slotID, err)
		}
		if err := link(slotID); err != nil {
			return nil, fmt.Errorf("link time slot %d: %w", slotID, err)
		}
		linked = append(linked, slotID)
	}
	return linked, nil
}
