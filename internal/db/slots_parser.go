package db

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/codr1/turnero/assets"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

const clockLayout = "15:04"

// DefaultSlot is one line of the embedded default slot catalog.
type DefaultSlot struct {
	StartsAt  string
	EndsAt    string
	SortOrder int64
}

// ParseDefaultSlotsFile reads assets/default_slots and returns the slots in file order.
func ParseDefaultSlotsFile() ([]DefaultSlot, error) {
	file, err := assets.DefaultSlotsFS.Open(assets.DefaultSlotsPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded default slots file: %w", err)
	}
	defer file.Close()

	return parseDefaultSlots(file)
}

func parseDefaultSlots(r io.Reader) ([]DefaultSlot, error) {
	scanner := bufio.NewScanner(r)
	slots := []DefaultSlot{}
	seen := make(map[string]struct{})
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("default slots line %d: want \"HH:MM HH:MM\", got %q", lineNo, line)
		}
		start, err := time.Parse(clockLayout, fields[0])
		if err != nil {
			return nil, fmt.Errorf("default slots line %d: invalid start %q", lineNo, fields[0])
		}
		end, err := time.Parse(clockLayout, fields[1])
		if err != nil {
			return nil, fmt.Errorf("default slots line %d: invalid end %q", lineNo, fields[1])
		}
		if !end.After(start) {
			return nil, fmt.Errorf("default slots line %d: end must be after start", lineNo)
		}

		key := fields[0] + "-" + fields[1]
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("default slots line %d: duplicate slot %s", lineNo, key)
		}
		seen[key] = struct{}{}

		slots = append(slots, DefaultSlot{
			StartsAt:  start.Format(clockLayout),
			EndsAt:    end.Format(clockLayout),
			SortOrder: int64(len(slots)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read default slots file: %w", err)
	}
	return slots, nil
}

// SeedDefaultSlots fills an empty time slot catalog from the embedded defaults.
// It returns the number of slots inserted; a non-empty catalog is left alone.
func (db *DB) SeedDefaultSlots(ctx context.Context) (int, error) {
	slots, err := ParseDefaultSlotsFile()
	if err != nil {
		return 0, err
	}

	inserted := 0
	err = db.RunInTx(ctx, func(txdb *DB) error {
		count, err := txdb.Queries.CountTimeSlots(ctx)
		if err != nil {
			return fmt.Errorf("count time slots: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, slot := range slots {
			if _, err := txdb.Queries.CreateTimeSlot(ctx, dbgen.CreateTimeSlotParams{
				StartsAt:  slot.StartsAt,
				EndsAt:    slot.EndsAt,
				IsActive:  true,
				SortOrder: slot.SortOrder,
			}); err != nil {
				return fmt.Errorf("seed time slot %s-%s: %w", slot.StartsAt, slot.EndsAt, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
