// Package schedule holds the court catalog, availability resolution, the
// occupancy grid and the booking writer.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/codr1/turnero/internal/db"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	defaultPhoneRegion = "AR"
)

type Options struct {
	// Clock decides what "today" is. Nil uses the system clock.
	Clock clockwork.Clock
	// Location is the facility timezone. Nil uses UTC.
	Location    *time.Location
	PhoneRegion string
}

type Service struct {
	db          *db.DB
	clock       clockwork.Clock
	loc         *time.Location
	phoneRegion string
	validate    *validator.Validate

	// beforeInsert runs after the availability check and before the
	// reservation insert. Tests set it to interleave a competing writer.
	beforeInsert func(ctx context.Context)
}

func NewService(database *db.DB, opts Options) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	region := strings.ToUpper(strings.TrimSpace(opts.PhoneRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &Service{
		db:          database,
		clock:       clock,
		loc:         loc,
		phoneRegion: region,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Today returns the current calendar date in the facility timezone, as a
// UTC midnight value comparable with ParseDate results.
func (s *Service) Today() time.Time {
	now := s.clock.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, validationError("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// ParseClock parses an HH:MM time of day and returns it zero padded.
func ParseClock(value string) (string, error) {
	parsed, err := time.Parse(ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return "", validationError("invalid time %q, expected HH:MM", value)
	}
	return parsed.Format(ClockLayout), nil
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
