package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func ParseNonNegativeInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be 0 or greater", field)
	}
	return value, nil
}

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// ParseOptionalInt64Field returns 0 for an empty value.
func ParseOptionalInt64Field(raw string, field string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ParsePositiveInt64Field(raw, field)
}

func PathID(r *http.Request, name string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(name), name)
}

// ParseWeekday accepts 0 (Sunday) through 6 (Saturday).
func ParseWeekday(raw string) (time.Weekday, error) {
	value, err := ParseNonNegativeInt64Field(raw, "day_of_week")
	if err != nil {
		return 0, err
	}
	if value > 6 {
		return 0, fmt.Errorf("day_of_week must be between 0 and 6")
	}
	return time.Weekday(value), nil
}

// ParseBoolField treats checkbox values ("on") like true.
func ParseBoolField(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// ParseIDList parses repeated or comma separated ids, skipping blanks.
func ParseIDList(values []string, field string) ([]int64, error) {
	ids := []int64{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParsePositiveInt64Field(part, field)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
