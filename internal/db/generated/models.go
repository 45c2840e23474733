package generated

import (
	"database/sql"
	"time"
)

type Court struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type DayOverride struct {
	ID           int64  `json:"id"`
	CourtID      int64  `json:"courtId"`
	OverrideDate string `json:"overrideDate"`
	IsClosed     bool   `json:"isClosed"`
	Note         string `json:"note"`
}

type DayOverrideSlot struct {
	DayOverrideID int64 `json:"dayOverrideId"`
	TimeSlotID    int64 `json:"timeSlotId"`
}

type Reservation struct {
	ID              int64         `json:"id"`
	CourtID         int64         `json:"courtId"`
	ReservationDate string        `json:"reservationDate"`
	StartsAt        string        `json:"startsAt"`
	EndsAt          string        `json:"endsAt"`
	ClientName      string        `json:"clientName"`
	ClientPhone     string        `json:"clientPhone"`
	ClientEmail     string        `json:"clientEmail"`
	UserID          sql.NullInt64 `json:"userId"`
	Notes           string        `json:"notes"`
	CreatedByAdmin  bool          `json:"createdByAdmin"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	CancelledAt     sql.NullTime  `json:"cancelledAt"`
}

type TimeSlot struct {
	ID        int64     `json:"id"`
	StartsAt  string    `json:"startsAt"`
	EndsAt    string    `json:"endsAt"`
	IsActive  bool      `json:"isActive"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID          int64          `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"displayName"`
	IsAdmin     bool           `json:"isAdmin"`
	ClerkUserID sql.NullString `json:"clerkUserId"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type WeekdayOverride struct {
	ID        int64 `json:"id"`
	CourtID   int64 `json:"courtId"`
	DayOfWeek int64 `json:"dayOfWeek"`
	IsActive  bool  `json:"isActive"`
}

type WeekdayOverrideSlot struct {
	WeekdayOverrideID int64 `json:"weekdayOverrideId"`
	TimeSlotID        int64 `json:"timeSlotId"`
}
