package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/codr1/turnero/internal/db"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Principal is the caller a booking operation acts for. A zero ID is an
// anonymous caller.
type Principal struct {
	ID      int64
	IsAdmin bool
}

type ClientInfo struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"max=32"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Notes string `json:"notes" validate:"max=500"`
}

type BookingRequest struct {
	Date      string
	CourtID   int64
	Start     string
	End       string
	Client    ClientInfo
	Principal Principal
}

type Reservation struct {
	ID             int64      `json:"id"`
	CourtID        int64      `json:"courtId"`
	CourtName      string     `json:"courtName,omitempty"`
	Date           string     `json:"date"`
	Start          string     `json:"start"`
	End            string     `json:"end"`
	ClientName     string     `json:"clientName"`
	ClientPhone    string     `json:"clientPhone,omitempty"`
	ClientEmail    string     `json:"clientEmail,omitempty"`
	UserID         int64      `json:"userId,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedByAdmin bool       `json:"createdByAdmin"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
}

type ReservationFilter struct {
	Date    string
	CourtID int64
	Status  string
}

func reservationFromDB(r dbgen.Reservation) Reservation {
	res := Reservation{
		ID:             r.ID,
		CourtID:        r.CourtID,
		Date:           r.ReservationDate,
		Start:          r.StartsAt,
		End:            r.EndsAt,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
		ClientEmail:    r.ClientEmail,
		Notes:          r.Notes,
		CreatedByAdmin: r.CreatedByAdmin,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
	if r.UserID.Valid {
		res.UserID = r.UserID.Int64
	}
	if r.CancelledAt.Valid {
		cancelledAt := r.CancelledAt.Time
		res.CancelledAt = &cancelledAt
	}
	return res
}

// Book reserves one slot for one court and date. Either the reservation row
// is created or nothing is written.
func (s *Service) Book(ctx context.Context, req BookingRequest) (Reservation, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return Reservation{}, err
	}
	start, err := ParseClock(req.Start)
	if err != nil {
		return Reservation{}, err
	}
	end, err := ParseClock(req.End)
	if err != nil {
		return Reservation{}, err
	}
	if end <= start {
		return Reservation{}, validationError("end time must be after start time")
	}
	if date.Before(s.Today()) {
		return Reservation{}, validationError("date in the past")
	}

	court, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		return Reservation{}, err
	}
	if !court.IsActive {
		return Reservation{}, validationError("court inactive")
	}

	slots, err := s.resolve(ctx, date, court.ID)
	if err != nil {
		return Reservation{}, err
	}
	if !offers(slots, start, end) {
		return Reservation{}, notFoundError("slot not offered")
	}

	client, err := s.normalizeClient(req.Client)
	if err != nil {
		return Reservation{}, err
	}

	dateKey := FormatDate(date)
	taken, err := s.db.Queries.ConfirmedReservationExists(ctx, dbgen.ConfirmedReservationExistsParams{
		ReservationDate: dateKey,
		CourtID:         court.ID,
		StartsAt:        start,
		EndsAt:          end,
	})
	if err != nil {
		return Reservation{}, fmt.Errorf("check existing reservation: %w", err)
	}
	if taken > 0 {
		return Reservation{}, conflictError("slot already taken", nil)
	}
	if s.beforeInsert != nil {
		s.beforeInsert(ctx)
	}

	row, err := s.db.Queries.CreateReservation(ctx, dbgen.CreateReservationParams{
		CourtID:         court.ID,
		ReservationDate: dateKey,
		StartsAt:        start,
		EndsAt:          end,
		ClientName:      client.Name,
		ClientPhone:     client.Phone,
		ClientEmail:     client.Email,
		UserID:          sql.NullInt64{Int64: req.Principal.ID, Valid: req.Principal.ID != 0},
		Notes:           client.Notes,
		CreatedByAdmin:  req.Principal.IsAdmin,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Reservation{}, conflictError("slot already taken", err)
		}
		return Reservation{}, fmt.Errorf("create reservation: %w", err)
	}

	res := reservationFromDB(row)
	res.CourtName = court.Name
	return res, nil
}

func (s *Service) normalizeClient(info ClientInfo) (ClientInfo, error) {
	info.Name = strings.TrimSpace(info.Name)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Email = strings.ToLower(strings.TrimSpace(info.Email))
	info.Notes = strings.TrimSpace(info.Notes)

	if err := s.validate.Struct(info); err != nil {
		return ClientInfo{}, describeValidation(err)
	}

	if info.Phone != "" {
		number, err := phonenumbers.Parse(info.Phone, s.phoneRegion)
		if err != nil || !phonenumbers.IsValidNumber(number) {
			return ClientInfo{}, validationError("invalid phone number")
		}
		info.Phone = phonenumbers.Format(number, phonenumbers.E164)
	}
	return info, nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validationError("invalid client details")
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return validationError("%s is required", field)
	case "max":
		return validationError("%s must be at most %s characters", field, fe.Param())
	case "email":
		return validationError("invalid email address")
	default:
		return validationError("invalid %s", field)
	}
}

func (s *Service) getReservation(ctx context.Context, id int64) (dbgen.Reservation, error) {
	row, err := s.db.Queries.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Reservation{}, notFoundError("reservation %d not found", id)
		}
		return dbgen.Reservation{}, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return row, nil
}

// CancelReservation frees a slot. Admins may cancel anything; other callers
// only their own reservations for today or later. A reservation the caller
// may not see is reported as not found.
func (s *Service) CancelReservation(ctx context.Context, id int64, principal Principal) (Reservation, error) {
	row, err := s.getReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	if !principal.IsAdmin {
		if principal.ID == 0 || !row.UserID.Valid || row.UserID.Int64 != principal.ID {
			return Reservation{}, notFoundError("reservation %d not found", id)
		}
		date, err := ParseDate(row.ReservationDate)
		if err != nil {
			return Reservation{}, fmt.Errorf("stored reservation %d date: %w", id, err)
		}
		if date.Before(s.Today()) {
			return Reservation{}, validationError("past reservations cannot be cancelled")
		}
	}

	cancelled, err := s.db.Queries.CancelReservation(ctx, dbgen.CancelReservationParams{
		CancelledAt: sql.NullTime{Time: s.clock.Now().UTC(), Valid: true},
		ID:          id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reservation{}, validationError("reservation already cancelled")
		}
		return Reservation{}, fmt.Errorf("cancel reservation %d: %w", id, err)
	}
	res := reservationFromDB(cancelled)
	if court, err := s.db.Queries.GetCourt(ctx, cancelled.CourtID); err == nil {
		res.CourtName = court.Name
	}
	return res, nil
}

func (s *Service) UpdateReservationDetails(ctx context.Context, id int64, info ClientInfo) (Reservation, error) {
	client, err := s.normalizeClient(info)
	if err != nil {
		return Reservation{}, err
	}
	row, err := s.db.Queries.UpdateReservationDetails(ctx, dbgen.UpdateReservationDetailsParams{
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		ClientEmail: client.Email,
		Notes:       client.Notes,
		ID:          id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reservation{}, notFoundError("reservation %d not found", id)
		}
		return Reservation{}, fmt.Errorf("update reservation %d: %w", id, err)
	}
	return reservationFromDB(row), nil
}

// MarkCreatedByAdmin flags reservations as admin-created and returns how many
// rows changed. Unknown ids are skipped.
func (s *Service) MarkCreatedByAdmin(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, validationError("at least one reservation id is required")
	}
	var updated int64
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		for _, id := range ids {
			n, err := txdb.Queries.MarkReservationCreatedByAdmin(ctx, id)
			if err != nil {
				return fmt.Errorf("mark reservation %d: %w", id, err)
			}
			updated += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// ListUserReservations returns a user's reservations, newest first.
func (s *Service) ListUserReservations(ctx context.Context, userID int64) ([]Reservation, error) {
	rows, err := s.db.Queries.ListReservationsByUser(ctx, sql.NullInt64{Int64: userID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	reservations := make([]Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, Reservation{
			ID:             row.ID,
			CourtID:        row.CourtID,
			CourtName:      row.CourtName,
			Date:           row.ReservationDate,
			Start:          row.StartsAt,
			End:            row.EndsAt,
			ClientName:     row.ClientName,
			UserID:         userID,
			CreatedByAdmin: row.CreatedByAdmin,
			Status:         row.Status,
		})
	}
	return reservations, nil
}

// ListReservations returns reservations matching every non-zero filter field,
// ordered by date and start time.
func (s *Service) ListReservations(ctx context.Context, filter ReservationFilter) ([]Reservation, error) {
	params := dbgen.ListReservationsParams{}
	if strings.TrimSpace(filter.Date) != "" {
		date, err := ParseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		params.ReservationDate = sql.NullString{String: FormatDate(date), Valid: true}
	}
	if filter.CourtID != 0 {
		params.CourtID = sql.NullInt64{Int64: filter.CourtID, Valid: true}
	}
	switch filter.Status {
	case "":
	case StatusConfirmed, StatusCancelled:
		params.Status = sql.NullString{String: filter.Status, Valid: true}
	default:
		return nil, validationError("invalid status %q", filter.Status)
	}

	rows, err := s.db.Queries.ListReservations(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	reservations := make([]Reservation, 0, len(rows))
	for _, row := range rows {
		res := Reservation{
			ID:             row.ID,
			CourtID:        row.CourtID,
			CourtName:      row.CourtName,
			Date:           row.ReservationDate,
			Start:          row.StartsAt,
			End:            row.EndsAt,
			ClientName:     row.ClientName,
			ClientPhone:    row.ClientPhone,
			ClientEmail:    row.ClientEmail,
			Notes:          row.Notes,
			CreatedByAdmin: row.CreatedByAdmin,
			Status:         row.Status,
		}
		if row.UserID.Valid {
			res.UserID = row.UserID.Int64
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

// GetReservation loads one reservation with its court name.
func (s *Service) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	row, err := s.getReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	res := reservationFromDB(row)
	if court, err := s.db.Queries.GetCourt(ctx, row.CourtID); err == nil {
		res.CourtName = court.Name
	}
	return res, nil
}
