package reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/codr1/turnero/internal/schedule"
)

type DatePickerData struct {
	Today string
	Error string
}

type GridPageData struct {
	Date     string
	Weekday  string
	PrevDate string
	NextDate string
	IsPast   bool
	Courts   []CourtColumn
}

type CourtColumn struct {
	CourtID   int64
	CourtName string
	Slots     []SlotCell
}

type SlotCell struct {
	Start    string
	End      string
	Occupied bool
	BookURL  string
}

var weekdayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

func WeekdayName(day time.Weekday) string {
	return weekdayNames[day]
}

// NewGridPageData adapts a built grid for rendering. Booking links are
// omitted for past dates and occupied slots.
func NewGridPageData(grid schedule.Grid, date, today time.Time) GridPageData {
	data := GridPageData{
		Date:     grid.Date,
		Weekday:  WeekdayName(date.Weekday()),
		PrevDate: schedule.FormatDate(date.AddDate(0, 0, -1)),
		NextDate: schedule.FormatDate(date.AddDate(0, 0, 1)),
		IsPast:   date.Before(today),
		Courts:   make([]CourtColumn, 0, len(grid.Courts)),
	}
	for _, row := range grid.Courts {
		column := CourtColumn{CourtID: row.Court.ID, CourtName: row.Court.Name, Slots: make([]SlotCell, 0, len(row.Slots))}
		for _, slot := range row.Slots {
			cell := SlotCell{Start: slot.Start, End: slot.End, Occupied: slot.Occupied}
			if !slot.Occupied && !data.IsPast {
				cell.BookURL = ConfirmURL(grid.Date, row.Court.ID, slot.Start, slot.End)
			}
			column.Slots = append(column.Slots, cell)
		}
		data.Courts = append(data.Courts, column)
	}
	return data
}

func ConfirmURL(date string, courtID int64, start, end string) string {
	values := url.Values{}
	values.Set("date", date)
	values.Set("court_id", strconv.FormatInt(courtID, 10))
	values.Set("start", start)
	values.Set("end", end)
	return "/reservas/confirmar?" + values.Encode()
}

type ConfirmFormData struct {
	Date      string
	CourtID   int64
	CourtName string
	Start     string
	End       string
	Client    schedule.ClientInfo
	Error     string
}

type BookingSuccessData struct {
	Reservation schedule.Reservation
	GridURL     string
}

type MyReservationsData struct {
	Reservations []ReservationRow
}

type ReservationRow struct {
	ID        int64
	CourtName string
	Date      string
	Start     string
	End       string
	Status    string
	CanCancel bool
}

func NewMyReservationsData(reservations []schedule.Reservation, today time.Time) MyReservationsData {
	todayKey := schedule.FormatDate(today)
	rows := make([]ReservationRow, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, ReservationRow{
			ID:        r.ID,
			CourtName: r.CourtName,
			Date:      r.Date,
			Start:     r.Start,
			End:       r.End,
			Status:    r.Status,
			CanCancel: r.Status == schedule.StatusConfirmed && r.Date >= todayKey,
		})
	}
	return MyReservationsData{Reservations: rows}
}
