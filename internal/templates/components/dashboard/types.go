package dashboard

import "github.com/codr1/turnero/internal/schedule"

type CourtOption struct {
	ID       int64
	Name     string
	Selected bool
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

type DashboardData struct {
	Date         string
	Courts       []CourtOption
	Statuses     []StatusOption
	Reservations []schedule.Reservation
	Confirmed    int
	Cancelled    int
}

// NewDashboardData builds the admin reservation list with the active filter
// preselected and per-status counts.
func NewDashboardData(filter schedule.ReservationFilter, courts []schedule.Court, reservations []schedule.Reservation) DashboardData {
	data := DashboardData{
		Date:         filter.Date,
		Reservations: reservations,
	}
	for _, court := range courts {
		data.Courts = append(data.Courts, CourtOption{ID: court.ID, Name: court.Name, Selected: court.ID == filter.CourtID})
	}
	for _, option := range []StatusOption{
		{Value: "", Label: "Todas"},
		{Value: schedule.StatusConfirmed, Label: "Confirmadas"},
		{Value: schedule.StatusCancelled, Label: "Canceladas"},
	} {
		option.Selected = option.Value == filter.Status
		data.Statuses = append(data.Statuses, option)
	}
	for _, r := range reservations {
		switch r.Status {
		case schedule.StatusConfirmed:
			data.Confirmed++
		case schedule.StatusCancelled:
			data.Cancelled++
		}
	}
	return data
}
