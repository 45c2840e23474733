package catalog

import (
	"time"

	"github.com/codr1/turnero/internal/schedule"
)

type CourtsPageData struct {
	Courts []schedule.Court
	Error  string
}

type WeekdayOption struct {
	Value int
	Label string
}

type SlotsPageData struct {
	Slots    []schedule.Slot
	Courts   []schedule.Court
	Weekdays []WeekdayOption
	Today    string
	Error    string
}

var weekdayLabels = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

func NewSlotsPageData(slots []schedule.Slot, courts []schedule.Court, today time.Time) SlotsPageData {
	data := SlotsPageData{
		Slots:  slots,
		Courts: courts,
		Today:  schedule.FormatDate(today),
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		data.Weekdays = append(data.Weekdays, WeekdayOption{Value: int(day), Label: weekdayLabels[day]})
	}
	return data
}
