package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/turnero/internal/schedule"
)

type Message struct {
	Subject string
	Body    string
}

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// FormatDate renders a YYYY-MM-DD date as "domingo 1 de junio de 2025".
// Unparseable input is returned unchanged.
func FormatDate(value string) string {
	date, err := time.Parse(schedule.DateLayout, value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%s %d de %s de %d", weekdays[date.Weekday()], date.Day(), months[date.Month()-1], date.Year())
}

func BuildConfirmationEmail(siteName string, r schedule.Reservation) Message {
	return buildMessage(siteName, "Reserva confirmada", "Tu reserva quedó confirmada.", r)
}

func BuildCancellationEmail(siteName string, r schedule.Reservation) Message {
	return buildMessage(siteName, "Reserva cancelada", "Tu reserva fue cancelada.", r)
}

func BuildReminderEmail(siteName string, r schedule.Reservation) Message {
	return buildMessage(siteName, "Recordatorio de reserva", "Te recordamos tu reserva de mañana.", r)
}

func buildMessage(siteName, subject, intro string, r schedule.Reservation) Message {
	siteName = strings.TrimSpace(siteName)
	if siteName != "" {
		subject = fmt.Sprintf("%s - %s", subject, siteName)
	}
	court := strings.TrimSpace(r.CourtName)
	if court == "" {
		court = fmt.Sprintf("Cancha %d", r.CourtID)
	}

	lines := []string{}
	if name := strings.TrimSpace(r.ClientName); name != "" {
		lines = append(lines, fmt.Sprintf("Hola %s,", name), "")
	}
	lines = append(lines,
		intro,
		"",
		fmt.Sprintf("Fecha: %s", FormatDate(r.Date)),
		fmt.Sprintf("Horario: %s a %s", r.Start, r.End),
		fmt.Sprintf("Cancha: %s", court),
		fmt.Sprintf("Reserva: #%d", r.ID),
	)

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}
