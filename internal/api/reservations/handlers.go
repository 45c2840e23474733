// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/api/auth"
	"github.com/codr1/turnero/internal/api/authz"
	"github.com/codr1/turnero/internal/api/htmx"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/email"
	"github.com/codr1/turnero/internal/schedule"
	reservationstempl "github.com/codr1/turnero/internal/templates/components/reservations"
)

var (
	service     *schedule.Service
	notifier    *email.Notifier
	serviceOnce sync.Once
)

const reservationQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
// A nil notifier disables reservation emails.
func InitHandlers(svc *schedule.Service, n *email.Notifier) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
		notifier = n
	})
}

func loadService(w http.ResponseWriter, r *http.Request) *schedule.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Schedule service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	return service
}

type bookingPayload struct {
	Date    string `json:"date"`
	CourtID int64  `json:"court_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Notes   string `json:"notes"`
}

func (p bookingPayload) client() schedule.ClientInfo {
	return schedule.ClientInfo{Name: p.Name, Phone: p.Phone, Email: p.Email, Notes: p.Notes}
}

func decodeBookingPayload(r *http.Request) (bookingPayload, error) {
	var payload bookingPayload
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := apiutil.DecodeJSON(r, &payload); err != nil {
			return payload, fmt.Errorf("invalid JSON body: %w", err)
		}
		return payload, nil
	}

	if err := r.ParseForm(); err != nil {
		return payload, fmt.Errorf("invalid form body")
	}
	courtID, err := apiutil.ParsePositiveInt64Field(r.FormValue("court_id"), "court_id")
	if err != nil {
		return payload, err
	}
	payload = bookingPayload{
		Date:    r.FormValue("date"),
		CourtID: courtID,
		Start:   r.FormValue("start"),
		End:     r.FormValue("end"),
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Email:   r.FormValue("email"),
		Notes:   r.FormValue("notes"),
	}
	return payload, nil
}

// GET /reservas/confirmar?date=...&court_id=...&start=...&end=...
func HandleConfirmForm(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	query := r.URL.Query()
	courtID, err := apiutil.ParsePositiveInt64Field(query.Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteHTMLFeedback(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := schedule.ParseDate(query.Get("date"))
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load booking form")
		return
	}
	start, err := schedule.ParseClock(query.Get("start"))
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load booking form")
		return
	}
	end, err := schedule.ParseClock(query.Get("end"))
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load booking form")
		return
	}
	if date.Before(svc.Today()) {
		http.Redirect(w, r, "/turnos/"+schedule.FormatDate(date), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	court, err := svc.GetCourt(ctx, courtID)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load booking form")
		return
	}

	data := reservationstempl.ConfirmFormData{
		Date:      schedule.FormatDate(date),
		CourtID:   court.ID,
		CourtName: court.Name,
		Start:     start,
		End:       end,
	}
	if user := authz.UserFromContext(r.Context()); user != nil {
		data.Client.Name = user.DisplayName
		data.Client.Email = user.Email
	}
	nav.RenderPage(w, r, "Confirmar reserva", false, reservationstempl.ConfirmForm(data))
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	jsonRequest := apiutil.IsJSONRequest(r)

	payload, err := decodeBookingPayload(r)
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	created, err := svc.Book(ctx, schedule.BookingRequest{
		Date:      payload.Date,
		CourtID:   payload.CourtID,
		Start:     payload.Start,
		End:       payload.End,
		Client:    payload.client(),
		Principal: auth.PrincipalFromRequest(r),
	})
	if err != nil {
		logEvent := logger.Info()
		if apiutil.ScheduleErrorStatus(err) == http.StatusInternalServerError {
			logEvent = logger.Error()
		}
		logEvent.Err(err).
			Int64("court_id", payload.CourtID).
			Str("date", payload.Date).
			Str("start", payload.Start).
			Msg("Booking rejected")

		if jsonRequest {
			apiutil.WriteScheduleErrorJSON(w, r, err, "Failed to create reservation")
			return
		}
		renderConfirmError(w, r, payload, err)
		return
	}

	logger.Info().
		Int64("reservation_id", created.ID).
		Int64("court_id", created.CourtID).
		Str("date", created.Date).
		Str("start", created.Start).
		Msg("Reservation created")
	notifier.ReservationConfirmed(r.Context(), created)

	if jsonRequest {
		if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
			logger.Error().Err(err).Int64("reservation_id", created.ID).Msg("Failed to write reservation response")
		}
		return
	}
	nav.RenderPageStatus(w, r, http.StatusCreated, "Reserva confirmada", false, reservationstempl.BookingSuccess(reservationstempl.BookingSuccessData{
		Reservation: created,
		GridURL:     "/turnos/" + created.Date,
	}))
}

// renderConfirmError shows the booking form again with the reason it failed.
func renderConfirmError(w http.ResponseWriter, r *http.Request, payload bookingPayload, err error) {
	status := apiutil.ScheduleErrorStatus(err)
	data := reservationstempl.ConfirmFormData{
		Date:    payload.Date,
		CourtID: payload.CourtID,
		Start:   payload.Start,
		End:     payload.End,
		Client:  payload.client(),
		Error:   bookingErrorMessage(err),
	}
	if status != http.StatusInternalServerError {
		if court, courtErr := service.GetCourt(r.Context(), payload.CourtID); courtErr == nil {
			data.CourtName = court.Name
		}
	}
	nav.RenderPageStatus(w, r, status, "Confirmar reserva", false, reservationstempl.ConfirmForm(data))
}

func bookingErrorMessage(err error) string {
	switch schedule.KindOf(err) {
	case schedule.KindConflict:
		return "Ese turno ya fue reservado. Elegí otro horario."
	case schedule.KindNotFound:
		return "Ese turno no está disponible para la fecha elegida."
	case schedule.KindValidation:
		return "Revisá los datos: " + err.Error()
	default:
		return "No pudimos registrar la reserva. Intentá de nuevo."
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	reservationID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	principal := auth.PrincipalFromRequest(r)
	cancelled, err := svc.CancelReservation(ctx, reservationID, principal)
	if err != nil {
		logger.Info().Err(err).Int64("reservation_id", reservationID).Int64("user_id", principal.ID).Msg("Cancellation rejected")
		apiutil.WriteScheduleError(w, r, err, "Failed to cancel reservation")
		return
	}

	logger.Info().
		Int64("reservation_id", cancelled.ID).
		Int64("user_id", principal.ID).
		Bool("admin", principal.IsAdmin).
		Msg("Reservation cancelled")
	notifier.ReservationCancelled(r.Context(), cancelled)

	switch {
	case apiutil.IsJSONRequest(r):
		if err := apiutil.WriteJSON(w, http.StatusOK, cancelled); err != nil {
			logger.Error().Err(err).Int64("reservation_id", cancelled.ID).Msg("Failed to write cancellation response")
		}
	case htmx.IsRequest(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, `<tr id="reservation-%d" class="cancelled"><td colspan="11">Reserva #%d cancelada (%s %s, %s)</td></tr>`,
			cancelled.ID, cancelled.ID, html.EscapeString(cancelled.Date), html.EscapeString(cancelled.Start), html.EscapeString(cancelled.CourtName))
	default:
		http.Redirect(w, r, "/mis-reservas", http.StatusSeeOther)
	}
}

// GET /mis-reservas
func HandleMyReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	user, err := authz.RequireUser(r.Context())
	if err != nil {
		if apiutil.IsJSONRequest(r) {
			apiutil.WriteJSONError(w, r, http.StatusUnauthorized, "sign in required")
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	list, err := svc.ListUserReservations(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list user reservations")
		apiutil.WriteScheduleError(w, r, err, "Failed to load reservations")
		return
	}

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, list); err != nil {
			logger.Error().Err(err).Msg("Failed to write reservations response")
		}
		return
	}
	nav.RenderPage(w, r, "Mis reservas", false, reservationstempl.MyReservations(reservationstempl.NewMyReservationsData(list, svc.Today())))
}
