package reservations

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/templates/components/dashboard"
)

// GET /admin/reservas?date=...&court_id=...&status=...
// Without a date parameter the list defaults to today.
func HandleAdminReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	query := r.URL.Query()
	filter := schedule.ReservationFilter{
		Date:   strings.TrimSpace(query.Get("date")),
		Status: strings.TrimSpace(query.Get("status")),
	}
	if !query.Has("date") {
		filter.Date = schedule.FormatDate(svc.Today())
	}
	courtID, err := apiutil.ParseOptionalInt64Field(query.Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	filter.CourtID = courtID

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	list, err := svc.ListReservations(ctx, filter)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load reservations")
		return
	}

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, list); err != nil {
			logger.Error().Err(err).Msg("Failed to write reservations response")
		}
		return
	}

	courts, err := svc.ListCourts(ctx)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load courts")
		return
	}
	nav.RenderPage(w, r, "Reservas", true, dashboard.Dashboard(dashboard.NewDashboardData(filter, courts, list)))
}

// PUT /api/v1/admin/reservations/{id}
func HandleAdminReservationUpdate(w http.ResponseWriter, r *http.Request) {
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

	var info schedule.ClientInfo
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := apiutil.DecodeJSON(r, &info); err != nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		info = schedule.ClientInfo{
			Name:  r.FormValue("name"),
			Phone: r.FormValue("phone"),
			Email: r.FormValue("email"),
			Notes: r.FormValue("notes"),
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	updated, err := svc.UpdateReservationDetails(ctx, reservationID, info)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to update reservation")
		return
	}
	logger.Info().Int64("reservation_id", updated.ID).Msg("Reservation details updated")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
			logger.Error().Err(err).Int64("reservation_id", updated.ID).Msg("Failed to write reservation response")
		}
		return
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, fmt.Sprintf("Reserva #%d actualizada", updated.ID))
}

// POST /api/v1/admin/reservations/mark-admin
func HandleMarkCreatedByAdmin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var ids []int64
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			IDs []int64 `json:"ids"`
		}
		if err := apiutil.DecodeJSON(r, &payload); err != nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		ids = payload.IDs
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		parsed, err := apiutil.ParseIDList(r.Form["ids"], "ids")
		if err != nil {
			apiutil.WriteBadRequest(w, r, err.Error())
			return
		}
		ids = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	updated, err := svc.MarkCreatedByAdmin(ctx, ids)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to update reservations")
		return
	}
	logger.Info().Int("requested", len(ids)).Int64("updated", updated).Msg("Reservations marked as created by admin")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"updated": updated}); err != nil {
			logger.Error().Err(err).Msg("Failed to write mark-admin response")
		}
		return
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, fmt.Sprintf("%d reservas marcadas como creadas por admin", updated))
}
