package operatinghours

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/schedule"
)

var weekdayNames = [...]string{"domingos", "lunes", "martes", "miércoles", "jueves", "viernes", "sábados"}

type dayOverridePayload struct {
	IsClosed bool    `json:"is_closed"`
	Note     string  `json:"note"`
	SlotIDs  []int64 `json:"slot_ids"`
}

type weekdayOverridePayload struct {
	// Nil means active.
	IsActive *bool   `json:"is_active"`
	SlotIDs  []int64 `json:"slot_ids"`
}

// PUT /api/v1/admin/courts/{id}/days/{date}
func HandleSetDayOverride(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	var payload dayOverridePayload
	if isJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &payload); err != nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		payload, err = dayPayloadFromForm(r)
		if err != nil {
			apiutil.WriteBadRequest(w, r, err.Error())
			return
		}
	}

	setDayOverride(w, r, svc, schedule.DayOverrideInput{
		CourtID:  courtID,
		Date:     r.PathValue("date"),
		IsClosed: payload.IsClosed,
		Note:     payload.Note,
		SlotIDs:  payload.SlotIDs,
	})
}

// DELETE /api/v1/admin/courts/{id}/days/{date}
func HandleDeleteDayOverride(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	deleteDayOverride(w, r, svc, courtID, r.PathValue("date"))
}

// PUT /api/v1/admin/courts/{id}/weekdays/{day_of_week}
func HandleSetWeekdayOverride(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	weekday, err := apiutil.ParseWeekday(r.PathValue("day_of_week"))
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	var payload weekdayOverridePayload
	if isJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &payload); err != nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		payload, err = weekdayPayloadFromForm(r)
		if err != nil {
			apiutil.WriteBadRequest(w, r, err.Error())
			return
		}
	}

	setWeekdayOverride(w, r, svc, courtID, weekday, payload)
}

// DELETE /api/v1/admin/courts/{id}/weekdays/{day_of_week}
func HandleDeleteWeekdayOverride(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	weekday, err := apiutil.ParseWeekday(r.PathValue("day_of_week"))
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	deleteWeekdayOverride(w, r, svc, courtID, weekday)
}

// POST /admin/horarios/dia
// The admin form posts court, date and action together.
func HandleDayOverrideForm(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteBadRequest(w, r, "invalid form body")
		return
	}
	courtID, err := apiutil.ParsePositiveInt64Field(r.FormValue("court_id"), "court_id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	if r.FormValue("action") == "delete" {
		deleteDayOverride(w, r, svc, courtID, r.FormValue("date"))
		return
	}
	payload, err := dayPayloadFromForm(r)
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	setDayOverride(w, r, svc, schedule.DayOverrideInput{
		CourtID:  courtID,
		Date:     r.FormValue("date"),
		IsClosed: payload.IsClosed,
		Note:     payload.Note,
		SlotIDs:  payload.SlotIDs,
	})
}

// POST /admin/horarios/semana
func HandleWeekdayOverrideForm(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		apiutil.WriteBadRequest(w, r, "invalid form body")
		return
	}
	courtID, err := apiutil.ParsePositiveInt64Field(r.FormValue("court_id"), "court_id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	weekday, err := apiutil.ParseWeekday(r.FormValue("day_of_week"))
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	if r.FormValue("action") == "delete" {
		deleteWeekdayOverride(w, r, svc, courtID, weekday)
		return
	}
	payload, err := weekdayPayloadFromForm(r)
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}
	setWeekdayOverride(w, r, svc, courtID, weekday, payload)
}

func dayPayloadFromForm(r *http.Request) (dayOverridePayload, error) {
	slotIDs, err := apiutil.ParseIDList(r.Form["slot_ids"], "slot_ids")
	if err != nil {
		return dayOverridePayload{}, err
	}
	return dayOverridePayload{
		IsClosed: apiutil.ParseBoolField(r.FormValue("is_closed")),
		Note:     r.FormValue("note"),
		SlotIDs:  slotIDs,
	}, nil
}

// weekdayPayloadFromForm reads an unchecked is_active box as inactive.
func weekdayPayloadFromForm(r *http.Request) (weekdayOverridePayload, error) {
	slotIDs, err := apiutil.ParseIDList(r.Form["slot_ids"], "slot_ids")
	if err != nil {
		return weekdayOverridePayload{}, err
	}
	active := apiutil.ParseBoolField(r.FormValue("is_active"))
	return weekdayOverridePayload{IsActive: &active, SlotIDs: slotIDs}, nil
}

func setDayOverride(w http.ResponseWriter, r *http.Request, svc *schedule.Service, input schedule.DayOverrideInput) {
	logger := log.Ctx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	override, err := svc.SetDayOverride(ctx, input)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to save day override")
		return
	}
	logger.Info().
		Int64("court_id", override.CourtID).
		Str("date", override.Date).
		Bool("closed", override.IsClosed).
		Int("slots", len(override.SlotIDs)).
		Msg("Day override saved")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, override); err != nil {
			logger.Error().Err(err).Msg("Failed to write day override response")
		}
		return
	}
	message := fmt.Sprintf("Excepción guardada para el %s: %d horarios", override.Date, len(override.SlotIDs))
	if override.IsClosed {
		message = fmt.Sprintf("Cancha cerrada el %s", override.Date)
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, message)
}

func deleteDayOverride(w http.ResponseWriter, r *http.Request, svc *schedule.Service, courtID int64, date string) {
	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	if err := svc.DeleteDayOverride(ctx, courtID, date); err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to delete day override")
		return
	}
	log.Ctx(r.Context()).Info().Int64("court_id", courtID).Str("date", date).Msg("Day override deleted")

	if apiutil.IsJSONRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, fmt.Sprintf("Excepción del %s eliminada", date))
}

func setWeekdayOverride(w http.ResponseWriter, r *http.Request, svc *schedule.Service, courtID int64, weekday time.Weekday, payload weekdayOverridePayload) {
	logger := log.Ctx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	override, err := svc.SetWeekdayOverride(ctx, schedule.WeekdayOverrideInput{
		CourtID:  courtID,
		Weekday:  weekday,
		IsActive: active,
		SlotIDs:  payload.SlotIDs,
	})
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to save weekday override")
		return
	}
	logger.Info().
		Int64("court_id", override.CourtID).
		Int("day_of_week", int(override.Weekday)).
		Bool("active", override.IsActive).
		Int("slots", len(override.SlotIDs)).
		Msg("Weekday override saved")

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, override); err != nil {
			logger.Error().Err(err).Msg("Failed to write weekday override response")
		}
		return
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, fmt.Sprintf("Horarios de los %s guardados: %d horarios", weekdayNames[weekday], len(override.SlotIDs)))
}

func deleteWeekdayOverride(w http.ResponseWriter, r *http.Request, svc *schedule.Service, courtID int64, weekday time.Weekday) {
	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	if err := svc.DeleteWeekdayOverride(ctx, courtID, weekday); err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to delete weekday override")
		return
	}
	log.Ctx(r.Context()).Info().Int64("court_id", courtID).Int("day_of_week", int(weekday)).Msg("Weekday override deleted")

	if apiutil.IsJSONRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	apiutil.WriteHTMLFeedback(w, http.StatusOK, fmt.Sprintf("Horarios especiales de los %s eliminados", weekdayNames[weekday]))
}
