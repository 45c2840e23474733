// internal/api/operatinghours/handlers.go
package operatinghours

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/templates/components/catalog"
)

var (
	service     *schedule.Service
	serviceOnce sync.Once
)

const hoursQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *schedule.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

func loadService(w http.ResponseWriter, r *http.Request) *schedule.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Schedule service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	return service
}

func isJSONBody(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// GET /admin/horarios
func HandleHoursPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	slots, err := svc.ListTimeSlots(ctx)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load time slots")
		return
	}
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, slots); err != nil {
			logger.Error().Err(err).Msg("Failed to write time slots response")
		}
		return
	}

	courts, err := svc.ListCourts(ctx)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load courts")
		return
	}
	nav.RenderPage(w, r, "Horarios", true, catalog.Slots(catalog.NewSlotsPageData(slots, courts, svc.Today())))
}

// POST /api/v1/admin/time-slots
func HandleCreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var payload struct {
		Start     string `json:"start"`
		End       string `json:"end"`
		SortOrder int64  `json:"sort_order"`
	}
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
		payload.Start = r.FormValue("start")
		payload.End = r.FormValue("end")
		if raw := r.FormValue("sort_order"); strings.TrimSpace(raw) != "" {
			order, err := apiutil.ParseNonNegativeInt64Field(raw, "sort_order")
			if err != nil {
				apiutil.WriteBadRequest(w, r, err.Error())
				return
			}
			payload.SortOrder = order
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	slot, err := svc.CreateTimeSlot(ctx, payload.Start, payload.End, payload.SortOrder)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to create time slot")
		return
	}
	logger.Info().Int64("time_slot_id", slot.ID).Str("start", slot.Start).Str("end", slot.End).Msg("Time slot created")

	writeSlot(w, r, http.StatusCreated, slot)
}

// POST /api/v1/admin/time-slots/{id}/toggle
func HandleToggleTimeSlot(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	slotID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	slot, err := svc.ToggleTimeSlot(ctx, slotID)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to update time slot")
		return
	}
	logger.Info().Int64("time_slot_id", slot.ID).Bool("active", slot.IsActive).Msg("Time slot toggled")

	writeSlot(w, r, http.StatusOK, slot)
}

// PUT /api/v1/admin/time-slots/{id}/order
func HandleUpdateTimeSlotOrder(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	slotID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	var order int64
	if isJSONBody(r) {
		var payload struct {
			SortOrder *int64 `json:"sort_order"`
		}
		if err := apiutil.DecodeJSON(r, &payload); err != nil || payload.SortOrder == nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "sort_order is required")
			return
		}
		order = *payload.SortOrder
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		order, err = apiutil.ParseNonNegativeInt64Field(r.FormValue("sort_order"), "sort_order")
		if err != nil {
			apiutil.WriteBadRequest(w, r, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), hoursQueryTimeout)
	defer cancel()

	slot, err := svc.UpdateTimeSlotOrder(ctx, slotID, order)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to update time slot")
		return
	}
	logger.Info().Int64("time_slot_id", slot.ID).Int64("sort_order", slot.SortOrder).Msg("Time slot reordered")

	writeSlot(w, r, http.StatusOK, slot)
}

func writeSlot(w http.ResponseWriter, r *http.Request, status int, slot schedule.Slot) {
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, status, slot); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("time_slot_id", slot.ID).Msg("Failed to write time slot response")
		}
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, catalog.SlotRow(slot), nil, "Failed to render time slot row", "Failed to render time slot")
}
