// internal/api/courts/handlers.go
package courts

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

const courtsQueryTimeout = 5 * time.Second

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

// GET /admin/canchas
func HandleCourtsPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	courts, err := svc.ListCourts(ctx)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load courts")
		return
	}

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, courts); err != nil {
			logger.Error().Err(err).Msg("Failed to write courts response")
		}
		return
	}
	nav.RenderPage(w, r, "Canchas", true, catalog.Courts(catalog.CourtsPageData{Courts: courts}))
}

// POST /api/v1/admin/courts
func HandleCreateCourt(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var name string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			Name string `json:"name"`
		}
		if err := apiutil.DecodeJSON(r, &payload); err != nil {
			apiutil.WriteJSONError(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		name = payload.Name
	} else {
		if err := r.ParseForm(); err != nil {
			apiutil.WriteBadRequest(w, r, "invalid form body")
			return
		}
		name = r.FormValue("name")
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.CreateCourt(ctx, name)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to create court")
		return
	}
	logger.Info().Int64("court_id", court.ID).Str("name", court.Name).Msg("Court created")

	writeCourt(w, r, http.StatusCreated, court)
}

// POST /api/v1/admin/courts/{id}/toggle
func HandleToggleCourt(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteBadRequest(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.ToggleCourt(ctx, courtID)
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to update court")
		return
	}
	logger.Info().Int64("court_id", court.ID).Bool("active", court.IsActive).Msg("Court toggled")

	writeCourt(w, r, http.StatusOK, court)
}

// writeCourt answers JSON callers with the court and htmx callers with its row.
func writeCourt(w http.ResponseWriter, r *http.Request, status int, court schedule.Court) {
	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, status, court); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("court_id", court.ID).Msg("Failed to write court response")
		}
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, catalog.CourtRow(court), nil, "Failed to render court row", "Failed to render court")
}
