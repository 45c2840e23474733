// internal/api/grid/handlers.go
package grid

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/apiutil"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/schedule"
	reservationstempl "github.com/codr1/turnero/internal/templates/components/reservations"
)

var (
	service     *schedule.Service
	serviceOnce sync.Once
)

const gridQueryTimeout = 5 * time.Second

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

// GET /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	data := reservationstempl.DatePickerData{
		Today: schedule.FormatDate(svc.Today()),
		Error: r.URL.Query().Get("error"),
	}
	nav.RenderPage(w, r, "Reservar turno", false, reservationstempl.DatePicker(data))
}

// GET /turnos?date=YYYY-MM-DD
func HandleDateRedirect(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if _, err := schedule.ParseDate(date); err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape("Elegí una fecha válida"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/turnos/"+date, http.StatusSeeOther)
}

// GET /turnos/{date}
func HandleGridPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	date, err := schedule.ParseDate(r.PathValue("date"))
	if err != nil {
		apiutil.WriteScheduleError(w, r, err, "Failed to load grid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gridQueryTimeout)
	defer cancel()

	grid, err := svc.BuildGrid(ctx, date)
	if err != nil {
		logger.Error().Err(err).Str("date", schedule.FormatDate(date)).Msg("Failed to build grid")
		apiutil.WriteScheduleError(w, r, err, "Failed to load grid")
		return
	}

	data := reservationstempl.NewGridPageData(grid, date, svc.Today())
	nav.RenderPage(w, r, "Turnos "+grid.Date, false, reservationstempl.Grid(data))
}

// GET /api/v1/grid?date=YYYY-MM-DD
func HandleGridJSON(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gridQueryTimeout)
	defer cancel()

	grid, err := svc.BuildGridInput(ctx, r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteScheduleErrorJSON(w, r, err, "Failed to load grid")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, grid); err != nil {
		logger.Error().Err(err).Msg("Failed to write grid response")
	}
}

// GET /api/v1/availability?date=YYYY-MM-DD&court_id=N
func HandleAvailability(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.URL.Query().Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		apiutil.WriteScheduleErrorJSON(w, r, err, "Failed to resolve availability")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gridQueryTimeout)
	defer cancel()

	slots, err := svc.Resolve(ctx, date, courtID)
	if err != nil {
		apiutil.WriteScheduleErrorJSON(w, r, err, "Failed to resolve availability")
		return
	}

	response := struct {
		Date    string          `json:"date"`
		CourtID int64           `json:"courtId"`
		Slots   []schedule.Slot `json:"slots"`
	}{
		Date:    schedule.FormatDate(date),
		CourtID: courtID,
		Slots:   slots,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write availability response")
	}
}
