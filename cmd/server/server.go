// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api"
	"github.com/codr1/turnero/internal/api/auth"
	"github.com/codr1/turnero/internal/api/courts"
	"github.com/codr1/turnero/internal/api/grid"
	"github.com/codr1/turnero/internal/api/operatinghours"
	"github.com/codr1/turnero/internal/api/reservations"
	"github.com/codr1/turnero/internal/config"
	"github.com/codr1/turnero/internal/ratelimit"
)

func newServer(cfg *config.Config, limiter *ratelimit.Limiter) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain. The last entry runs first.
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		auth.WithClerkSession,
		api.WithContentType,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	// Register routes
	registerRoutes(router, cfg.App.StaticDir, limiter)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string, limiter *ratelimit.Limiter) {
	admin := func(h http.HandlerFunc) http.Handler {
		return api.WithAdminAuth(h)
	}

	// Date picker and grid
	mux.HandleFunc("GET /{$}", grid.HandleHome)
	mux.HandleFunc("GET /turnos", grid.HandleDateRedirect)
	mux.HandleFunc("GET /turnos/{date}", grid.HandleGridPage)
	mux.HandleFunc("GET /api/v1/grid", grid.HandleGridJSON)
	mux.HandleFunc("GET /api/v1/availability", grid.HandleAvailability)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Booking
	mux.HandleFunc("GET /reservas/confirmar", reservations.HandleConfirmForm)
	mux.Handle("POST /api/v1/reservations", limiter.Middleware(http.HandlerFunc(reservations.HandleReservationCreate)))
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel)
	mux.HandleFunc("GET /mis-reservas", reservations.HandleMyReservations)

	// Auth
	mux.HandleFunc("GET /auth/clerk/callback", auth.HandleClerkCallback)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	// Admin reservations
	mux.Handle("GET /admin/reservas", admin(reservations.HandleAdminReservations))
	mux.Handle("GET /api/v1/admin/reservations", admin(reservations.HandleAdminReservations))
	mux.Handle("PUT /api/v1/admin/reservations/{id}", admin(reservations.HandleAdminReservationUpdate))
	mux.Handle("POST /api/v1/admin/reservations/mark-admin", admin(reservations.HandleMarkCreatedByAdmin))

	// Admin catalog
	mux.Handle("GET /admin/canchas", admin(courts.HandleCourtsPage))
	mux.Handle("POST /api/v1/admin/courts", admin(courts.HandleCreateCourt))
	mux.Handle("POST /api/v1/admin/courts/{id}/toggle", admin(courts.HandleToggleCourt))
	mux.Handle("GET /admin/horarios", admin(operatinghours.HandleHoursPage))
	mux.Handle("POST /api/v1/admin/time-slots", admin(operatinghours.HandleCreateTimeSlot))
	mux.Handle("POST /api/v1/admin/time-slots/{id}/toggle", admin(operatinghours.HandleToggleTimeSlot))
	mux.Handle("PUT /api/v1/admin/time-slots/{id}/order", admin(operatinghours.HandleUpdateTimeSlotOrder))
	mux.Handle("PUT /api/v1/admin/courts/{id}/days/{date}", admin(operatinghours.HandleSetDayOverride))
	mux.Handle("DELETE /api/v1/admin/courts/{id}/days/{date}", admin(operatinghours.HandleDeleteDayOverride))
	mux.Handle("PUT /api/v1/admin/courts/{id}/weekdays/{day_of_week}", admin(operatinghours.HandleSetWeekdayOverride))
	mux.Handle("DELETE /api/v1/admin/courts/{id}/weekdays/{day_of_week}", admin(operatinghours.HandleDeleteWeekdayOverride))
	mux.Handle("POST /admin/horarios/dia", admin(operatinghours.HandleDayOverrideForm))
	mux.Handle("POST /admin/horarios/semana", admin(operatinghours.HandleWeekdayOverrideForm))

	fs := http.FileServer(http.Dir(staticDir))

	// Add logging middleware for static files
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
