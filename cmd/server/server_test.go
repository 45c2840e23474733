package main

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/codr1/turnero/internal/api/auth"
	"github.com/codr1/turnero/internal/api/authz"
	"github.com/codr1/turnero/internal/api/courts"
	"github.com/codr1/turnero/internal/api/grid"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/api/operatinghours"
	"github.com/codr1/turnero/internal/api/reservations"
	"github.com/codr1/turnero/internal/config"
	"github.com/codr1/turnero/internal/email"
	"github.com/codr1/turnero/internal/ratelimit"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/testutil"
	"github.com/codr1/turnero/internal/testutil/schedtest"
)

const testConfigYAML = `app:
  name: "Turnero"
  environment: "development"
  port: 8080
database:
  driver: "sqlite"
  filename: "data/test.db"
booking:
  rate_per_minute: 1
  rate_burst: 2
`

// The handler packages initialize once per process, so every route check
// shares one server and database.
func TestRoutes(t *testing.T) {
	env := schedtest.New(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	testutil.CreateTimeSlot(t, env.DB, "12:00", "13:30", 1, true)
	testutil.CreateTimeSlot(t, env.DB, "13:30", "15:00", 2, true)
	adminUser := testutil.CreateUser(t, env.DB, "admin@example.com", true)

	cfg, err := config.Parse([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cfg.App.SecretKey = "test-secret"
	cfg.App.StaticDir = t.TempDir()

	auth.InitHandlers(env.DB.Queries, cfg)
	nav.InitHandlers(cfg.App.SiteHeader)
	grid.InitHandlers(env.Service)
	reservations.InitHandlers(env.Service, email.NewNotifier(nil, cfg.App.Name))
	courts.InitHandlers(env.Service)
	operatinghours.InitHandlers(env.Service)

	limiter := ratelimit.New(&ratelimit.Config{
		PerMinute: cfg.Booking.RatePerMinute,
		Burst:     cfg.Booking.RateBurst,
	})
	t.Cleanup(limiter.Close)

	handler := newServer(cfg, limiter).Handler
	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	adminCookie := func(t *testing.T) *http.Cookie {
		t.Helper()
		rec := httptest.NewRecorder()
		if err := auth.SetAuthCookie(rec, &authz.AuthUser{ID: adminUser.ID, Email: adminUser.Email, IsAdmin: true}); err != nil {
			t.Fatalf("SetAuthCookie() error = %v", err)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) == 0 {
			t.Fatalf("no auth cookie set")
		}
		return cookies[0]
	}

	t.Run("health", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
			t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("missing X-Request-ID")
		}
	})

	t.Run("unknown_path", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/nada", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("grid_page", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/turnos/2025-06-01", nil))
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Cancha 1") {
			t.Fatalf("grid = %d\n%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("availability_json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-01&court_id="+strconv.FormatInt(court.ID, 10), nil)
		req.Header.Set("Accept", "application/json")
		rec := serve(req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
		}
		var payload struct {
			Slots []schedule.Slot `json:"slots"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(payload.Slots) != 2 {
			t.Fatalf("slots = %+v", payload.Slots)
		}
	})

	t.Run("admin_requires_session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations", nil)
		req.Header.Set("Accept", "application/json")
		if rec := serve(req); rec.Code != http.StatusUnauthorized {
			t.Fatalf("anonymous status = %d", rec.Code)
		}

		if rec := serve(httptest.NewRequest(http.MethodGet, "/admin/canchas", nil)); rec.Code != http.StatusFound {
			t.Fatalf("anonymous page status = %d", rec.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?date=2025-06-01", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(adminCookie(t))
		if rec := serve(req); rec.Code != http.StatusOK {
			t.Fatalf("admin status = %d body = %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("booking_conflict_and_rate_limit", func(t *testing.T) {
		body := `{"date":"2025-06-01","court_id":` + strconv.FormatInt(court.ID, 10) + `,"start":"12:00","end":"13:30","name":"Ana"}`
		post := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
			return serve(req)
		}

		if rec := post(); rec.Code != http.StatusCreated {
			t.Fatalf("first booking = %d body = %s", rec.Code, rec.Body.String())
		}
		if rec := post(); rec.Code != http.StatusConflict {
			t.Fatalf("second booking = %d body = %s", rec.Code, rec.Body.String())
		}
		rec := post()
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("third booking = %d, want 429", rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Fatalf("missing Retry-After")
		}
	})

	t.Run("method_not_allowed", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
