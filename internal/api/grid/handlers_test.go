package grid

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/testutil"
	"github.com/codr1/turnero/internal/testutil/schedtest"
)

type gridFixture struct {
	env     schedtest.Env
	courtID int64
}

func setupGridTest(t *testing.T) gridFixture {
	t.Helper()

	env := schedtest.New(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	testutil.CreateTimeSlot(t, env.DB, "12:00", "13:30", 1, true)
	testutil.CreateTimeSlot(t, env.DB, "13:30", "15:00", 2, true)

	service = nil
	serviceOnce = sync.Once{}
	InitHandlers(env.Service)
	t.Cleanup(func() {
		service = nil
		serviceOnce = sync.Once{}
	})

	return gridFixture{env: env, courtID: court.ID}
}

func TestHandleHome(t *testing.T) {
	setupGridTest(t)

	rec := httptest.NewRecorder()
	HandleHome(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="2025-05-30"`) {
		t.Fatalf("date picker not defaulted to today:\n%s", rec.Body.String())
	}
}

func TestHandleDateRedirect(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		location string
	}{
		{name: "valid", query: "?date=2025-06-01", location: "/turnos/2025-06-01"},
		{name: "invalid", query: "?date=junio", location: "/?error="},
		{name: "missing", query: "", location: "/?error="},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleDateRedirect(rec, httptest.NewRequest(http.MethodGet, "/turnos"+test.query, nil))
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d", rec.Code)
			}
			if !strings.HasPrefix(rec.Header().Get("Location"), test.location) {
				t.Fatalf("location = %q, want prefix %q", rec.Header().Get("Location"), test.location)
			}
		})
	}
}

func TestHandleGridPage(t *testing.T) {
	setupGridTest(t)

	req := httptest.NewRequest(http.MethodGet, "/turnos/2025-06-01", nil)
	req.SetPathValue("date", "2025-06-01")
	rec := httptest.NewRecorder()
	HandleGridPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Cancha 1", "12:00 - 13:30", "/reservas/confirmar?", "Domingo"} {
		if !strings.Contains(body, want) {
			t.Fatalf("grid page missing %q:\n%s", want, body)
		}
	}
}

func TestHandleGridPagePastDateHasNoBookingLinks(t *testing.T) {
	setupGridTest(t)

	req := httptest.NewRequest(http.MethodGet, "/turnos/2025-05-29", nil)
	req.SetPathValue("date", "2025-05-29")
	rec := httptest.NewRecorder()
	HandleGridPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "/reservas/confirmar?") {
		t.Fatal("past grid should not link to the booking form")
	}
}

func TestHandleGridPageMalformedDate(t *testing.T) {
	setupGridTest(t)

	req := httptest.NewRequest(http.MethodGet, "/turnos/2025-02-30", nil)
	req.SetPathValue("date", "2025-02-30")
	rec := httptest.NewRecorder()
	HandleGridPage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGridJSON(t *testing.T) {
	f := setupGridTest(t)

	_, err := f.env.Service.Book(context.Background(), schedule.BookingRequest{
		Date:    "2025-06-01",
		CourtID: f.courtID,
		Start:   "12:00",
		End:     "13:30",
		Client:  schedule.ClientInfo{Name: "Ana"},
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	rec := httptest.NewRecorder()
	HandleGridJSON(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grid?date=2025-06-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var grid schedule.Grid
	if err := json.Unmarshal(rec.Body.Bytes(), &grid); err != nil {
		t.Fatalf("decode grid: %v", err)
	}
	if grid.Date != "2025-06-01" || len(grid.Courts) != 1 {
		t.Fatalf("grid = %+v", grid)
	}
	slots := grid.Courts[0].Slots
	if len(slots) != 2 || !slots[0].Occupied || slots[1].Occupied {
		t.Fatalf("slots = %+v", slots)
	}

	rec = httptest.NewRecorder()
	HandleGridJSON(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grid?date=tomorrow", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("bad date content type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestHandleAvailability(t *testing.T) {
	f := setupGridTest(t)

	tests := []struct {
		name   string
		query  string
		status int
		slots  int
	}{
		{name: "ok", query: "?date=2025-06-01&court_id=" + strconv.FormatInt(f.courtID, 10), status: http.StatusOK, slots: 2},
		{name: "missing_court", query: "?date=2025-06-01", status: http.StatusBadRequest},
		{name: "bad_date", query: "?date=01/06/2025&court_id=" + strconv.FormatInt(f.courtID, 10), status: http.StatusBadRequest},
		{name: "unknown_court", query: "?date=2025-06-01&court_id=999", status: http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleAvailability(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability"+test.query, nil))
			if rec.Code != test.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, test.status, rec.Body.String())
			}
			if test.status != http.StatusOK {
				return
			}
			var payload struct {
				Date  string          `json:"date"`
				Slots []schedule.Slot `json:"slots"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Date != "2025-06-01" || len(payload.Slots) != test.slots {
				t.Fatalf("payload = %+v", payload)
			}
		})
	}
}
