package operatinghours

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/testutil"
	"github.com/codr1/turnero/internal/testutil/schedtest"
)

func setupHoursTest(t *testing.T) schedtest.Env {
	t.Helper()

	env := schedtest.New(t)
	service = nil
	serviceOnce = sync.Once{}
	InitHandlers(env.Service)
	t.Cleanup(func() {
		service = nil
		serviceOnce = sync.Once{}
	})
	return env
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestHandleHoursPage(t *testing.T) {
	env := setupHoursTest(t)
	testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	testutil.CreateTimeSlot(t, env.DB, "08:00", "09:30", 1, true)
	testutil.CreateTimeSlot(t, env.DB, "09:30", "11:00", 2, false)

	rec := httptest.NewRecorder()
	HandleHoursPage(rec, httptest.NewRequest(http.MethodGet, "/admin/horarios", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"08:00", "09:30", "Cancha 1", `hx-post="/admin/horarios/dia"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/horarios", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	HandleHoursPage(rec, req)
	var slots []schedule.Slot
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(slots) != 2 || slots[0].Start != "08:00" {
		t.Fatalf("slots = %+v", slots)
	}
}

func TestHandleCreateTimeSlot(t *testing.T) {
	setupHoursTest(t)

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name:       "json",
			req:        jsonRequest(http.MethodPost, "/api/v1/admin/time-slots", `{"start":"08:00","end":"09:30","sort_order":1}`),
			wantStatus: http.StatusCreated,
			wantBody:   `"start":"08:00"`,
		},
		{
			name:       "form",
			req:        formRequest(http.MethodPost, "/api/v1/admin/time-slots", url.Values{"start": {"09:30"}, "end": {"11:00"}, "sort_order": {"2"}}),
			wantStatus: http.StatusOK,
			wantBody:   "09:30",
		},
		{
			name:       "end_before_start",
			req:        jsonRequest(http.MethodPost, "/api/v1/admin/time-slots", `{"start":"12:00","end":"11:00"}`),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad_sort_order",
			req:        formRequest(http.MethodPost, "/api/v1/admin/time-slots", url.Values{"start": {"12:00"}, "end": {"13:00"}, "sort_order": {"-1"}}),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleCreateTimeSlot(rec, test.req)
			if rec.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d body = %s", rec.Code, test.wantStatus, rec.Body.String())
			}
			if test.wantBody != "" && !strings.Contains(rec.Body.String(), test.wantBody) {
				t.Fatalf("body = %s, want containing %q", rec.Body.String(), test.wantBody)
			}
		})
	}
}

func TestHandleToggleAndReorderTimeSlot(t *testing.T) {
	env := setupHoursTest(t)
	slot := testutil.CreateTimeSlot(t, env.DB, "08:00", "09:30", 1, true)

	req := jsonRequest(http.MethodPost, "/api/v1/admin/time-slots/"+idString(slot.ID)+"/toggle", "")
	req.SetPathValue("id", idString(slot.ID))
	rec := httptest.NewRecorder()
	HandleToggleTimeSlot(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d body = %s", rec.Code, rec.Body.String())
	}
	var toggled schedule.Slot
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("slot still active after toggle")
	}

	req = formRequest(http.MethodPut, "/api/v1/admin/time-slots/"+idString(slot.ID)+"/order", url.Values{"sort_order": {"7"}})
	req.SetPathValue("id", idString(slot.ID))
	rec = httptest.NewRecorder()
	HandleUpdateTimeSlotOrder(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("order status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `id="slot-`+idString(slot.ID)+`"`) {
		t.Fatalf("order response is not a slot row: %s", rec.Body.String())
	}

	req = jsonRequest(http.MethodPost, "/api/v1/admin/time-slots/999/toggle", "")
	req.SetPathValue("id", "999")
	rec = httptest.NewRecorder()
	HandleToggleTimeSlot(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing slot status = %d", rec.Code)
	}
}

func TestHandleSetDayOverride(t *testing.T) {
	env := setupHoursTest(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	morning := testutil.CreateTimeSlot(t, env.DB, "08:00", "09:30", 1, true)
	testutil.CreateTimeSlot(t, env.DB, "09:30", "11:00", 2, true)

	body := `{"is_closed":false,"note":"torneo","slot_ids":[` + idString(morning.ID) + `]}`
	req := jsonRequest(http.MethodPut, "/api/v1/admin/courts/"+idString(court.ID)+"/days/2025-06-02", body)
	req.SetPathValue("id", idString(court.ID))
	req.SetPathValue("date", "2025-06-02")
	rec := httptest.NewRecorder()
	HandleSetDayOverride(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var override schedule.DayOverride
	if err := json.Unmarshal(rec.Body.Bytes(), &override); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if override.Date != "2025-06-02" || len(override.SlotIDs) != 1 || override.Note != "torneo" {
		t.Fatalf("override = %+v", override)
	}

	slots, err := env.Service.ResolveInput(context.Background(), "2025-06-02", court.ID)
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if len(slots) != 1 || slots[0].ID != morning.ID {
		t.Fatalf("resolved slots = %+v", slots)
	}

	req = jsonRequest(http.MethodDelete, "/api/v1/admin/courts/"+idString(court.ID)+"/days/2025-06-02", "")
	req.SetPathValue("id", idString(court.ID))
	req.SetPathValue("date", "2025-06-02")
	rec = httptest.NewRecorder()
	HandleDeleteDayOverride(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	HandleDeleteDayOverride(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestHandleSetDayOverrideValidation(t *testing.T) {
	env := setupHoursTest(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)

	tests := []struct {
		name       string
		courtID    string
		date       string
		body       string
		wantStatus int
	}{
		{name: "bad_date", courtID: idString(court.ID), date: "02/06/2025", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "unknown_court", courtID: "999", date: "2025-06-02", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "unknown_slot", courtID: idString(court.ID), date: "2025-06-02", body: `{"slot_ids":[999]}`, wantStatus: http.StatusNotFound},
		{name: "bad_json", courtID: idString(court.ID), date: "2025-06-02", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := jsonRequest(http.MethodPut, "/api/v1/admin/courts/x/days/y", test.body)
			req.SetPathValue("id", test.courtID)
			req.SetPathValue("date", test.date)
			rec := httptest.NewRecorder()
			HandleSetDayOverride(rec, req)
			if rec.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d body = %s", rec.Code, test.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleDayOverrideForm(t *testing.T) {
	env := setupHoursTest(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	testutil.CreateTimeSlot(t, env.DB, "08:00", "09:30", 1, true)

	rec := httptest.NewRecorder()
	HandleDayOverrideForm(rec, formRequest(http.MethodPost, "/admin/horarios/dia", url.Values{
		"court_id":  {idString(court.ID)},
		"date":      {"2025-06-02"},
		"is_closed": {"on"},
		"note":      {"lluvia"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Cancha cerrada el 2025-06-02") {
		t.Fatalf("feedback = %s", rec.Body.String())
	}

	slots, err := env.Service.ResolveInput(context.Background(), "2025-06-02", court.ID)
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("closed day resolved slots = %+v", slots)
	}

	rec = httptest.NewRecorder()
	HandleDayOverrideForm(rec, formRequest(http.MethodPost, "/admin/horarios/dia", url.Values{
		"court_id": {idString(court.ID)},
		"date":     {"2025-06-02"},
		"action":   {"delete"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	HandleDayOverrideForm(rec, formRequest(http.MethodPost, "/admin/horarios/dia", url.Values{
		"court_id": {"abc"},
		"date":     {"2025-06-02"},
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad court status = %d", rec.Code)
	}
}

func TestHandleWeekdayOverride(t *testing.T) {
	env := setupHoursTest(t)
	court := testutil.CreateCourt(t, env.DB, "Cancha 1", true)
	testutil.CreateTimeSlot(t, env.DB, "08:00", "09:30", 1, true)
	late := testutil.CreateTimeSlot(t, env.DB, "21:00", "22:30", 2, true)

	// 2025-06-02 is a Monday.
	req := jsonRequest(http.MethodPut, "/api/v1/admin/courts/"+idString(court.ID)+"/weekdays/1", `{"slot_ids":[`+idString(late.ID)+`]}`)
	req.SetPathValue("id", idString(court.ID))
	req.SetPathValue("day_of_week", "1")
	rec := httptest.NewRecorder()
	HandleSetWeekdayOverride(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var override schedule.WeekdayOverride
	if err := json.Unmarshal(rec.Body.Bytes(), &override); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !override.IsActive || len(override.SlotIDs) != 1 {
		t.Fatalf("override = %+v", override)
	}

	slots, err := env.Service.ResolveInput(context.Background(), "2025-06-02", court.ID)
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if len(slots) != 1 || slots[0].ID != late.ID {
		t.Fatalf("resolved slots = %+v", slots)
	}

	rec = httptest.NewRecorder()
	HandleWeekdayOverrideForm(rec, formRequest(http.MethodPost, "/admin/horarios/semana", url.Values{
		"court_id":    {idString(court.ID)},
		"day_of_week": {"1"},
		"action":      {"delete"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lunes") {
		t.Fatalf("feedback = %s", rec.Body.String())
	}

	req = jsonRequest(http.MethodPut, "/api/v1/admin/courts/"+idString(court.ID)+"/weekdays/7", `{}`)
	req.SetPathValue("id", idString(court.ID))
	req.SetPathValue("day_of_week", "7")
	rec = httptest.NewRecorder()
	HandleSetWeekdayOverride(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad weekday status = %d", rec.Code)
	}
}
