package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_CreateStaff(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()

	body := `{"name":"Ana Lopez","role":"Pharmacist","department":"Pharmacy","schedule":[{"day":"Friday","shift":"evening"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staff", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreateStaff(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m StaffMember
	json.Unmarshal(rec.Body.Bytes(), &m)
	if !strings.HasPrefix(m.ID, "s-") || len(m.Schedule) != 1 {
		t.Errorf("unexpected staff member %+v", m)
	}
}

func TestHandler_Roster(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	h.svc.CreateStaff(nil, nurse())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/staff/roster?day=wed", nil), rec)
	if err := h.Roster(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var roster []RosterEntry
	json.Unmarshal(rec.Body.Bytes(), &roster)
	if len(roster) != 1 || roster[0].Shift != ShiftNight {
		t.Errorf("unexpected roster %+v", roster)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/staff/roster?day=someday", nil), httptest.NewRecorder())
	err := h.Roster(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
