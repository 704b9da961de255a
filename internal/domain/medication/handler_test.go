package medication

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func TestHandler_CreateMedication(t *testing.T) {
	h, e := newTestHandler()

	body := `{"patientId":"p1","name":"Amoxicillin","dosage":"500mg","frequency":"three times daily","startDate":"2024-05-01","prescribedById":"d2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medications", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateMedication(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var m Medication
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.Status != StatusActive || !strings.HasPrefix(m.ID, "m-") {
		t.Errorf("unexpected medication %+v", m)
	}
}

func TestHandler_CreateMedication_UnknownField(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","colour":"red"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := h.CreateMedication(e.NewContext(req, httptest.NewRecorder()))
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Discontinue(t *testing.T) {
	h, e := newTestHandler()
	m, _ := h.svc.CreateMedication(nil, validMedication())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID)
	if err := h.Discontinue(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Medication
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != StatusDiscontinued {
		t.Errorf("expected discontinued, got %s", got.Status)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(m.ID)
	err := h.Discontinue(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestHandler_GetMedication_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("m-missing")
	err := h.GetMedication(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
