package diagnostics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_RecordResultAndListResults(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	l, _ := h.svc.CreateLabTest(nil, validLabTest())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"result":"Normal"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(l.ID)
	if err := h.RecordResult(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/lab-results?patientId=p1", nil), rec)
	if err := h.ListResults(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []LabTest `json:"data"`
		Total int       `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Data[0].Result != "Normal" {
		t.Errorf("unexpected results %+v", resp)
	}
}

func TestHandler_CreateLabTest_Invalid(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()

	body := `{"patientId":"p1","testName":"Lipid Panel","category":"Chemistry","orderedById":"d1","status":"completed"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := h.CreateLabTest(e.NewContext(req, httptest.NewRecorder()))
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestHandler_DeleteLabTest(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	l, _ := h.svc.CreateLabTest(nil, validLabTest())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(l.ID)
	if err := h.DeleteLabTest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
