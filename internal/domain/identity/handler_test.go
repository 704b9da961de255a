package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T (%v)", err, err)
	}
	if httpErr.Code != code {
		t.Errorf("expected %d, got %d", code, httpErr.Code)
	}
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"John Doe","dateOfBirth":"1980-05-05","gender":"male"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/patients", body), rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Name != "John Doe" || !strings.HasPrefix(p.ID, "p-") {
		t.Errorf("unexpected patient %+v", p)
	}
}

func TestHandler_CreatePatient_Invalid(t *testing.T) {
	h, e := newTestHandler()

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/patients", `{"name":"Doe"}`), httptest.NewRecorder())
	expectHTTPError(t, h.CreatePatient(c), http.StatusUnprocessableEntity)

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/v1/patients", `{"nickname":"Doe"}`), httptest.NewRecorder())
	expectHTTPError(t, h.CreatePatient(c), http.StatusBadRequest)
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePatient(nil, validPatient())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("p-nope")
	expectHTTPError(t, h.GetPatient(c), http.StatusNotFound)
}

func TestHandler_ListPatients(t *testing.T) {
	h, e := newTestHandler()
	for _, name := range []string{"Emma Wilson", "James Smith", "Emily Stone"} {
		p := validPatient()
		p.Name = name
		h.svc.CreatePatient(nil, p)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/patients?q=em&limit=1", nil), rec)
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data    []Patient `json:"data"`
		Total   int       `json:"total"`
		HasMore bool      `json:"hasMore"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 2 || len(resp.Data) != 1 || !resp.HasMore || resp.Data[0].Name != "Emma Wilson" {
		t.Errorf("unexpected page %+v", resp)
	}
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePatient(nil, validPatient())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"inactive"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Patient
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != PatientInactive || got.Name != p.Name {
		t.Errorf("unexpected patient %+v", got)
	}

	c = e.NewContext(jsonRequest(http.MethodPatch, "/", `{}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	expectHTTPError(t, h.UpdatePatient(c), http.StatusBadRequest)

	c = e.NewContext(jsonRequest(http.MethodPatch, "/", `{"phone":"1"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("p-nope")
	expectHTTPError(t, h.UpdatePatient(c), http.StatusNotFound)
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePatient(nil, validPatient())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	expectHTTPError(t, h.DeletePatient(c), http.StatusNotFound)
}

func TestHandler_ListDoctors_Day(t *testing.T) {
	h, e := newTestHandler()
	h.svc.CreateDoctor(nil, validDoctor())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/doctors?day=wed", nil), rec)
	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("expected one doctor, got %s", rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/doctors?day=someday", nil), httptest.NewRecorder())
	expectHTTPError(t, h.ListDoctors(c), http.StatusBadRequest)
}

func TestHandler_SetDoctorStatus(t *testing.T) {
	h, e := newTestHandler()
	d, _ := h.svc.CreateDoctor(nil, validDoctor())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"status":"off-duty"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID)
	if err := h.SetDoctorStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"status":"off-duty"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
