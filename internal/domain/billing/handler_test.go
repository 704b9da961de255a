package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_CreateInvoice_TotalMismatch(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()

	body := `{"patientId":"p1","items":[{"description":"Consultation","quantity":1,"unitPrice":150}],"totalAmount":120}`
	err := h.CreateInvoice(e.NewContext(jsonRequest(http.MethodPost, "/api/v1/invoices", body), httptest.NewRecorder()))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if !strings.Contains(httpErr.Message.(string), "totalAmount") {
		t.Errorf("message should name the field: %v", httpErr.Message)
	}
}

func TestHandler_RecordPayment(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	inv, _ := h.svc.CreateInvoice(nil, validInvoice())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"amount":235,"method":"insurance"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues(inv.ID)
	if err := h.RecordPayment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Invoice
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Status != StatusPaid || got.PaymentMethod != "insurance" {
		t.Errorf("unexpected invoice %+v", got)
	}
}

func TestHandler_Stats(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	h.svc.CreateInvoice(nil, validInvoice())

	rec := httptest.NewRecorder()
	if err := h.Stats(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/stats/billing", nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s Stats
	json.Unmarshal(rec.Body.Bytes(), &s)
	if s.Outstanding != 235 || s.ByStatus[StatusPending] != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}
