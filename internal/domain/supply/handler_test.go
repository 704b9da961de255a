package supply

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_AdjustItem(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	it, _ := h.svc.CreateItem(nil, syringes())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":-50}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(it.ID)
	if err := h.AdjustItem(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Item
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Quantity != 0 || got.Status != StatusOutOfStock {
		t.Errorf("unexpected item %+v", got)
	}
}

func TestHandler_ListItems_BadExpiry(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/inventory?expiringBy=next-week", nil), httptest.NewRecorder())
	err := h.ListItems(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Stats(t *testing.T) {
	h, e := NewHandler(newTestService()), echo.New()
	h.svc.CreateItem(nil, syringes())

	rec := httptest.NewRecorder()
	if err := h.Stats(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/stats/inventory", nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s Stats
	json.Unmarshal(rec.Body.Bytes(), &s)
	if s.Total != 1 || s.TotalValue != 20 {
		t.Errorf("unexpected stats %+v", s)
	}
}
