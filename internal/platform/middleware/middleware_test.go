package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
)

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		rid := c.Get("request_id").(string)
		if rid == "" {
			t.Error("expected request_id to be generated")
		}
		return c.String(http.StatusOK, "ok")
	}

	mw := RequestID()
	h := mw(handler)
	err := h(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		rid := c.Get("request_id").(string)
		if rid != "my-custom-id" {
			t.Errorf("expected my-custom-id, got %s", rid)
		}
		return c.String(http.StatusOK, "ok")
	}

	mw := RequestID()
	h := mw(handler)
	h(c)

	if rec.Header().Get(RequestIDHeader) != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %s", rec.Header().Get(RequestIDHeader))
	}
}

func TestLogger_LogsRequest(t *testing.T) {
	logger := zerolog.New(os.Stderr).With().Logger()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := Logger(logger)
	h := mw(handler)
	err := h(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	logger := zerolog.New(os.Stderr).With().Logger()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		panic("test panic")
	}

	mw := Recovery(logger, nil)
	h := mw(handler)
	err := h(c)

	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}
}

type panicCounter map[string]int

func (p panicCounter) Panic(route string) { p[route]++ }

func TestRecovery_LogsRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	counter := panicCounter{}
	e := echo.New()
	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/invoices/i1", nil), "finance@hospital.org", auth.RoleFinance)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/invoices/:id")

	h := Recovery(logger, counter)(func(c echo.Context) error {
		panic(errors.New("nil ledger"))
	})
	err := h(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"error":"nil ledger"`,
		`"method":"DELETE"`,
		`"route":"/api/v1/invoices/:id"`,
		`"subject":"finance@hospital.org"`,
		`"stack":`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
	if counter["/api/v1/invoices/:id"] != 1 {
		t.Errorf("panic not recorded: %v", counter)
	}
}

func TestRecovery_PassesThrough(t *testing.T) {
	logger := zerolog.New(os.Stderr).With().Logger()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := Recovery(logger, nil)
	h := mw(handler)
	err := h(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func withSession(req *http.Request, subject string, role auth.Role) *http.Request {
	s := auth.Session{State: auth.StateAuthenticated, Subject: subject, Role: role}
	return req.WithContext(auth.WithSession(req.Context(), s))
}

func TestLogger_IncludesSession(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := echo.New()
	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil), "admin@hospital.org", auth.RoleAdmin)
	c := e.NewContext(req, httptest.NewRecorder())

	h := Logger(logger)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"subject":"admin@hospital.org"`) || !strings.Contains(out, `"role":"admin"`) {
		t.Errorf("log line missing session: %s", out)
	}
}

func TestAudit_RecordsMutation(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	e := echo.New()
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/patients/p1", nil), "nurse@hospital.org", auth.RoleNurse)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("request_id", "req-123")

	var got []AuditEntry
	rec := AuditRecorderFunc(func(entry AuditEntry) error {
		got = append(got, entry)
		return nil
	})

	h := Audit(logger, rec)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	entry := got[0]
	if entry.Collection != "patients" || entry.RecordID != "p1" || entry.Action != "update" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Subject != "nurse@hospital.org" || entry.Role != "nurse" || entry.RequestID != "req-123" {
		t.Errorf("unexpected session fields: %+v", entry)
	}
}

func TestAudit_CapturesDeniedStatus(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil), httptest.NewRecorder())

	var got AuditEntry
	h := Audit(zerolog.Nop(), AuditRecorderFunc(func(entry AuditEntry) error {
		got = entry
		return nil
	}))(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	})
	if err := h(c); err == nil {
		t.Fatal("expected the handler error to pass through")
	}
	if got.StatusCode != http.StatusUnauthorized || got.Action != "list" || got.Subject != "" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestAudit_IgnoresNonAPIPaths(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())

	called := false
	h := Audit(zerolog.Nop(), AuditRecorderFunc(func(AuditEntry) error {
		called = true
		return nil
	}))(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	h(c)
	if called {
		t.Error("expected /health to be skipped")
	}
}

func TestAuditAction(t *testing.T) {
	tests := []struct {
		method, id, want string
	}{
		{http.MethodGet, "", "list"},
		{http.MethodGet, "p1", "read"},
		{http.MethodPost, "", "create"},
		{http.MethodPost, "i1", "update"},
		{http.MethodPut, "a1", "update"},
		{http.MethodDelete, "p1", "delete"},
	}
	for _, tt := range tests {
		if got := auditAction(tt.method, tt.id); got != tt.want {
			t.Errorf("auditAction(%s, %q) = %s, want %s", tt.method, tt.id, got, tt.want)
		}
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	h := rateLimit(store)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e := echo.New()
	call := func(subject string) error {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		if subject != "" {
			req = withSession(req, subject, auth.RoleDoctor)
		}
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	for i := 0; i < 2; i++ {
		if err := call("doc@hospital.org"); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
	}
	err := call("doc@hospital.org")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	// Another subject has its own bucket.
	if err := call("nurse@hospital.org"); err != nil {
		t.Errorf("unexpected error for second subject: %v", err)
	}

	now = now.Add(time.Second)
	if err := call("doc@hospital.org"); err != nil {
		t.Errorf("expected a refilled token, got %v", err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	SecurityHeaders()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Cache-Control"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("expected %s to be set", h)
		}
	}
}

func TestRequestTimeout(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil), httptest.NewRecorder())

	release := make(chan struct{})
	defer close(release)
	h := RequestTimeout(10 * time.Millisecond)(func(c echo.Context) error {
		<-release
		return nil
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %v", err)
	}
}

func TestRequestTimeout_SkipsWebsocket(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws", nil), httptest.NewRecorder())

	h := RequestTimeout(time.Millisecond)(func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); ok {
			t.Error("expected no deadline on /ws")
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
