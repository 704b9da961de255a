package telemetry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

func TestChanged_CountsMutations(t *testing.T) {
	m := New(Config{})
	m.Changed(store.ChangeEvent{Collection: "patients", Action: store.ActionCreated, ID: "p6"})
	m.Changed(store.ChangeEvent{Collection: "patients", Action: store.ActionCreated, ID: "p7"})
	m.Changed(store.ChangeEvent{Collection: "invoices", Action: store.ActionDeleted, ID: "i1"})

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("patients", "created")); got != 2 {
		t.Errorf("patients created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("invoices", "deleted")); got != 1 {
		t.Errorf("invoices deleted = %v, want 1", got)
	}
}

func TestDecision_CountsOutcomes(t *testing.T) {
	m := New(Config{})
	var rec auth.DecisionRecorder = m.Decision
	rec(auth.ResourceBilling, auth.OutcomeDeny)
	rec(auth.ResourceBilling, auth.OutcomeAllow)
	rec(auth.ResourceBilling, auth.OutcomeDeny)

	if got := testutil.ToFloat64(m.decisions.WithLabelValues(string(auth.ResourceBilling), "deny")); got != 2 {
		t.Errorf("deny = %v, want 2", got)
	}
}

func TestPanic_CountsPerRoute(t *testing.T) {
	m := New(Config{})
	m.Panic("/api/v1/patients/:id")
	m.Panic("/api/v1/patients/:id")

	if got := testutil.ToFloat64(m.panics.WithLabelValues("/api/v1/patients/:id")); got != 2 {
		t.Errorf("panics = %v, want 2", got)
	}
}

type failingMedium struct{ fail bool }

func (f *failingMedium) Load(context.Context, string) ([]byte, error) { return nil, nil }

func (f *failingMedium) Save(context.Context, string, []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return nil
}

func TestInstrument_CountsWritesAndFailures(t *testing.T) {
	m := New(Config{})
	inner := &failingMedium{}
	medium := m.Instrument(inner)
	ctx := context.Background()

	if err := medium.Save(ctx, "hms_patients", []byte("[]")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner.fail = true
	if err := medium.Save(ctx, "hms_patients", []byte("[]")); err == nil {
		t.Fatal("expected the medium error to pass through")
	}

	if got := testutil.ToFloat64(m.writes.WithLabelValues("hms_patients")); got != 2 {
		t.Errorf("writes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.writeFailures.WithLabelValues("hms_patients")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(Config{ServiceName: "hms-test"})
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/p1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	m.SetCollectionSizes(map[string]int{"patients": 5})

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	for _, want := range []string{
		`hms_http_request_duration_seconds_count{method="GET",route="/api/v1/patients/:id",service="hms-test",status="200"} 1`,
		`hms_store_records{collection="patients",service="hms-test"} 5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
