package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/config"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		StoreDriver:    persistence.DriverMemory,
		AuthSigningKey: "test-key",
		AuthIssuer:     "hms",
		DemoSecret:     "demo",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func newTestApp(t *testing.T, medium persistence.Medium) *app {
	t.Helper()
	a, err := assemble(context.Background(), testConfig(), zerolog.Nop(), medium)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return a
}

func login(t *testing.T, h http.Handler, role auth.Role) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"identifier": string(role) + "@hms.local",
		"secret":     "demo",
		"role":       string(role),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: %d %s", role, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response: %v %s", err, rec.Body.String())
	}
	return resp.Token
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthIsPublic(t *testing.T) {
	e := newTestApp(t, persistence.NewMemory()).echo()

	rec := get(e, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"patients":5`) {
		t.Errorf("expected seeded counts in health, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestServer_RoleGatedAccess(t *testing.T) {
	e := newTestApp(t, persistence.NewMemory()).echo()

	if rec := get(e, "/api/v1/patients", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	nurse := login(t, e, auth.RoleNurse)
	if rec := get(e, "/api/v1/patients", nurse); rec.Code != http.StatusOK {
		t.Fatalf("nurse patients: expected 200, got %d", rec.Code)
	}
	if rec := get(e, "/api/v1/invoices", nurse); rec.Code != http.StatusForbidden {
		t.Fatalf("nurse invoices: expected 403, got %d", rec.Code)
	}

	finance := login(t, e, auth.RoleFinance)
	if rec := get(e, "/api/v1/stats/billing", finance); rec.Code != http.StatusOK {
		t.Fatalf("finance billing stats: expected 200, got %d", rec.Code)
	}
}

func TestServer_LogoutRevokesToken(t *testing.T) {
	e := newTestApp(t, persistence.NewMemory()).echo()
	token := login(t, e, auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code >= 300 {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body.String())
	}

	if rec := get(e, "/api/v1/staff", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: expected 401, got %d", rec.Code)
	}
}

func TestServer_MetricsCountMutations(t *testing.T) {
	a := newTestApp(t, persistence.NewMemory())
	e := a.echo()
	admin := login(t, e, auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patients/p5", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d %s", rec.Code, rec.Body.String())
	}

	out := get(e, "/metrics", "").Body.String()
	for _, want := range []string{
		`hms_store_mutations_total{action="deleted",collection="patients"`,
		`hms_persistence_writes_total{key="hms_patients"`,
		`hms_store_records{collection="patients"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestManager_SessionSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	medium := persistence.NewMemory()

	a := newTestApp(t, medium)
	if _, _, err := a.manager().Login(ctx, "pharmacist@hms.local", "demo", auth.RolePharmacist); err != nil {
		t.Fatalf("login: %v", err)
	}

	b := newTestApp(t, medium)
	s, err := b.manager().Resolve(ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !s.Authenticated() || s.Role != auth.RolePharmacist {
		t.Fatalf("expected pharmacist session, got %+v", s)
	}

	if err := b.manager().Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	s, _ = newTestApp(t, medium).manager().Resolve(ctx)
	if s.Authenticated() {
		t.Fatal("expected no session after logout")
	}
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	if err := printCounts(&buf, map[string]int{"staff": 5, "doctors": 5}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "doctors") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintNavigation(t *testing.T) {
	var buf bytes.Buffer
	printNavigation(&buf, nil)
	if !strings.Contains(buf.String(), "sign in") {
		t.Errorf("unexpected output for anonymous: %q", buf.String())
	}

	buf.Reset()
	s := auth.Session{State: auth.StateAuthenticated, Subject: "lab_technician@hms.local", Role: auth.RoleLabTechnician}
	printNavigation(&buf, auth.Navigation(s))
	out := buf.String()
	if !strings.Contains(out, "Lab Tests") || strings.Contains(out, "Invoices") {
		t.Errorf("unexpected navigation:\n%s", out)
	}
}

func TestReadSecret(t *testing.T) {
	env := func(v string) func(string) string {
		return func(key string) string {
			if key == secretEnv {
				return v
			}
			return ""
		}
	}
	cases := []struct {
		name    string
		flag    string
		stdin   string
		env     string
		want    string
		wantErr bool
	}{
		{name: "stdin", flag: "-", stdin: "s3cret\n", want: "s3cret"},
		{name: "stdin without newline", flag: "-", stdin: "s3cret", want: "s3cret"},
		{name: "stdin crlf", flag: "-", stdin: "s3cret\r\nignored\n", want: "s3cret"},
		{name: "environment", env: "from-env", want: "from-env"},
		{name: "flag wins over environment", flag: "given", env: "from-env", want: "given"},
		{name: "nothing given", wantErr: true},
		{name: "empty stdin", flag: "-", env: "from-env", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readSecret(tc.flag, strings.NewReader(tc.stdin), env(tc.env))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("readSecret = %q, %v; want %q", got, err, tc.want)
			}
		})
	}
}
