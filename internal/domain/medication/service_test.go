package medication

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

func newTestService() *Service {
	meds := store.NewCollection[Medication]("medications", "hms_medications", "m", persistence.NewMemory())
	svc := NewService(meds)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_CreateAndFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a := validMedication()
	b := validMedication()
	b.PatientID, b.Name, b.PrescribedByID = "p2", "Metformin", "d2"
	for _, m := range []Medication{a, b} {
		if _, err := svc.CreateMedication(ctx, m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if got := svc.ListMedications(Filter{PatientID: "p2"}); len(got) != 1 || got[0].Name != "Metformin" {
		t.Errorf("patient filter: %+v", got)
	}
	if got := svc.ListMedications(Filter{Query: "lisin"}); len(got) != 1 {
		t.Errorf("query filter: %+v", got)
	}
	if got := svc.ListMedications(Filter{PrescribedByID: "d9"}); len(got) != 0 {
		t.Errorf("expected no medications, got %d", len(got))
	}
}

func TestService_Discontinue(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	m, _ := svc.CreateMedication(ctx, validMedication())

	got, err := svc.Discontinue(ctx, m.ID, "side effects")
	if err != nil {
		t.Fatalf("discontinue: %v", err)
	}
	if got.Status != StatusDiscontinued || got.EndDate != "2024-06-01" {
		t.Errorf("unexpected medication %+v", got)
	}
	if !strings.Contains(got.Notes, "side effects") {
		t.Errorf("reason not recorded: %q", got.Notes)
	}

	_, err = svc.Discontinue(ctx, m.ID, "")
	if !store.IsValidation(err) {
		t.Errorf("expected validation error on second discontinue, got %v", err)
	}
	if _, err := svc.Discontinue(ctx, "m-missing", ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DiscontinueKeepsEarlierEndDate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	m := validMedication()
	m.EndDate = "2024-03-01"
	m, _ = svc.CreateMedication(ctx, m)

	got, err := svc.Discontinue(ctx, m.ID, "")
	if err != nil {
		t.Fatalf("discontinue: %v", err)
	}
	if got.EndDate != "2024-03-01" {
		t.Errorf("end date changed to %s", got.EndDate)
	}
}
