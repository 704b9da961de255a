package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/persistence"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

func newTestService(opts ...store.Option) *Service {
	appts := store.NewCollection[Appointment]("appointments", "hms_appointments", "a", persistence.NewMemory(), opts...)
	return NewService(appts)
}

func TestService_CreateAppointmentStampsTimes(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(store.WithClock(func() time.Time { return now }))

	a := validAppointment()
	a.Status = ""
	a.Duration = 0
	got, err := svc.CreateAppointment(context.Background(), a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Status != StatusScheduled || got.Duration != DefaultDuration {
		t.Errorf("defaults not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not stamped: %+v", got)
	}
}

func TestService_SetStatusRefreshesUpdatedAt(t *testing.T) {
	clock := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(store.WithClock(func() time.Time { return clock }))
	ctx := context.Background()
	a, _ := svc.CreateAppointment(ctx, validAppointment())

	clock = clock.Add(2 * time.Hour)
	got, err := svc.SetStatus(ctx, a.ID, StatusCompleted)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if !got.UpdatedAt.Equal(clock) || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("unexpected timestamps created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
	if _, err := svc.SetStatus(ctx, "a-missing", StatusCompleted); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_CompletingUpdatesStats(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a, _ := svc.CreateAppointment(ctx, validAppointment())
	_, _ = svc.CreateAppointment(ctx, validAppointment())

	before := svc.Stats()
	if _, err := svc.SetStatus(ctx, a.ID, StatusCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	after := svc.Stats()
	if after.Completed != before.Completed+1 || after.Scheduled != before.Scheduled-1 || after.Total != before.Total {
		t.Errorf("stats %+v -> %+v", before, after)
	}
}

func TestService_ListAndAgenda(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for _, a := range []Appointment{
		{PatientID: "p1", DoctorID: "d1", Date: "2024-06-14", Time: "10:00", Type: "follow-up"},
		{PatientID: "p2", DoctorID: "d1", Date: "2024-06-12", Time: "11:00", Type: "consultation"},
		{PatientID: "p1", DoctorID: "d2", Date: "2024-06-12", Time: "09:00", Type: "check-up"},
	} {
		if _, err := svc.CreateAppointment(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if got := svc.ListAppointments(Filter{PatientID: "p1"}); len(got) != 2 || got[0].Date != "2024-06-14" {
		t.Errorf("patient filter should keep collection order: %+v", got)
	}
	if got := svc.ListAppointments(Filter{DoctorID: "d1", From: "2024-06-13"}); len(got) != 1 {
		t.Errorf("expected one appointment from 13th, got %d", len(got))
	}
	if got := svc.ListAppointments(Filter{To: "2024-06-12"}); len(got) != 2 {
		t.Errorf("expected two appointments up to 12th, got %d", len(got))
	}

	agenda := svc.Agenda(Filter{})
	order := []string{agenda[0].Time, agenda[1].Time, agenda[2].Time}
	if order[0] != "09:00" || order[1] != "11:00" || order[2] != "10:00" {
		t.Errorf("unexpected agenda order %v", order)
	}
}

func TestService_DeleteAppointment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a, _ := svc.CreateAppointment(ctx, validAppointment())
	if ok, err := svc.DeleteAppointment(ctx, a.ID); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := svc.DeleteAppointment(ctx, a.ID); ok {
		t.Error("second delete should report false")
	}
}
