package scheduling

import (
	"context"
	"sort"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	appointments AppointmentRepository
}

func NewService(appts AppointmentRepository) *Service {
	return &Service{appointments: appts}
}

// Filter narrows an appointment listing. From and To bound the date
// inclusively as YYYY-MM-DD strings.
type Filter struct {
	PatientID string
	DoctorID  string
	Status    Status
	From      string
	To        string
}

func (f Filter) match(a Appointment) bool {
	switch {
	case f.PatientID != "" && a.PatientID != f.PatientID:
		return false
	case f.DoctorID != "" && a.DoctorID != f.DoctorID:
		return false
	case f.Status != "" && a.Status != f.Status:
		return false
	case f.From != "" && a.Date < f.From:
		return false
	case f.To != "" && a.Date > f.To:
		return false
	}
	return true
}

func (s *Service) CreateAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	return s.appointments.Add(ctx, a)
}

func (s *Service) GetAppointment(id string) (Appointment, error) {
	return s.appointments.Get(id)
}

// ListAppointments returns matching appointments in collection order.
func (s *Service) ListAppointments(f Filter) []Appointment {
	return s.appointments.Filter(f.match)
}

// Agenda returns matching appointments ordered by date and time.
func (s *Service) Agenda(f Filter) []Appointment {
	out := s.appointments.Filter(f.match)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, patch store.Patch) (Appointment, error) {
	return s.appointments.Update(ctx, id, patch)
}

// SetStatus moves an appointment to status.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Appointment, error) {
	patch, err := store.PatchOf(map[string]any{"status": status})
	if err != nil {
		return Appointment{}, err
	}
	return s.appointments.Update(ctx, id, patch)
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	return s.appointments.Delete(ctx, id)
}

// Stats summarizes every appointment.
func (s *Service) Stats() Stats {
	return Summarize(s.appointments.All())
}
