package identity

import (
	"context"
	"strings"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	remover  Remover
}

// NewService wires the repositories. A nil remover deletes records without
// looking at their dependents.
func NewService(patients PatientRepository, doctors DoctorRepository, remover Remover) *Service {
	return &Service{patients: patients, doctors: doctors, remover: remover}
}

// -- Patient --

// PatientFilter narrows a patient listing. Zero fields match everything;
// Query matches name, email or phone, ignoring case.
type PatientFilter struct {
	Query  string
	Status PatientStatus
	Gender string
}

func (f PatientFilter) match(p Patient) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Gender != "" && !strings.EqualFold(p.Gender, f.Gender) {
		return false
	}
	return matchesAny(f.Query, p.Name, p.Email, p.Phone)
}

func (s *Service) CreatePatient(ctx context.Context, p Patient) (Patient, error) {
	return s.patients.Add(ctx, p)
}

func (s *Service) GetPatient(id string) (Patient, error) {
	return s.patients.Get(id)
}

func (s *Service) ListPatients(f PatientFilter) []Patient {
	return s.patients.Filter(f.match)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, patch store.Patch) (Patient, error) {
	return s.patients.Update(ctx, id, patch)
}

// DeletePatient removes a patient; with a remover wired, its dependent
// records go with it.
func (s *Service) DeletePatient(ctx context.Context, id string) (bool, error) {
	if s.remover != nil {
		return s.remover.DeletePatient(ctx, id)
	}
	return s.patients.Delete(ctx, id)
}

// -- Doctor --

// DoctorFilter narrows a doctor listing. Department and Specialization
// compare case-insensitively; Day keeps doctors available on that weekday.
type DoctorFilter struct {
	Query          string
	Department     string
	Specialization string
	Status         DoctorStatus
	Day            *time.Weekday
}

func (f DoctorFilter) match(d Doctor) bool {
	if f.Department != "" && !strings.EqualFold(d.Department, f.Department) {
		return false
	}
	if f.Specialization != "" && !strings.EqualFold(d.Specialization, f.Specialization) {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.Day != nil && !d.AvailableOn(*f.Day) {
		return false
	}
	return matchesAny(f.Query, d.Name, d.Email, d.Specialization)
}

func (s *Service) CreateDoctor(ctx context.Context, d Doctor) (Doctor, error) {
	return s.doctors.Add(ctx, d)
}

func (s *Service) GetDoctor(id string) (Doctor, error) {
	return s.doctors.Get(id)
}

func (s *Service) ListDoctors(f DoctorFilter) []Doctor {
	return s.doctors.Filter(f.match)
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, patch store.Patch) (Doctor, error) {
	return s.doctors.Update(ctx, id, patch)
}

// SetDoctorStatus moves a doctor to status.
func (s *Service) SetDoctorStatus(ctx context.Context, id string, status DoctorStatus) (Doctor, error) {
	patch, err := store.PatchOf(map[string]any{"status": status})
	if err != nil {
		return Doctor{}, err
	}
	return s.doctors.Update(ctx, id, patch)
}

// DeleteDoctor removes a doctor; with a remover wired, a doctor still
// referenced elsewhere is refused.
func (s *Service) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	if s.remover != nil {
		return s.remover.DeleteDoctor(ctx, id)
	}
	return s.doctors.Delete(ctx, id)
}

// Departments lists the distinct doctor departments in first-seen order.
func (s *Service) Departments() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range s.doctors.All() {
		if !seen[d.Department] {
			seen[d.Department] = true
			out = append(out, d.Department)
		}
	}
	return out
}

func matchesAny(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
