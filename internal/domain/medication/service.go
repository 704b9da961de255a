package medication

import (
	"context"
	"strings"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	meds MedicationRepository
	now  func() time.Time
}

func NewService(meds MedicationRepository) *Service {
	return &Service{meds: meds, now: time.Now}
}

// Filter narrows a medication listing. Query matches the drug name.
type Filter struct {
	PatientID      string
	PrescribedByID string
	Status         Status
	Query          string
}

func (f Filter) match(m Medication) bool {
	switch {
	case f.PatientID != "" && m.PatientID != f.PatientID:
		return false
	case f.PrescribedByID != "" && m.PrescribedByID != f.PrescribedByID:
		return false
	case f.Status != "" && m.Status != f.Status:
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(m.Name), q)
}

func (s *Service) CreateMedication(ctx context.Context, m Medication) (Medication, error) {
	return s.meds.Add(ctx, m)
}

func (s *Service) GetMedication(id string) (Medication, error) {
	return s.meds.Get(id)
}

func (s *Service) ListMedications(f Filter) []Medication {
	return s.meds.Filter(f.match)
}

func (s *Service) UpdateMedication(ctx context.Context, id string, patch store.Patch) (Medication, error) {
	return s.meds.Update(ctx, id, patch)
}

// Discontinue stops an active prescription today. The reason, when given,
// is appended to the notes.
func (s *Service) Discontinue(ctx context.Context, id, reason string) (Medication, error) {
	m, err := s.meds.Get(id)
	if err != nil {
		return Medication{}, err
	}
	if m.Status != StatusActive {
		return Medication{}, store.Invalid("status", "only active medications can be discontinued, got %q", m.Status)
	}
	fields := map[string]any{"status": StatusDiscontinued}
	today := s.now().Format(store.DateLayout)
	if m.EndDate == "" || m.EndDate > today {
		end := today
		if end < m.StartDate {
			end = m.StartDate
		}
		fields["endDate"] = end
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		notes := "Discontinued: " + reason
		if m.Notes != "" {
			notes = m.Notes + "\n" + notes
		}
		fields["notes"] = notes
	}
	patch, err := store.PatchOf(fields)
	if err != nil {
		return Medication{}, err
	}
	return s.meds.Update(ctx, id, patch)
}

func (s *Service) DeleteMedication(ctx context.Context, id string) (bool, error) {
	return s.meds.Delete(ctx, id)
}
