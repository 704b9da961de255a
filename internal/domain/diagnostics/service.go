package diagnostics

import (
	"context"
	"strings"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	tests LabTestRepository
}

func NewService(tests LabTestRepository) *Service {
	return &Service{tests: tests}
}

// Filter narrows a lab test listing. Category compares case-insensitively.
type Filter struct {
	PatientID   string
	OrderedByID string
	Status      Status
	Category    string
}

func (f Filter) match(l LabTest) bool {
	switch {
	case f.PatientID != "" && l.PatientID != f.PatientID:
		return false
	case f.OrderedByID != "" && l.OrderedByID != f.OrderedByID:
		return false
	case f.Status != "" && l.Status != f.Status:
		return false
	case f.Category != "" && !strings.EqualFold(l.Category, f.Category):
		return false
	}
	return true
}

func (s *Service) CreateLabTest(ctx context.Context, l LabTest) (LabTest, error) {
	return s.tests.Add(ctx, l)
}

func (s *Service) GetLabTest(id string) (LabTest, error) {
	return s.tests.Get(id)
}

func (s *Service) ListLabTests(f Filter) []LabTest {
	return s.tests.Filter(f.match)
}

// Results lists completed tests, optionally for one patient.
func (s *Service) Results(patientID string) []LabTest {
	return s.tests.Filter(Filter{PatientID: patientID, Status: StatusCompleted}.match)
}

func (s *Service) UpdateLabTest(ctx context.Context, id string, patch store.Patch) (LabTest, error) {
	return s.tests.Update(ctx, id, patch)
}

// RecordResult completes a test with its result. Cancelled tests cannot
// take a result.
func (s *Service) RecordResult(ctx context.Context, id, result, notes string) (LabTest, error) {
	l, err := s.tests.Get(id)
	if err != nil {
		return LabTest{}, err
	}
	if l.Status == StatusCancelled {
		return LabTest{}, store.Invalid("status", "cannot record a result for a cancelled test")
	}
	fields := map[string]any{"result": result, "status": StatusCompleted}
	if notes != "" {
		fields["notes"] = notes
	}
	patch, err := store.PatchOf(fields)
	if err != nil {
		return LabTest{}, err
	}
	return s.tests.Update(ctx, id, patch)
}

func (s *Service) DeleteLabTest(ctx context.Context, id string) (bool, error) {
	return s.tests.Delete(ctx, id)
}
