package hospital

import (
	"context"
	"fmt"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/billing"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/diagnostics"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/medication"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/scheduling"
)

// DeletePatient removes a patient after its appointments, medications, lab
// tests and invoices. Each collection is written through as it is cleared,
// so a failure part way leaves the patient in place with fewer dependents.
func (s *Store) DeletePatient(ctx context.Context, id string) (bool, error) {
	if _, err := s.Patients.Get(id); err != nil {
		return false, nil
	}
	if _, err := s.Appointments.DeleteWhere(ctx, func(a scheduling.Appointment) bool { return a.PatientID == id }); err != nil {
		return false, err
	}
	if _, err := s.Medications.DeleteWhere(ctx, func(m medication.Medication) bool { return m.PatientID == id }); err != nil {
		return false, err
	}
	if _, err := s.LabTests.DeleteWhere(ctx, func(l diagnostics.LabTest) bool { return l.PatientID == id }); err != nil {
		return false, err
	}
	if _, err := s.Invoices.DeleteWhere(ctx, func(i billing.Invoice) bool { return i.PatientID == id }); err != nil {
		return false, err
	}
	return s.Patients.Delete(ctx, id)
}

// DeleteDoctor removes a doctor no appointment, medication or lab test
// refers to. Otherwise it fails with ErrHasDependents.
func (s *Store) DeleteDoctor(ctx context.Context, id string) (bool, error) {
	if _, err := s.Doctors.Get(id); err != nil {
		return false, nil
	}
	appts := len(s.AppointmentsByDoctor(id))
	meds := len(s.MedicationsByDoctor(id))
	labs := len(s.LabTestsByDoctor(id))
	if appts+meds+labs > 0 {
		return false, fmt.Errorf("doctor %s has %d appointments, %d medications and %d lab tests: %w",
			id, appts, meds, labs, ErrHasDependents)
	}
	return s.Doctors.Delete(ctx, id)
}

// DanglingRef is a foreign key pointing at a record that does not exist.
type DanglingRef struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Field      string `json:"field"`
	Target     string `json:"target"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s %s: %s %q not found", d.Collection, d.ID, d.Field, d.Target)
}

// CheckReferences lists every foreign key whose target is missing, in
// collection order. Writes do not enforce references, so this is advisory.
func (s *Store) CheckReferences() []DanglingRef {
	patients := map[string]bool{}
	for _, p := range s.Patients.All() {
		patients[p.ID] = true
	}
	doctors := map[string]bool{}
	for _, d := range s.Doctors.All() {
		doctors[d.ID] = true
	}

	out := []DanglingRef{}
	check := func(collection, id, field, target string, known map[string]bool) {
		if !known[target] {
			out = append(out, DanglingRef{Collection: collection, ID: id, Field: field, Target: target})
		}
	}
	for _, a := range s.Appointments.All() {
		check(s.Appointments.Name(), a.ID, "patientId", a.PatientID, patients)
		check(s.Appointments.Name(), a.ID, "doctorId", a.DoctorID, doctors)
	}
	for _, m := range s.Medications.All() {
		check(s.Medications.Name(), m.ID, "patientId", m.PatientID, patients)
		check(s.Medications.Name(), m.ID, "prescribedById", m.PrescribedByID, doctors)
	}
	for _, l := range s.LabTests.All() {
		check(s.LabTests.Name(), l.ID, "patientId", l.PatientID, patients)
		check(s.LabTests.Name(), l.ID, "orderedById", l.OrderedByID, doctors)
	}
	for _, i := range s.Invoices.All() {
		check(s.Invoices.Name(), i.ID, "patientId", i.PatientID, patients)
	}
	return out
}
