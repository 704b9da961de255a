package hospital

import (
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/billing"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/diagnostics"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/medication"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/scheduling"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/supply"
)

// The relational queries match ids exactly and keep collection order. An
// unknown id yields an empty slice.

func (s *Store) AppointmentsByPatient(patientID string) []scheduling.Appointment {
	return s.Appointments.Filter(func(a scheduling.Appointment) bool { return a.PatientID == patientID })
}

func (s *Store) AppointmentsByDoctor(doctorID string) []scheduling.Appointment {
	return s.Appointments.Filter(func(a scheduling.Appointment) bool { return a.DoctorID == doctorID })
}

func (s *Store) MedicationsByPatient(patientID string) []medication.Medication {
	return s.Medications.Filter(func(m medication.Medication) bool { return m.PatientID == patientID })
}

func (s *Store) MedicationsByDoctor(doctorID string) []medication.Medication {
	return s.Medications.Filter(func(m medication.Medication) bool { return m.PrescribedByID == doctorID })
}

func (s *Store) LabTestsByPatient(patientID string) []diagnostics.LabTest {
	return s.LabTests.Filter(func(l diagnostics.LabTest) bool { return l.PatientID == patientID })
}

func (s *Store) LabTestsByDoctor(doctorID string) []diagnostics.LabTest {
	return s.LabTests.Filter(func(l diagnostics.LabTest) bool { return l.OrderedByID == doctorID })
}

func (s *Store) InvoicesByPatient(patientID string) []billing.Invoice {
	return s.Invoices.Filter(func(i billing.Invoice) bool { return i.PatientID == patientID })
}

// AppointmentStats counts appointments by status.
func (s *Store) AppointmentStats() scheduling.Stats {
	return scheduling.Summarize(s.Appointments.All())
}

// InventoryStats counts items by stock level and sums stock value.
func (s *Store) InventoryStats() supply.Stats {
	return supply.Summarize(s.Inventory.All())
}

// BillingStats sums invoiced, collected and outstanding amounts.
func (s *Store) BillingStats() billing.Stats {
	return billing.Summarize(s.Invoices.All())
}

// Stats bundles every aggregate.
type Stats struct {
	Appointments scheduling.Stats `json:"appointments"`
	Inventory    supply.Stats     `json:"inventory"`
	Billing      billing.Stats    `json:"billing"`
	Counts       map[string]int   `json:"counts"`
}

func (s *Store) Stats() Stats {
	return Stats{
		Appointments: s.AppointmentStats(),
		Inventory:    s.InventoryStats(),
		Billing:      s.BillingStats(),
		Counts:       s.Counts(),
	}
}
