package hospital

import (
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/admin"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/billing"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/diagnostics"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/identity"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/medication"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/scheduling"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/supply"
)

// Dataset is a full set of records, one slice per collection.
type Dataset struct {
	Patients     []identity.Patient
	Doctors      []identity.Doctor
	Appointments []scheduling.Appointment
	Medications  []medication.Medication
	LabTests     []diagnostics.LabTest
	Invoices     []billing.Invoice
	Inventory    []supply.Item
	Staff        []admin.StaffMember
}

// seedTime is when every seeded appointment was booked.
var seedTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// Seed returns the demonstration dataset. Every call builds fresh slices,
// so callers may modify the result.
func Seed() Dataset {
	return Dataset{
		Patients:     seedPatients(),
		Doctors:      seedDoctors(),
		Appointments: seedAppointments(),
		Medications:  seedMedications(),
		LabTests:     seedLabTests(),
		Invoices:     seedInvoices(),
		Inventory:    seedInventory(),
		Staff:        seedStaff(),
	}
}

func seedPatients() []identity.Patient {
	return []identity.Patient{
		{
			ID: "p1", Name: "Emma Wilson", DateOfBirth: "1985-03-15", Gender: "female",
			Email: "emma.wilson@email.com", Phone: "555-0101", Address: "12 Oak Street, Springfield",
			BloodType: "A+", Status: identity.PatientActive, RegisteredAt: "2023-01-10",
			EmergencyContact: identity.EmergencyContact{Name: "James Wilson", Relationship: "Spouse", Phone: "555-0102"},
		},
		{
			ID: "p2", Name: "Liam Johnson", DateOfBirth: "1972-11-02", Gender: "male",
			Email: "liam.johnson@email.com", Phone: "555-0103", Address: "48 Maple Avenue, Springfield",
			BloodType: "O-", Status: identity.PatientActive, RegisteredAt: "2023-02-21",
			EmergencyContact: identity.EmergencyContact{Name: "Sarah Johnson", Relationship: "Sister", Phone: "555-0104"},
		},
		{
			ID: "p3", Name: "Olivia Martinez", DateOfBirth: "1993-07-28", Gender: "female",
			Email: "olivia.martinez@email.com", Phone: "555-0105", Address: "7 Pine Road, Shelbyville",
			BloodType: "B+", Status: identity.PatientActive, RegisteredAt: "2023-05-03",
			EmergencyContact: identity.EmergencyContact{Name: "Carlos Martinez", Relationship: "Father", Phone: "555-0106"},
		},
		{
			ID: "p4", Name: "Noah Brown", DateOfBirth: "1958-01-09", Gender: "male",
			Email: "noah.brown@email.com", Phone: "555-0107", Address: "301 Elm Court, Springfield",
			BloodType: "AB+", Status: identity.PatientActive, RegisteredAt: "2022-11-14",
			EmergencyContact: identity.EmergencyContact{Name: "Linda Brown", Relationship: "Spouse", Phone: "555-0108"},
		},
		{
			ID: "p5", Name: "Ava Davis", DateOfBirth: "2001-09-19", Gender: "female",
			Email: "ava.davis@email.com", Phone: "555-0109", Address: "9 Birch Lane, Capital City",
			BloodType: "O+", Status: identity.PatientInactive, RegisteredAt: "2024-01-08",
			EmergencyContact: identity.EmergencyContact{Name: "Mark Davis", Relationship: "Brother", Phone: "555-0110"},
		},
	}
}

func seedDoctors() []identity.Doctor {
	weekdays := func(days ...string) []string { return days }
	return []identity.Doctor{
		{
			ID: "d1", Name: "Dr. Sarah Chen", Specialization: "Cardiology", Department: "Cardiology",
			Email: "sarah.chen@hospital.com", Phone: "555-0201", Status: identity.DoctorAvailable,
			Availability: identity.Availability{Days: weekdays("Monday", "Tuesday", "Thursday"), Start: "09:00", End: "17:00"},
		},
		{
			ID: "d2", Name: "Dr. Michael Roberts", Specialization: "Pediatrics", Department: "Pediatrics",
			Email: "michael.roberts@hospital.com", Phone: "555-0202", Status: identity.DoctorBusy,
			Availability: identity.Availability{Days: weekdays("Monday", "Wednesday", "Friday"), Start: "08:00", End: "16:00"},
		},
		{
			ID: "d3", Name: "Dr. Priya Patel", Specialization: "Neurology", Department: "Neurology",
			Email: "priya.patel@hospital.com", Phone: "555-0203", Status: identity.DoctorAvailable,
			Availability: identity.Availability{Days: weekdays("Tuesday", "Wednesday", "Thursday"), Start: "10:00", End: "18:00"},
		},
		{
			ID: "d4", Name: "Dr. James Okafor", Specialization: "Orthopedics", Department: "Surgery",
			Email: "james.okafor@hospital.com", Phone: "555-0204", Status: identity.DoctorOffDuty,
			Availability: identity.Availability{Days: weekdays("Monday", "Thursday", "Friday"), Start: "07:00", End: "15:00"},
		},
		{
			ID: "d5", Name: "Dr. Elena Rossi", Specialization: "General Practice", Department: "General Medicine",
			Email: "elena.rossi@hospital.com", Phone: "555-0205", Status: identity.DoctorOnLeave,
			Availability: identity.Availability{Days: weekdays("Monday", "Tuesday", "Wednesday", "Thursday", "Friday"), Start: "09:00", End: "13:00"},
		},
	}
}

func seedAppointments() []scheduling.Appointment {
	appt := func(id, patient, doctor, date, clock, kind string, st scheduling.Status, notes string) scheduling.Appointment {
		return scheduling.Appointment{
			ID: id, PatientID: patient, DoctorID: doctor, Date: date, Time: clock,
			Duration: scheduling.DefaultDuration, Type: kind, Notes: notes, Status: st,
			CreatedAt: seedTime, UpdatedAt: seedTime,
		}
	}
	return []scheduling.Appointment{
		appt("a1", "p1", "d1", "2024-06-10", "09:00", "Consultation", scheduling.StatusCompleted, "Annual cardiac review"),
		appt("a2", "p2", "d1", "2024-06-12", "10:30", "Follow-up", scheduling.StatusScheduled, "Blood pressure check"),
		appt("a3", "p3", "d3", "2024-06-12", "14:00", "Consultation", scheduling.StatusScheduled, "Recurring migraines"),
		appt("a4", "p4", "d4", "2024-06-13", "08:00", "Pre-op Assessment", scheduling.StatusScheduled, ""),
		appt("a5", "p1", "d2", "2024-06-05", "11:00", "Check-up", scheduling.StatusCancelled, "Patient rescheduled"),
		appt("a6", "p5", "d5", "2024-06-03", "09:30", "Consultation", scheduling.StatusNoShow, ""),
	}
}

func seedMedications() []medication.Medication {
	return []medication.Medication{
		{ID: "m1", PatientID: "p1", Name: "Atorvastatin", Dosage: "20mg", Frequency: "Once daily",
			StartDate: "2024-01-15", Status: medication.StatusActive, PrescribedByID: "d1", Notes: "Take in the evening"},
		{ID: "m2", PatientID: "p2", Name: "Lisinopril", Dosage: "10mg", Frequency: "Once daily",
			StartDate: "2023-09-01", Status: medication.StatusActive, PrescribedByID: "d1"},
		{ID: "m3", PatientID: "p3", Name: "Sumatriptan", Dosage: "50mg", Frequency: "As needed",
			StartDate: "2024-02-20", EndDate: "2024-05-20", Status: medication.StatusCompleted, PrescribedByID: "d3"},
		{ID: "m4", PatientID: "p4", Name: "Ibuprofen", Dosage: "400mg", Frequency: "Three times daily",
			StartDate: "2024-04-02", EndDate: "2024-04-20", Status: medication.StatusDiscontinued, PrescribedByID: "d4",
			Notes: "Discontinued: stomach upset"},
		{ID: "m5", PatientID: "p1", Name: "Metformin", Dosage: "500mg", Frequency: "Twice daily",
			StartDate: "2024-03-10", Status: medication.StatusActive, PrescribedByID: "d5"},
	}
}

func seedLabTests() []diagnostics.LabTest {
	return []diagnostics.LabTest{
		{ID: "l1", PatientID: "p1", TestName: "Lipid Panel", Category: "Chemistry", Date: "2024-06-10",
			Result: "LDL 128 mg/dL", NormalRange: "LDL < 130 mg/dL", Status: diagnostics.StatusCompleted, OrderedByID: "d1"},
		{ID: "l2", PatientID: "p2", TestName: "Complete Blood Count", Category: "Hematology", Date: "2024-06-11",
			NormalRange: "WBC 4.5-11.0 x10^9/L", Status: diagnostics.StatusInProgress, OrderedByID: "d1"},
		{ID: "l3", PatientID: "p3", TestName: "MRI Brain", Category: "Imaging", Date: "2024-06-14",
			Status: diagnostics.StatusPending, OrderedByID: "d3", Notes: "Contrast not required"},
		{ID: "l4", PatientID: "p4", TestName: "Knee X-Ray", Category: "Imaging", Date: "2024-06-07",
			Result: "Moderate osteoarthritis", Status: diagnostics.StatusCompleted, OrderedByID: "d4"},
		{ID: "l5", PatientID: "p1", TestName: "HbA1c", Category: "Chemistry", Date: "2024-06-10",
			Result: "6.1%", NormalRange: "< 5.7%", Status: diagnostics.StatusCompleted, OrderedByID: "d5"},
	}
}

func seedInvoices() []billing.Invoice {
	return []billing.Invoice{
		{ID: "i1", PatientID: "p1", Date: "2024-06-10", DueDate: "2024-07-10",
			Items: []billing.Item{
				{Description: "Cardiology consultation", Quantity: 1, UnitPrice: 250},
				{Description: "Lipid panel", Quantity: 1, UnitPrice: 85},
				{Description: "HbA1c test", Quantity: 1, UnitPrice: 45},
			},
			TotalAmount: 380, PaidAmount: 380, Status: billing.StatusPaid, PaymentMethod: "Credit Card"},
		{ID: "i2", PatientID: "p2", Date: "2024-06-11", DueDate: "2024-07-11",
			Items: []billing.Item{
				{Description: "Follow-up visit", Quantity: 1, UnitPrice: 150},
				{Description: "Complete blood count", Quantity: 1, UnitPrice: 60},
			},
			TotalAmount: 210, PaidAmount: 0, Status: billing.StatusPending},
		{ID: "i3", PatientID: "p4", Date: "2024-06-07", DueDate: "2024-07-07",
			Items: []billing.Item{
				{Description: "Orthopedic consultation", Quantity: 1, UnitPrice: 200},
				{Description: "X-ray imaging", Quantity: 2, UnitPrice: 120.5},
			},
			TotalAmount: 441, PaidAmount: 200, Status: billing.StatusPartial, PaymentMethod: "Insurance"},
		{ID: "i4", PatientID: "p5", Date: "2024-04-03", DueDate: "2024-05-03",
			Items: []billing.Item{
				{Description: "Missed appointment fee", Quantity: 1, UnitPrice: 50},
			},
			TotalAmount: 50, PaidAmount: 0, Status: billing.StatusOverdue},
	}
}

func seedInventory() []supply.Item {
	item := func(id, name, category string, qty int, unit string, price float64, reorder int, supplier, expiry string) supply.Item {
		it := supply.Item{
			ID: id, Name: name, Category: category, Quantity: qty, Unit: unit, UnitPrice: price,
			ReorderLevel: reorder, Supplier: supplier, ExpiryDate: expiry,
		}
		it.Derive()
		return it
	}
	return []supply.Item{
		item("inv1", "Surgical Gloves", "Consumables", 500, "pairs", 0.35, 100, "MedSupply Co", "2026-01-31"),
		item("inv2", "Paracetamol 500mg", "Medication", 40, "boxes", 3.2, 50, "PharmaDirect", "2025-08-15"),
		item("inv3", "Insulin Pens", "Medication", 0, "pens", 28.75, 20, "PharmaDirect", "2024-12-01"),
		item("inv4", "IV Cannula 20G", "Consumables", 220, "pcs", 1.1, 60, "MedSupply Co", "2027-03-01"),
		item("inv5", "Blood Pressure Monitor", "Equipment", 8, "units", 145, 5, "HealthTech Ltd", ""),
		item("inv6", "Face Masks", "Consumables", 90, "boxes", 6.5, 120, "SafeWear Inc", "2026-06-30"),
	}
}

func seedStaff() []admin.StaffMember {
	return []admin.StaffMember{
		{ID: "s1", Name: "Grace Kim", Role: "Head Nurse", Department: "Emergency",
			Email: "grace.kim@hospital.com", Phone: "555-0301", JoinDate: "2018-04-02", Status: admin.StatusActive,
			Schedule: []admin.ScheduleEntry{{Day: "Monday", Shift: admin.ShiftMorning}, {Day: "Tuesday", Shift: admin.ShiftMorning}, {Day: "Wednesday", Shift: admin.ShiftNight}}},
		{ID: "s2", Name: "Tom Reyes", Role: "Receptionist", Department: "Front Desk",
			Email: "tom.reyes@hospital.com", Phone: "555-0302", JoinDate: "2021-09-13", Status: admin.StatusActive,
			Schedule: []admin.ScheduleEntry{{Day: "Monday", Shift: admin.ShiftMorning}, {Day: "Thursday", Shift: admin.ShiftAfternoon}, {Day: "Friday", Shift: admin.ShiftAfternoon}}},
		{ID: "s3", Name: "Ana Lopez", Role: "Pharmacist", Department: "Pharmacy",
			Email: "ana.lopez@hospital.com", Phone: "555-0303", JoinDate: "2019-06-24", Status: admin.StatusActive,
			Schedule: []admin.ScheduleEntry{{Day: "Tuesday", Shift: admin.ShiftAfternoon}, {Day: "Friday", Shift: admin.ShiftEvening}}},
		{ID: "s4", Name: "Ravi Shah", Role: "Lab Technician", Department: "Laboratory",
			Email: "ravi.shah@hospital.com", Phone: "555-0304", JoinDate: "2022-02-07", Status: admin.StatusOnLeave,
			Schedule: []admin.ScheduleEntry{{Day: "Wednesday", Shift: admin.ShiftMorning}, {Day: "Thursday", Shift: admin.ShiftMorning}}},
		{ID: "s5", Name: "Helen Park", Role: "Billing Officer", Department: "Finance",
			Email: "helen.park@hospital.com", Phone: "555-0305", JoinDate: "2020-11-30", Status: admin.StatusActive,
			Schedule: []admin.ScheduleEntry{{Day: "Monday", Shift: admin.ShiftMorning}, {Day: "Wednesday", Shift: admin.ShiftMorning}, {Day: "Friday", Shift: admin.ShiftMorning}}},
	}
}
