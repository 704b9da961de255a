package identity

import (
	"testing"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

func validPatient() Patient {
	return Patient{
		ID:          "p-test",
		Name:        "Ada Brooks",
		DateOfBirth: "1990-03-14",
		Gender:      "female",
		Email:       "ada@example.com",
		Phone:       "555-0100",
		BloodType:   "O+",
		EmergencyContact: EmergencyContact{
			Name: "Sam Brooks", Relationship: "Brother", Phone: "555-0101",
		},
		Status:       PatientActive,
		RegisteredAt: "2024-01-02",
	}
}

func validDoctor() Doctor {
	return Doctor{
		ID:             "d-test",
		Name:           "Dr. Lena Ortiz",
		Specialization: "Cardiology",
		Department:     "Cardiology",
		Availability:   Availability{Days: []string{"Monday", "Wednesday"}, Start: "09:00", End: "17:00"},
		Status:         DoctorAvailable,
	}
}

func TestPatient_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Patient)
		field  string
	}{
		{"valid", func(*Patient) {}, ""},
		{"missing name", func(p *Patient) { p.Name = " " }, "name"},
		{"bad birth date", func(p *Patient) { p.DateOfBirth = "14/03/1990" }, "dateOfBirth"},
		{"bad gender", func(p *Patient) { p.Gender = "x" }, "gender"},
		{"bad blood type", func(p *Patient) { p.BloodType = "C+" }, "bloodType"},
		{"blank blood type allowed", func(p *Patient) { p.BloodType = "" }, ""},
		{"bad status", func(p *Patient) { p.Status = "gone" }, "status"},
		{"registered before birth", func(p *Patient) { p.RegisteredAt = "1980-01-01" }, "registeredAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*store.ValidationError)
			if !ok {
				t.Fatalf("expected *store.ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %s, want %s", ve.Field, tt.field)
			}
		})
	}
}

func TestPatient_Defaults(t *testing.T) {
	p := Patient{}
	p.Defaults(time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC))
	if p.Status != PatientActive || p.RegisteredAt != "2024-06-12" {
		t.Errorf("unexpected defaults %+v", p)
	}
	p = Patient{Status: PatientInactive, RegisteredAt: "2020-01-01"}
	p.Defaults(time.Now())
	if p.Status != PatientInactive || p.RegisteredAt != "2020-01-01" {
		t.Errorf("defaults overwrote supplied values: %+v", p)
	}
}

func TestDoctor_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Doctor)
		ok     bool
	}{
		{"valid", func(*Doctor) {}, true},
		{"off-duty", func(d *Doctor) { d.Status = DoctorOffDuty }, true},
		{"on-leave", func(d *Doctor) { d.Status = DoctorOnLeave }, true},
		{"unknown status", func(d *Doctor) { d.Status = "asleep" }, false},
		{"missing department", func(d *Doctor) { d.Department = "" }, false},
		{"bad day", func(d *Doctor) { d.Availability.Days = []string{"Funday"} }, false},
		{"bad hours", func(d *Doctor) { d.Availability.Start = "9am" }, false},
		{"inverted hours", func(d *Doctor) { d.Availability.Start, d.Availability.End = "18:00", "08:00" }, false},
		{"no hours", func(d *Doctor) { d.Availability = Availability{} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDoctor()
			tt.mutate(&d)
			err := d.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDoctor_CloneCopiesDays(t *testing.T) {
	d := validDoctor()
	c := d.Clone()
	c.Availability.Days[0] = "Sunday"
	if d.Availability.Days[0] != "Monday" {
		t.Error("clone shares the days slice")
	}
}

func TestDoctor_AvailableOn(t *testing.T) {
	d := validDoctor()
	if !d.AvailableOn(time.Monday) || d.AvailableOn(time.Tuesday) {
		t.Errorf("unexpected availability for %v", d.Availability.Days)
	}
}
