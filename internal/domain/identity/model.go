package identity

import (
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// PatientStatus is the registration state of a patient.
type PatientStatus string

const (
	PatientActive   PatientStatus = "active"
	PatientInactive PatientStatus = "inactive"
)

// DoctorStatus is the working state of a doctor.
type DoctorStatus string

const (
	DoctorAvailable DoctorStatus = "available"
	DoctorBusy      DoctorStatus = "busy"
	DoctorOffDuty   DoctorStatus = "off-duty"
	DoctorOnLeave   DoctorStatus = "on-leave"
)

var (
	genders    = []string{"male", "female", "other"}
	bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	weekdays   = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

// EmergencyContact is the person to call for a patient.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Patient is a person registered for care.
type Patient struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	DateOfBirth      string           `json:"dateOfBirth"`
	Gender           string           `json:"gender"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	BloodType        string           `json:"bloodType,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Status           PatientStatus    `json:"status"`
	RegisteredAt     string           `json:"registeredAt"`
}

func (p *Patient) GetID() string   { return p.ID }
func (p *Patient) SetID(id string) { p.ID = id }

// Defaults marks new patients active and registered today.
func (p *Patient) Defaults(now time.Time) {
	if p.Status == "" {
		p.Status = PatientActive
	}
	if p.RegisteredAt == "" {
		p.RegisteredAt = now.Format(store.DateLayout)
	}
}

func (p *Patient) Validate() error {
	var c store.Checks
	c.Required("name", p.Name)
	c.Date("dateOfBirth", p.DateOfBirth, true)
	c.OneOf("gender", p.Gender, genders...)
	if p.BloodType != "" {
		c.OneOf("bloodType", p.BloodType, bloodTypes...)
	}
	c.OneOf("status", string(p.Status), string(PatientActive), string(PatientInactive))
	c.Date("registeredAt", p.RegisteredAt, true)
	c.NotBefore("registeredAt", p.RegisteredAt, p.DateOfBirth)
	return c.Err()
}

// Availability is when a doctor sees patients.
type Availability struct {
	Days  []string `json:"days"`
	Start string   `json:"start"`
	End   string   `json:"end"`
}

// Doctor is a physician on staff.
type Doctor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization"`
	Department     string       `json:"department"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Availability   Availability `json:"availability"`
	Status         DoctorStatus `json:"status"`
}

func (d *Doctor) GetID() string   { return d.ID }
func (d *Doctor) SetID(id string) { d.ID = id }

func (d *Doctor) Defaults(time.Time) {
	if d.Status == "" {
		d.Status = DoctorAvailable
	}
}

func (d *Doctor) Validate() error {
	var c store.Checks
	c.Required("name", d.Name)
	c.Required("specialization", d.Specialization)
	c.Required("department", d.Department)
	c.OneOf("status", string(d.Status),
		string(DoctorAvailable), string(DoctorBusy), string(DoctorOffDuty), string(DoctorOnLeave))
	for _, day := range d.Availability.Days {
		c.OneOf("availability.days", day, weekdays...)
	}
	if d.Availability.Start != "" || d.Availability.End != "" {
		c.Clock("availability.start", d.Availability.Start)
		c.Clock("availability.end", d.Availability.End)
		c.Check(d.Availability.Start < d.Availability.End, "availability.end", "must be after start")
	}
	return c.Err()
}

func (d *Doctor) Clone() Doctor {
	out := *d
	out.Availability.Days = append([]string(nil), d.Availability.Days...)
	return out
}

// AvailableOn reports whether the doctor works on weekday.
func (d Doctor) AvailableOn(weekday time.Weekday) bool {
	for _, day := range d.Availability.Days {
		if day == weekday.String() {
			return true
		}
	}
	return false
}
