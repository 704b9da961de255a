package scheduling

import (
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var statuses = []string{
	string(StatusScheduled), string(StatusCompleted), string(StatusCancelled), string(StatusNoShow),
}

// DefaultDuration is used when an appointment is booked without one.
const DefaultDuration = 30

// Appointment books a patient with a doctor.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Duration  int       `json:"duration"`
	Type      string    `json:"type"`
	Notes     string    `json:"notes,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) GetID() string   { return a.ID }
func (a *Appointment) SetID(id string) { a.ID = id }

func (a *Appointment) Defaults(time.Time) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Duration == 0 {
		a.Duration = DefaultDuration
	}
}

// Stamp sets createdAt once and moves updatedAt forward, never back.
func (a *Appointment) Stamp(now time.Time, created bool) {
	if created {
		a.CreatedAt = now
		a.UpdatedAt = now
		return
	}
	if now.After(a.UpdatedAt) {
		a.UpdatedAt = now
	}
}

func (a *Appointment) Validate() error {
	var c store.Checks
	c.Required("patientId", a.PatientID)
	c.Required("doctorId", a.DoctorID)
	c.Date("date", a.Date, true)
	c.Clock("time", a.Time)
	c.Positive("duration", float64(a.Duration))
	c.Required("type", a.Type)
	c.OneOf("status", string(a.Status), statuses...)
	return c.Err()
}

// Start returns the appointment's start in loc.
func (a Appointment) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(store.DateLayout+" "+store.TimeLayout, a.Date+" "+a.Time, loc)
}

// Stats counts appointments by status.
type Stats struct {
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"noShow"`
	Total     int `json:"total"`
}

// Summarize computes Stats over appts.
func Summarize(appts []Appointment) Stats {
	s := Stats{Total: len(appts)}
	for _, a := range appts {
		switch a.Status {
		case StatusScheduled:
			s.Scheduled++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		case StatusNoShow:
			s.NoShow++
		}
	}
	return s
}
