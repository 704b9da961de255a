package medication

import (
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is where a prescription stands.
type Status string

const (
	StatusActive       Status = "active"
	StatusCompleted    Status = "completed"
	StatusDiscontinued Status = "discontinued"
)

// Medication is a drug prescribed to a patient by a doctor.
type Medication struct {
	ID             string `json:"id"`
	PatientID      string `json:"patientId"`
	Name           string `json:"name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate,omitempty"`
	Status         Status `json:"status"`
	PrescribedByID string `json:"prescribedById"`
	Notes          string `json:"notes,omitempty"`
}

func (m *Medication) GetID() string   { return m.ID }
func (m *Medication) SetID(id string) { m.ID = id }

// Defaults starts a prescription active from today.
func (m *Medication) Defaults(now time.Time) {
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.StartDate == "" {
		m.StartDate = now.Format(store.DateLayout)
	}
}

func (m *Medication) Validate() error {
	var c store.Checks
	c.Required("patientId", m.PatientID)
	c.Required("name", m.Name)
	c.Required("dosage", m.Dosage)
	c.Required("frequency", m.Frequency)
	c.Required("prescribedById", m.PrescribedByID)
	c.Date("startDate", m.StartDate, true)
	c.Date("endDate", m.EndDate, false)
	c.NotBefore("endDate", m.EndDate, m.StartDate)
	c.OneOf("status", string(m.Status),
		string(StatusActive), string(StatusCompleted), string(StatusDiscontinued))
	return c.Err()
}

// ActiveOn reports whether the medication is being taken on date.
func (m Medication) ActiveOn(date string) bool {
	if m.Status != StatusActive || date < m.StartDate {
		return false
	}
	return m.EndDate == "" || date <= m.EndDate
}
