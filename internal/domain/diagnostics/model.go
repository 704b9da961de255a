package diagnostics

import (
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is the progress of a lab test.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var statuses = []string{
	string(StatusPending), string(StatusInProgress), string(StatusCompleted), string(StatusCancelled),
}

// LabTest is a test ordered for a patient, and its result once known.
type LabTest struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	TestName    string `json:"testName"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Result      string `json:"result,omitempty"`
	NormalRange string `json:"normalRange,omitempty"`
	Status      Status `json:"status"`
	OrderedByID string `json:"orderedById"`
	Notes       string `json:"notes,omitempty"`
}

func (l *LabTest) GetID() string   { return l.ID }
func (l *LabTest) SetID(id string) { l.ID = id }

func (l *LabTest) Defaults(now time.Time) {
	if l.Status == "" {
		l.Status = StatusPending
	}
	if l.Date == "" {
		l.Date = now.Format(store.DateLayout)
	}
}

func (l *LabTest) Validate() error {
	var c store.Checks
	c.Required("patientId", l.PatientID)
	c.Required("testName", l.TestName)
	c.Required("category", l.Category)
	c.Required("orderedById", l.OrderedByID)
	c.Date("date", l.Date, true)
	c.OneOf("status", string(l.Status), statuses...)
	if l.Status == StatusCompleted {
		c.Required("result", l.Result)
	}
	return c.Err()
}

// Finished reports whether the test will not change state again.
func (l LabTest) Finished() bool {
	return l.Status == StatusCompleted || l.Status == StatusCancelled
}
