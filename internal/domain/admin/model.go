package admin

import (
	"strings"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Status is the employment state of a staff member.
type Status string

const (
	StatusActive   Status = "active"
	StatusOnLeave  Status = "on-leave"
	StatusInactive Status = "inactive"
)

// Shift is a part of the working day.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
	ShiftNight     Shift = "night"
)

var (
	shifts   = []string{string(ShiftMorning), string(ShiftAfternoon), string(ShiftEvening), string(ShiftNight)}
	weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

// ScheduleEntry puts a staff member on a shift on a weekday.
type ScheduleEntry struct {
	Day   string `json:"day"`
	Shift Shift  `json:"shift"`
}

// StaffMember is a non-physician employee.
type StaffMember struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	JoinDate   string          `json:"joinDate"`
	Schedule   []ScheduleEntry `json:"schedule"`
	Status     Status          `json:"status"`
}

func (s *StaffMember) GetID() string   { return s.ID }
func (s *StaffMember) SetID(id string) { s.ID = id }

func (s *StaffMember) Defaults(now time.Time) {
	if s.Status == "" {
		s.Status = StatusActive
	}
	if s.JoinDate == "" {
		s.JoinDate = now.Format(store.DateLayout)
	}
	if s.Schedule == nil {
		s.Schedule = []ScheduleEntry{}
	}
}

func (s *StaffMember) Validate() error {
	var c store.Checks
	c.Required("name", s.Name)
	c.Required("role", s.Role)
	c.Required("department", s.Department)
	c.Check(s.Email == "" || strings.Contains(s.Email, "@"), "email", "must be an email address")
	c.Date("joinDate", s.JoinDate, true)
	seen := map[ScheduleEntry]bool{}
	for _, e := range s.Schedule {
		c.OneOf("schedule.day", e.Day, weekdays...)
		c.OneOf("schedule.shift", string(e.Shift), shifts...)
		c.Check(!seen[e], "schedule", "lists %s %s twice", e.Day, e.Shift)
		seen[e] = true
	}
	c.OneOf("status", string(s.Status), string(StatusActive), string(StatusOnLeave), string(StatusInactive))
	return c.Err()
}

func (s *StaffMember) Clone() StaffMember {
	out := *s
	out.Schedule = append([]ScheduleEntry(nil), s.Schedule...)
	return out
}

// WorksOn returns the shifts the member works on weekday.
func (s StaffMember) WorksOn(weekday time.Weekday) []Shift {
	var out []Shift
	for _, e := range s.Schedule {
		if e.Day == weekday.String() {
			out = append(out, e.Shift)
		}
	}
	return out
}
