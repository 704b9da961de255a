package admin

import (
	"context"
	"strings"
	"time"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Service struct {
	staff StaffRepository
}

func NewService(staff StaffRepository) *Service {
	return &Service{staff: staff}
}

// Filter narrows a staff listing. Department and Role compare
// case-insensitively; Query matches name or email.
type Filter struct {
	Department string
	Role       string
	Status     Status
	Query      string
}

func (f Filter) match(s StaffMember) bool {
	if f.Department != "" && !strings.EqualFold(s.Department, f.Department) {
		return false
	}
	if f.Role != "" && !strings.EqualFold(s.Role, f.Role) {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" ||
		strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Email), q)
}

func (s *Service) CreateStaff(ctx context.Context, m StaffMember) (StaffMember, error) {
	return s.staff.Add(ctx, m)
}

func (s *Service) GetStaff(id string) (StaffMember, error) {
	return s.staff.Get(id)
}

func (s *Service) ListStaff(f Filter) []StaffMember {
	return s.staff.Filter(f.match)
}

func (s *Service) UpdateStaff(ctx context.Context, id string, patch store.Patch) (StaffMember, error) {
	return s.staff.Update(ctx, id, patch)
}

func (s *Service) SetStatus(ctx context.Context, id string, status Status) (StaffMember, error) {
	return s.staff.Update(ctx, id, store.MustPatch(map[string]any{"status": status}))
}

func (s *Service) DeleteStaff(ctx context.Context, id string) (bool, error) {
	return s.staff.Delete(ctx, id)
}

// RosterEntry is one active staff member working a shift.
type RosterEntry struct {
	StaffID    string `json:"staffId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Shift      Shift  `json:"shift"`
}

// Roster lists who is on shift on weekday, grouped by shift in the order
// morning, afternoon, evening, night. Staff on leave or inactive are left
// out.
func (s *Service) Roster(weekday time.Weekday) []RosterEntry {
	byShift := map[Shift][]RosterEntry{}
	for _, m := range s.staff.All() {
		if m.Status != StatusActive {
			continue
		}
		for _, sh := range m.WorksOn(weekday) {
			byShift[sh] = append(byShift[sh], RosterEntry{
				StaffID: m.ID, Name: m.Name, Role: m.Role, Department: m.Department, Shift: sh,
			})
		}
	}
	out := []RosterEntry{}
	for _, sh := range shifts {
		out = append(out, byShift[Shift(sh)]...)
	}
	return out
}

// Departments counts staff per department in first-seen order.
func (s *Service) Departments() []DepartmentCount {
	idx := map[string]int{}
	var out []DepartmentCount
	for _, m := range s.staff.All() {
		i, ok := idx[m.Department]
		if !ok {
			i = len(out)
			idx[m.Department] = i
			out = append(out, DepartmentCount{Department: m.Department})
		}
		out[i].Count++
	}
	return out
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}
