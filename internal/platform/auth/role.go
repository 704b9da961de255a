package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Role is one of the closed set of hospital roles.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDoctor        Role = "doctor"
	RoleNurse         Role = "nurse"
	RolePatient       Role = "patient"
	RoleReceptionist  Role = "receptionist"
	RolePharmacist    Role = "pharmacist"
	RoleLabTechnician Role = "lab_technician"
	RoleFinance       Role = "finance"
)

// ErrUnknownRole is returned by ParseRole for names outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{
		RoleAdmin, RoleDoctor, RoleNurse, RolePatient,
		RoleReceptionist, RolePharmacist, RoleLabTechnician, RoleFinance,
	}
}

// Valid reports whether r is part of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RolePatient,
		RoleReceptionist, RolePharmacist, RoleLabTechnician, RoleFinance:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Label is the human-readable role name, e.g. "Lab Technician".
func (r Role) Label() string {
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ParseRole accepts a role name case-insensitively. "lab-technician" is
// accepted as an alias of lab_technician.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}
