package auth

import (
	"errors"
	"fmt"
)

// Resource names a navigable area of the application.
type Resource string

const (
	ResourceDashboard      Resource = "dashboard"
	ResourcePatients       Resource = "patients"
	ResourcePatientRecords Resource = "patient_records"
	ResourceDoctors        Resource = "doctors"
	ResourceAppointments   Resource = "appointments"
	ResourceMedications    Resource = "medications"
	ResourcePharmacy       Resource = "pharmacy"
	ResourceLabTests       Resource = "lab_tests"
	ResourceLabResults     Resource = "lab_results"
	ResourceBilling        Resource = "billing"
	ResourceInvoices       Resource = "invoices"
	ResourceInventory      Resource = "inventory"
	ResourceStaff          Resource = "staff"
	ResourceReports        Resource = "reports"
	ResourceSettings       Resource = "settings"
	ResourceProfile        Resource = "profile"
)

// ErrUnknownResource is returned by Lookup for resources that were never
// registered.
var ErrUnknownResource = errors.New("unknown resource")

// Rule is the access rule of one resource. A nil Allowed list means any
// authenticated role may enter.
type Rule struct {
	Resource Resource
	Allowed  []Role
}

// Restricted reports whether the rule declares an allowlist.
func (r Rule) Restricted() bool { return r.Allowed != nil }

// Permits reports whether role is on the allowlist. Admin override is the
// gate's concern, not the rule's.
func (r Rule) Permits(role Role) bool {
	if !r.Restricted() {
		return true
	}
	for _, a := range r.Allowed {
		if a == role {
			return true
		}
	}
	return false
}

var rules = []Rule{
	{Resource: ResourceDashboard},
	{Resource: ResourcePatients, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist}},
	{Resource: ResourcePatientRecords, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RolePatient}},
	{Resource: ResourceDoctors, Allowed: []Role{RoleAdmin, RoleReceptionist, RoleNurse}},
	{Resource: ResourceAppointments, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RolePatient}},
	{Resource: ResourceMedications, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RolePharmacist}},
	{Resource: ResourcePharmacy, Allowed: []Role{RoleAdmin, RolePharmacist}},
	{Resource: ResourceLabTests, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleLabTechnician}},
	{Resource: ResourceLabResults, Allowed: []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleLabTechnician, RolePatient}},
	{Resource: ResourceBilling, Allowed: []Role{RoleAdmin, RoleFinance}},
	{Resource: ResourceInvoices, Allowed: []Role{RoleAdmin, RoleFinance, RoleReceptionist}},
	{Resource: ResourceInventory, Allowed: []Role{RoleAdmin, RolePharmacist, RoleNurse}},
	{Resource: ResourceStaff, Allowed: []Role{RoleAdmin}},
	{Resource: ResourceReports, Allowed: []Role{RoleAdmin, RoleFinance}},
	{Resource: ResourceSettings, Allowed: []Role{RoleAdmin}},
	{Resource: ResourceProfile},
}

var ruleIndex = func() map[Resource]Rule {
	m := make(map[Resource]Rule, len(rules))
	for _, r := range rules {
		m[r.Resource] = r
	}
	return m
}()

// Lookup returns the registered rule for resource.
func Lookup(resource Resource) (Rule, error) {
	r, ok := ruleIndex[resource]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return r, nil
}

// Rules returns every registered rule in declaration order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
