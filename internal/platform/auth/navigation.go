package auth

// NavItem is one link of the navigation menu.
type NavItem struct {
	Label    string   `json:"label"`
	Path     string   `json:"path"`
	Resource Resource `json:"resource"`
}

// NavSection groups related links under a title.
type NavSection struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

var navigation = []NavSection{
	{Title: "Overview", Items: []NavItem{
		{Label: "Dashboard", Path: "/", Resource: ResourceDashboard},
	}},
	{Title: "Clinical", Items: []NavItem{
		{Label: "Patients", Path: "/patients", Resource: ResourcePatients},
		{Label: "Patient Records", Path: "/patient-records", Resource: ResourcePatientRecords},
		{Label: "Doctors", Path: "/doctors", Resource: ResourceDoctors},
		{Label: "Appointments", Path: "/appointments", Resource: ResourceAppointments},
		{Label: "Medications", Path: "/medications", Resource: ResourceMedications},
		{Label: "Lab Tests", Path: "/lab-tests", Resource: ResourceLabTests},
		{Label: "Lab Results", Path: "/lab-results", Resource: ResourceLabResults},
	}},
	{Title: "Operations", Items: []NavItem{
		{Label: "Pharmacy", Path: "/pharmacy", Resource: ResourcePharmacy},
		{Label: "Inventory", Path: "/inventory", Resource: ResourceInventory},
		{Label: "Staff", Path: "/staff", Resource: ResourceStaff},
	}},
	{Title: "Finance", Items: []NavItem{
		{Label: "Billing", Path: "/billing", Resource: ResourceBilling},
		{Label: "Invoices", Path: "/invoices", Resource: ResourceInvoices},
		{Label: "Reports", Path: "/reports", Resource: ResourceReports},
	}},
	{Title: "Account", Items: []NavItem{
		{Label: "Profile", Path: "/profile", Resource: ResourceProfile},
		{Label: "Settings", Path: "/settings", Resource: ResourceSettings},
	}},
}

// Navigation returns the menu as s may see it: every entry the gate would
// allow, in declaration order, with empty sections dropped. Sessions that
// are not authenticated see nothing.
func Navigation(s Session) []NavSection {
	out := []NavSection{}
	if !s.Authenticated() {
		return out
	}
	for _, sec := range navigation {
		var items []NavItem
		for _, it := range sec.Items {
			if decide(s, it.Resource, it.Path).Allowed() {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			out = append(out, NavSection{Title: sec.Title, Items: items})
		}
	}
	return out
}
