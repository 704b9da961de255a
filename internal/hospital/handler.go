package hospital

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/admin"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/billing"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/diagnostics"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/identity"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/medication"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/scheduling"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/domain/supply"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/rest"
)

// RegisterRoutes mounts every entity handler and the cross-collection
// routes on api, each behind the gate for its resource.
func (s *Store) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	identity.NewHandler(identity.NewService(s.Patients, s.Doctors, s)).RegisterRoutes(api, gate)
	scheduling.NewHandler(scheduling.NewService(s.Appointments)).RegisterRoutes(api, gate)
	medication.NewHandler(medication.NewService(s.Medications)).RegisterRoutes(api, gate)
	diagnostics.NewHandler(diagnostics.NewService(s.LabTests)).RegisterRoutes(api, gate)
	billing.NewHandler(billing.NewService(s.Invoices)).RegisterRoutes(api, gate)
	supply.NewHandler(supply.NewService(s.Inventory)).RegisterRoutes(api, gate)
	admin.NewHandler(admin.NewService(s.Staff)).RegisterRoutes(api, gate)
	NewHandler(s).RegisterRoutes(api, gate)
}

// Handler serves the queries that span collections.
type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	api.GET("/patients/:id/appointments", h.PatientAppointments, gate.Require(auth.ResourceAppointments))
	api.GET("/patients/:id/medications", h.PatientMedications, gate.Require(auth.ResourceMedications))
	api.GET("/patients/:id/lab-tests", h.PatientLabTests, gate.Require(auth.ResourceLabTests))
	api.GET("/patients/:id/invoices", h.PatientInvoices, gate.Require(auth.ResourceInvoices))
	api.GET("/doctors/:id/appointments", h.DoctorAppointments, gate.Require(auth.ResourceAppointments))

	api.GET("/stats", h.Stats, gate.Require(auth.ResourceReports))
	api.GET("/integrity", h.CheckReferences, gate.Require(auth.ResourceReports))
}

func (h *Handler) PatientAppointments(c echo.Context) error {
	id, err := h.patientID(c)
	if err != nil {
		return err
	}
	return rest.List(c, h.store.AppointmentsByPatient(id))
}

func (h *Handler) PatientMedications(c echo.Context) error {
	id, err := h.patientID(c)
	if err != nil {
		return err
	}
	return rest.List(c, h.store.MedicationsByPatient(id))
}

func (h *Handler) PatientLabTests(c echo.Context) error {
	id, err := h.patientID(c)
	if err != nil {
		return err
	}
	return rest.List(c, h.store.LabTestsByPatient(id))
}

func (h *Handler) PatientInvoices(c echo.Context) error {
	id, err := h.patientID(c)
	if err != nil {
		return err
	}
	return rest.List(c, h.store.InvoicesByPatient(id))
}

func (h *Handler) DoctorAppointments(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.store.Doctors.Get(id); err != nil {
		return rest.Error(err)
	}
	return rest.List(c, h.store.AppointmentsByDoctor(id))
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Stats())
}

func (h *Handler) CheckReferences(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.CheckReferences())
}

// patientID returns the :id parameter, or a 404 when no such patient exists.
func (h *Handler) patientID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := h.store.Patients.Get(id); err != nil {
		return "", rest.Error(err)
	}
	return id, nil
}

var _ identity.Remover = (*Store)(nil)
