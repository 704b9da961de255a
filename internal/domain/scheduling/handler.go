package scheduling

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/rest"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	g := api.Group("/appointments", gate.Require(auth.ResourceAppointments))
	g.GET("", h.ListAppointments)
	g.POST("", h.CreateAppointment)
	g.GET("/:id", h.GetAppointment)
	g.PATCH("/:id", h.UpdateAppointment)
	g.PUT("/:id/status", h.SetStatus)
	g.DELETE("/:id", h.DeleteAppointment)

	api.GET("/stats/appointments", h.Stats, gate.Require(auth.ResourceDashboard))
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	a, err := rest.Bind[Appointment](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateAppointment(c.Request().Context(), a)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.GetAppointment(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, a)
}

// ListAppointments lists in collection order, or by date and time when
// sort=agenda.
func (h *Handler) ListAppointments(c echo.Context) error {
	f := Filter{
		PatientID: c.QueryParam("patientId"),
		DoctorID:  c.QueryParam("doctorId"),
		Status:    Status(rest.Query(c, "status")),
		From:      c.QueryParam("from"),
		To:        c.QueryParam("to"),
	}
	if rest.Query(c, "sort") == "agenda" {
		return rest.List(c, h.svc.Agenda(f))
	}
	return rest.List(c, h.svc.ListAppointments(f))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) SetStatus(c echo.Context) error {
	var req struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := h.svc.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	removed, err := h.svc.DeleteAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}
