package identity

import (
	"net/http"
	"strings"
	"time"

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
	patients := api.Group("/patients", gate.Require(auth.ResourcePatients))
	patients.GET("", h.ListPatients)
	patients.POST("", h.CreatePatient)
	patients.GET("/:id", h.GetPatient)
	patients.PATCH("/:id", h.UpdatePatient)
	patients.DELETE("/:id", h.DeletePatient)

	doctors := api.Group("/doctors", gate.Require(auth.ResourceDoctors))
	doctors.GET("", h.ListDoctors)
	doctors.POST("", h.CreateDoctor)
	doctors.GET("/departments", h.ListDepartments)
	doctors.GET("/:id", h.GetDoctor)
	doctors.PATCH("/:id", h.UpdateDoctor)
	doctors.PUT("/:id/status", h.SetDoctorStatus)
	doctors.DELETE("/:id", h.DeleteDoctor)
}

// -- Patient Handlers --

func (h *Handler) CreatePatient(c echo.Context) error {
	p, err := rest.Bind[Patient](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreatePatient(c.Request().Context(), p)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	f := PatientFilter{
		Query:  c.QueryParam("q"),
		Status: PatientStatus(rest.Query(c, "status")),
		Gender: rest.Query(c, "gender"),
	}
	return rest.List(c, h.svc.ListPatients(f))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	removed, err := h.svc.DeletePatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Doctor Handlers --

func (h *Handler) CreateDoctor(c echo.Context) error {
	d, err := rest.Bind[Doctor](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateDoctor(c.Request().Context(), d)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.svc.GetDoctor(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	f := DoctorFilter{
		Query:          c.QueryParam("q"),
		Department:     c.QueryParam("department"),
		Specialization: c.QueryParam("specialization"),
		Status:         DoctorStatus(rest.Query(c, "status")),
	}
	if day := c.QueryParam("day"); day != "" {
		wd, ok := parseWeekday(day)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day")
		}
		f.Day = &wd
	}
	return rest.List(c, h.svc.ListDoctors(f))
}

func (h *Handler) ListDepartments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Departments())
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	d, err := h.svc.UpdateDoctor(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SetDoctorStatus(c echo.Context) error {
	var req struct {
		Status DoctorStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := h.svc.SetDoctorStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	removed, err := h.svc.DeleteDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) || strings.EqualFold(d.String()[:3], s) {
			return d, true
		}
	}
	return 0, false
}
