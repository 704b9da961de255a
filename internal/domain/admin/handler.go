package admin

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
	g := api.Group("/staff", gate.Require(auth.ResourceStaff))
	g.GET("", h.ListStaff)
	g.POST("", h.CreateStaff)
	g.GET("/roster", h.Roster)
	g.GET("/departments", h.ListDepartments)
	g.GET("/:id", h.GetStaff)
	g.PATCH("/:id", h.UpdateStaff)
	g.PUT("/:id/status", h.SetStatus)
	g.DELETE("/:id", h.DeleteStaff)
}

func (h *Handler) CreateStaff(c echo.Context) error {
	m, err := rest.Bind[StaffMember](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateStaff(c.Request().Context(), m)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetStaff(c echo.Context) error {
	m, err := h.svc.GetStaff(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListStaff(c echo.Context) error {
	f := Filter{
		Department: c.QueryParam("department"),
		Role:       c.QueryParam("role"),
		Status:     Status(rest.Query(c, "status")),
		Query:      c.QueryParam("q"),
	}
	return rest.List(c, h.svc.ListStaff(f))
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	m, err := h.svc.UpdateStaff(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) SetStatus(c echo.Context) error {
	var req struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	m, err := h.svc.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteStaff(c echo.Context) error {
	removed, err := h.svc.DeleteStaff(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Roster shows who works on ?day=, defaulting to today.
func (h *Handler) Roster(c echo.Context) error {
	day := time.Now().Weekday()
	if q := c.QueryParam("day"); q != "" {
		wd, ok := parseWeekday(q)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day")
		}
		day = wd
	}
	return c.JSON(http.StatusOK, h.svc.Roster(day))
}

func (h *Handler) ListDepartments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Departments())
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) || strings.EqualFold(d.String()[:3], s) {
			return d, true
		}
	}
	return 0, false
}
