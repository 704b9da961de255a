package medication

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
	g := api.Group("/medications", gate.Require(auth.ResourceMedications))
	g.GET("", h.ListMedications)
	g.POST("", h.CreateMedication)
	g.GET("/:id", h.GetMedication)
	g.PATCH("/:id", h.UpdateMedication)
	g.POST("/:id/discontinue", h.Discontinue)
	g.DELETE("/:id", h.DeleteMedication)
}

func (h *Handler) CreateMedication(c echo.Context) error {
	m, err := rest.Bind[Medication](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateMedication(c.Request().Context(), m)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetMedication(c echo.Context) error {
	m, err := h.svc.GetMedication(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	f := Filter{
		PatientID:      c.QueryParam("patientId"),
		PrescribedByID: c.QueryParam("prescribedById"),
		Status:         Status(rest.Query(c, "status")),
		Query:          c.QueryParam("q"),
	}
	return rest.List(c, h.svc.ListMedications(f))
}

func (h *Handler) UpdateMedication(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	m, err := h.svc.UpdateMedication(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Discontinue(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
	}
	m, err := h.svc.Discontinue(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	removed, err := h.svc.DeleteMedication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.NoContent(http.StatusNoContent)
}
