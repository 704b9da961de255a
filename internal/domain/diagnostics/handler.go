package diagnostics

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
	tests := api.Group("/lab-tests", gate.Require(auth.ResourceLabTests))
	tests.GET("", h.ListLabTests)
	tests.POST("", h.CreateLabTest)
	tests.GET("/:id", h.GetLabTest)
	tests.PATCH("/:id", h.UpdateLabTest)
	tests.PUT("/:id/result", h.RecordResult)
	tests.DELETE("/:id", h.DeleteLabTest)

	api.GET("/lab-results", h.ListResults, gate.Require(auth.ResourceLabResults))
}

func (h *Handler) CreateLabTest(c echo.Context) error {
	l, err := rest.Bind[LabTest](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateLabTest(c.Request().Context(), l)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetLabTest(c echo.Context) error {
	l, err := h.svc.GetLabTest(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListLabTests(c echo.Context) error {
	f := Filter{
		PatientID:   c.QueryParam("patientId"),
		OrderedByID: c.QueryParam("orderedById"),
		Status:      Status(rest.Query(c, "status")),
		Category:    c.QueryParam("category"),
	}
	return rest.List(c, h.svc.ListLabTests(f))
}

func (h *Handler) ListResults(c echo.Context) error {
	return rest.List(c, h.svc.Results(c.QueryParam("patientId")))
}

func (h *Handler) UpdateLabTest(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	l, err := h.svc.UpdateLabTest(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) RecordResult(c echo.Context) error {
	var req struct {
		Result string `json:"result"`
		Notes  string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	l, err := h.svc.RecordResult(c.Request().Context(), c.Param("id"), req.Result, req.Notes)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) DeleteLabTest(c echo.Context) error {
	removed, err := h.svc.DeleteLabTest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "lab test not found")
	}
	return c.NoContent(http.StatusNoContent)
}
