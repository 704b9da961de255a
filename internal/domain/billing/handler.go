package billing

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
	g := api.Group("/invoices", gate.Require(auth.ResourceInvoices))
	g.GET("", h.ListInvoices)
	g.POST("", h.CreateInvoice)
	g.GET("/:id", h.GetInvoice)
	g.PATCH("/:id", h.UpdateInvoice)
	g.POST("/:id/payments", h.RecordPayment)
	g.POST("/:id/cancel", h.CancelInvoice)
	g.DELETE("/:id", h.DeleteInvoice)

	api.GET("/stats/billing", h.Stats, gate.Require(auth.ResourceBilling))
	api.POST("/billing/overdue", h.MarkOverdue, gate.Require(auth.ResourceBilling))
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	inv, err := rest.Bind[Invoice](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateInvoice(c.Request().Context(), inv)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	inv, err := h.svc.GetInvoice(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListInvoices(c echo.Context) error {
	f := Filter{
		PatientID: c.QueryParam("patientId"),
		Status:    Status(rest.Query(c, "status")),
		From:      c.QueryParam("from"),
		To:        c.QueryParam("to"),
	}
	return rest.List(c, h.svc.ListInvoices(f))
}

func (h *Handler) UpdateInvoice(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	inv, err := h.svc.UpdateInvoice(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var req struct {
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	inv, err := h.svc.RecordPayment(c.Request().Context(), c.Param("id"), req.Amount, req.Method)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) CancelInvoice(c echo.Context) error {
	inv, err := h.svc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) DeleteInvoice(c echo.Context) error {
	removed, err := h.svc.DeleteInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkOverdue(c echo.Context) error {
	changed, err := h.svc.MarkOverdue(c.Request().Context())
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, changed)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}
