package supply

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/rest"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, gate *auth.Gate) {
	g := api.Group("/inventory", gate.Require(auth.ResourceInventory))
	g.GET("", h.ListItems)
	g.POST("", h.CreateItem)
	g.GET("/reorder", h.ListReorder)
	g.GET("/:id", h.GetItem)
	g.PATCH("/:id", h.UpdateItem)
	g.POST("/:id/adjust", h.AdjustItem)
	g.DELETE("/:id", h.DeleteItem)

	api.GET("/stats/inventory", h.Stats, gate.Require(auth.ResourceInventory))
}

func (h *Handler) CreateItem(c echo.Context) error {
	it, err := rest.Bind[Item](c)
	if err != nil {
		return err
	}
	created, err := h.svc.CreateItem(c.Request().Context(), it)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetItem(c echo.Context) error {
	it, err := h.svc.GetItem(c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, it)
}

// ListItems lists inventory; expiringBy=YYYY-MM-DD keeps items expiring by
// that date.
func (h *Handler) ListItems(c echo.Context) error {
	if by := c.QueryParam("expiringBy"); by != "" {
		var chk store.Checks
		chk.Date("expiringBy", by, true)
		if err := chk.Err(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return rest.List(c, h.svc.ExpiringBy(by))
	}
	f := Filter{
		Category: c.QueryParam("category"),
		Status:   Status(rest.Query(c, "status")),
		Query:    c.QueryParam("q"),
	}
	return rest.List(c, h.svc.ListItems(f))
}

func (h *Handler) ListReorder(c echo.Context) error {
	return rest.List(c, h.svc.NeedsReorder())
}

func (h *Handler) UpdateItem(c echo.Context) error {
	patch, err := rest.BindPatch(c)
	if err != nil {
		return err
	}
	it, err := h.svc.UpdateItem(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) AdjustItem(c echo.Context) error {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	it, err := h.svc.Adjust(c.Request().Context(), c.Param("id"), req.Delta)
	if err != nil {
		return rest.Error(err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	removed, err := h.svc.DeleteItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rest.Error(err)
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}
