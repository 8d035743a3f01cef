package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/klinikos/klinikos/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings, auth.RequireRole("hospital_admin"))
}

func (h *Handler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Get(c.Request().Context()))
}

func (h *Handler) UpdateSettings(c echo.Context) error {
	var upd Update
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Apply(c.Request().Context(), upd))
}
