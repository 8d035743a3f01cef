package emergency

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/klinikos/klinikos/internal/platform/auth"
	"github.com/klinikos/klinikos/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("hospital_admin", "doctor", "nurse", "emergency"))
	g.GET("/emergency/cases", h.ListCases)
	g.GET("/emergency/cases/:id", h.GetCase)
	g.POST("/emergency/cases", h.CreateCase)
	g.PUT("/emergency/cases/:id", h.UpdateCase)
	g.POST("/emergency/cases/:id/vitals", h.RecordVitals)
	g.DELETE("/emergency/cases/:id", h.DeleteCase)
}

func (h *Handler) CreateCase(c echo.Context) error {
	var ec Case
	if err := c.Bind(&ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &ec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ec)
}

func (h *Handler) GetCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "emergency case not found")
	}
	return c.JSON(http.StatusOK, ec)
}

func (h *Handler) ListCases(c echo.Context) error {
	cases := h.svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	params := pagination.FromContext(c)
	page := pagination.Slice(cases, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(cases), params.Limit, params.Offset))
}

func (h *Handler) UpdateCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd CaseUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), id, upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RecordVitals(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var v VitalSign
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordVitals(c.Request().Context(), id, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.Delete(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
