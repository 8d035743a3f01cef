package labs

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
	read := api.Group("", auth.RequireRole("hospital_admin", "doctor", "nurse", "lab_technician"))
	read.GET("/lab-orders", h.ListOrders)
	read.GET("/lab-orders/:id", h.GetOrder)

	order := api.Group("", auth.RequireRole("hospital_admin", "doctor"))
	order.POST("/lab-orders", h.CreateOrder)
	order.PUT("/lab-orders/:id", h.UpdateOrder)
	order.DELETE("/lab-orders/:id", h.DeleteOrder)

	report := api.Group("", auth.RequireRole("hospital_admin", "lab_technician"))
	report.PUT("/lab-orders/:id/tests/:testId", h.UpdateTestResult)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var o LabOrder
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab order not found")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOrders(c echo.Context) error {
	orders := h.svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("priority"), c.QueryParam("q"))
	params := pagination.FromContext(c)
	page := pagination.Slice(orders, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(orders), params.Limit, params.Offset))
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd OrderUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), id, upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type testResultRequest struct {
	Result         string `json:"result"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
	Status         string `json:"status"`
}

func (h *Handler) UpdateTestResult(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	testID, err := uuid.Parse(c.Param("testId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid test id")
	}
	var req testResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateTestResult(c.Request().Context(), orderID, testID, req.Result, req.Unit, req.ReferenceRange, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.Delete(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
