package scheduling

import (
	"net/http"
	"time"

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
	read := api.Group("", auth.RequireRole("hospital_admin", "doctor", "nurse", "reception"))
	read.GET("/appointments", h.List)
	read.GET("/appointments/calendar", h.Calendar)
	read.GET("/appointments/:id", h.Get)

	write := api.Group("", auth.RequireRole("hospital_admin", "doctor", "reception"))
	write.POST("/appointments", h.Create)
	write.PUT("/appointments/:id", h.Update)
	write.DELETE("/appointments/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	appts := h.svc.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	params := pagination.FromContext(c)
	page := pagination.Slice(appts, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(appts), params.Limit, params.Offset))
}

// Calendar returns the appointments in the day/week/month window around the
// given date (query params "date" RFC3339 or YYYY-MM-DD, "mode").
func (h *Handler) Calendar(c echo.Context) error {
	ref := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
		ref = parsed
	}

	mode := WindowMode(c.QueryParam("mode"))
	switch mode {
	case WindowDay, WindowWeek, WindowMonth:
	case "":
		mode = WindowDay
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mode")
	}

	return c.JSON(http.StatusOK, h.svc.ListInWindow(c.Request().Context(), ref, mode))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd AppointmentUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), id, upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.Delete(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
