package medication

import (
	"errors"
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
	read := api.Group("", auth.RequireRole("hospital_admin", "doctor", "nurse", "pharmacist"))
	read.GET("/medications", h.ListRegistry)
	read.GET("/medications/:id", h.GetRegistryItem)
	read.GET("/prescriptions", h.ListPrescriptions)
	read.GET("/prescriptions/:id", h.GetPrescription)
	read.GET("/patients/:patientId/prescriptions", h.ListPrescriptionsByPatient)

	write := api.Group("", auth.RequireRole("hospital_admin", "pharmacist"))
	write.POST("/medications", h.CreateRegistryItem)
	write.PUT("/medications/:id", h.UpdateRegistryItem)
	write.DELETE("/medications/:id", h.DeleteRegistryItem)

	prescribe := api.Group("", auth.RequireRole("hospital_admin", "doctor"))
	prescribe.POST("/prescriptions", h.Assign)
	prescribe.PUT("/prescriptions/:id", h.UpdatePrescription)
	prescribe.POST("/prescriptions/:id/discontinue", h.Discontinue)
	prescribe.DELETE("/prescriptions/:id", h.DeletePrescription)
}

func (h *Handler) CreateRegistryItem(c echo.Context) error {
	var item RegistryItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRegistryItem(c.Request().Context(), &item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetRegistryItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.svc.GetRegistryItem(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) ListRegistry(c echo.Context) error {
	items := h.svc.ListRegistry(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	params := pagination.FromContext(c)
	page := pagination.Slice(items, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(items), params.Limit, params.Offset))
}

func (h *Handler) UpdateRegistryItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd RegistryItemUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateRegistryItem(c.Request().Context(), id, upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteRegistryItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.DeleteRegistryItem(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Assign(c echo.Context) error {
	var in AssignInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Assign(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrOutOfStock) {
			return echo.NewHTTPError(http.StatusConflict, "medication out of stock")
		}
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "medication not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	prescriptions := h.svc.ListPrescriptions(c.Request().Context())
	params := pagination.FromContext(c)
	page := pagination.Slice(prescriptions, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(prescriptions), params.Limit, params.Offset))
}

func (h *Handler) ListPrescriptionsByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return c.JSON(http.StatusOK, h.svc.ListPrescriptionsByPatient(c.Request().Context(), patientID))
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd PrescriptionUpdate
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdatePrescription(c.Request().Context(), id, upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Discontinue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.Discontinue(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.svc.DeletePrescription(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
