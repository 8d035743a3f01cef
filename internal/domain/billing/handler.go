package billing

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/klinikos/klinikos/internal/platform/auth"
	"github.com/klinikos/klinikos/pkg/pagination"
)

// LetterheadProvider supplies the hospital identity block for printable
// invoices. Implemented by the settings service.
type LetterheadProvider interface {
	Letterhead(ctx context.Context) Letterhead
}

type Handler struct {
	svc        *Service
	letterhead LetterheadProvider
}

func NewHandler(svc *Service, letterhead LetterheadProvider) *Handler {
	return &Handler{svc: svc, letterhead: letterhead}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("hospital_admin", "billing"))
	g.GET("/invoices", h.List)
	g.GET("/invoices/groups", h.Groups)
	g.GET("/invoices/stats", h.Stats)
	g.GET("/invoices/:id", h.Get)
	g.GET("/invoices/:id/html", h.Html)
	g.POST("/invoices", h.Create)
	g.POST("/invoices/from-prescriptions", h.BuildFromPrescriptions)
	g.PUT("/invoices/:id", h.Update)
	g.DELETE("/invoices/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var inv Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inv)
}

type buildRequest struct {
	PatientID       uuid.UUID   `json:"patient_id"`
	PatientName     string      `json:"patient_name"`
	PrescriptionIDs []uuid.UUID `json:"prescription_ids"`
}

func (h *Handler) BuildFromPrescriptions(c echo.Context) error {
	var req buildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.BuildFromPrescriptions(c.Request().Context(), req.PatientID, req.PatientName, req.PrescriptionIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) Html(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	inv, err := h.svc.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	doc, err := RenderHTML(inv, h.letterhead.Letterhead(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, doc)
}

func (h *Handler) List(c echo.Context) error {
	invoices := h.svc.Filter(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	params := pagination.FromContext(c)
	page := pagination.Slice(invoices, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(invoices), params.Limit, params.Offset))
}

func (h *Handler) Groups(c echo.Context) error {
	invoices := h.svc.List(c.Request().Context())
	return c.JSON(http.StatusOK, GroupByPatient(invoices))
}

func (h *Handler) Stats(c echo.Context) error {
	invoices := h.svc.List(c.Request().Context())
	return c.JSON(http.StatusOK, ComputeMonthlyStats(invoices, time.Now()))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var upd InvoiceUpdate
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
