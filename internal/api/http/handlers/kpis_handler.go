package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/service"
)

// KpisHandler exposes KPI endpoints.
type KpisHandler struct {
	kpis *service.KpiService
}

// NewKpisHandler constructs handler.
func NewKpisHandler(kpiService *service.KpiService) *KpisHandler {
	return &KpisHandler{kpis: kpiService}
}

// Create handles POST /kpis.
func (h *KpisHandler) Create(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateKpiRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmployeeID == "" {
		return fiber.NewError(http.StatusBadRequest, "employee_id required")
	}
	kpi, err := h.kpis.CreateKpi(c.Context(), principal, service.KpiCreateInput{
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewKpiResponse(kpi)})
}

// List handles GET /kpis.
func (h *KpisHandler) List(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	kpis, err := h.kpis.ListKpis(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKpiResponses(kpis)})
}

// ListMine handles GET /kpis/mine.
func (h *KpisHandler) ListMine(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	kpis, err := h.kpis.ListMyKpis(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKpiResponses(kpis)})
}

// ListByEmployee handles GET /kpis/employee/:id.
func (h *KpisHandler) ListByEmployee(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	kpis, err := h.kpis.ListEmployeeKpis(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKpiResponses(kpis)})
}

// Get handles GET /kpis/:id.
func (h *KpisHandler) Get(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	kpi, err := h.kpis.GetKpi(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKpiResponse(kpi)})
}

// Update handles PATCH /kpis/:id.
func (h *KpisHandler) Update(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateKpiRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	kpi, err := h.kpis.UpdateKpi(c.Context(), principal, c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKpiResponse(kpi)})
}

// Delete handles DELETE /kpis/:id.
func (h *KpisHandler) Delete(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.kpis.DeleteKpi(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
