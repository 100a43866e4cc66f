package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/service"
)

// LeaveHandler exposes leave request endpoints.
type LeaveHandler struct {
	leave *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaveService *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leave: leaveService}
}

// Submit handles POST /leave-requests.
func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SubmitLeaveRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	lr, err := h.leave.SubmitLeaveRequest(c.Context(), principal, service.LeaveSubmitInput{
		RequestType: domain.LeaveType(req.RequestType),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(lr)})
}

// List handles GET /leave-requests.
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	requests, err := h.leave.ListLeaveRequests(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// ListMine handles GET /leave-requests/mine.
func (h *LeaveHandler) ListMine(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	requests, err := h.leave.ListMyLeaveRequests(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// ListTeam handles GET /leave-requests/team.
func (h *LeaveHandler) ListTeam(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	requests, err := h.leave.ListTeamLeaveRequests(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// Get handles GET /leave-requests/:id.
func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	lr, err := h.leave.GetLeaveRequest(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(lr)})
}

// Review handles POST /leave-requests/:id/review.
func (h *LeaveHandler) Review(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReviewLeaveRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	lr, err := h.leave.ReviewLeaveRequest(c.Context(), principal, c.Params("id"), domain.LeaveStatus(req.Status), req.ReviewComment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(lr)})
}
