package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/service"
)

// ReviewsHandler exposes performance review endpoints.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviewService}
}

// Create handles POST /reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.EmployeeID == "" {
		return fiber.NewError(http.StatusBadRequest, "employee_id required")
	}
	review, err := h.reviews.CreateReview(c.Context(), principal, service.ReviewCreateInput{
		EmployeeID: req.EmployeeID,
		CycleName:  req.CycleName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// List handles GET /reviews.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListReviews(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponses(reviews)})
}

// ListMine handles GET /reviews/mine.
func (h *ReviewsHandler) ListMine(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListMyReviews(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponses(reviews)})
}

// ListByEmployee handles GET /reviews/employee/:id.
func (h *ReviewsHandler) ListByEmployee(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListEmployeeReviews(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponses(reviews)})
}

// Get handles GET /reviews/:id.
func (h *ReviewsHandler) Get(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	review, err := h.reviews.GetReview(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Update handles PATCH /reviews/:id.
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	review, err := h.reviews.UpdateReview(c.Context(), principal, c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// SubmitSelfAppraisal handles POST /reviews/:id/self-appraisal.
func (h *ReviewsHandler) SubmitSelfAppraisal(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SelfAppraisalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	review, err := h.reviews.SubmitSelfAppraisal(c.Context(), principal, c.Params("id"), req.SelfAppraisal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Delete handles DELETE /reviews/:id.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.reviews.DeleteReview(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
