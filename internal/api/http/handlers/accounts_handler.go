package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/service"
)

// AccountsHandler exposes account administration and profile endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Create handles POST /accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username, email, password required")
	}
	account, err := h.accounts.CreateAccount(c.Context(), principal, service.AccountCreateInput{
		Username:              req.Username,
		Email:                 req.Email,
		Password:              req.Password,
		Role:                  domain.Role(req.Role),
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		DateOfBirth:           req.DateOfBirth,
		HireDate:              req.HireDate,
		Designation:           req.Designation,
		DepartmentID:          req.DepartmentID,
		ReportingManagerID:    req.ReportingManagerID,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// List handles GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	accounts, err := h.accounts.ListAccounts(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponses(accounts)})
}

// ListByRole handles GET /accounts/role/:role.
func (h *AccountsHandler) ListByRole(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	accounts, err := h.accounts.ListAccountsByRole(c.Context(), principal, domain.Role(c.Params("role")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponses(accounts)})
}

// ListTeam handles GET /accounts/team.
func (h *AccountsHandler) ListTeam(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	members, err := h.accounts.ListTeamMembers(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponses(members)})
}

// Me handles GET /accounts/me.
func (h *AccountsHandler) Me(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.GetMyProfile(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// UpdateMe handles PATCH /accounts/me.
func (h *AccountsHandler) UpdateMe(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	account, err := h.accounts.UpdateMyProfile(c.Context(), principal, req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Get handles GET /accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.GetAccount(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Update handles PATCH /accounts/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	account, err := h.accounts.UpdateAccount(c.Context(), principal, c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Activate handles POST /accounts/:id/activate.
func (h *AccountsHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// Deactivate handles POST /accounts/:id/deactivate.
func (h *AccountsHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *AccountsHandler) setActive(c *fiber.Ctx, active bool) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	account, err := h.accounts.SetAccountActive(c.Context(), principal, c.Params("id"), active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// ResetPassword handles POST /accounts/:id/password/reset.
func (h *AccountsHandler) ResetPassword(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "new password required")
	}
	if err := h.accounts.ResetPassword(c.Context(), principal, c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// Delete handles DELETE /accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteAccount(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
