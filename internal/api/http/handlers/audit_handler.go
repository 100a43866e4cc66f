package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/service"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: auditService}
}

// List handles GET /audit-logs.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	logs, err := h.audit.ListAuditLogs(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAuditLogResponses(logs)})
}

// ListByAccount handles GET /audit-logs/account/:id.
func (h *AuditHandler) ListByAccount(c *fiber.Ctx) error {
	principal, err := requestPrincipal(c)
	if err != nil {
		return err
	}
	logs, err := h.audit.ListAccountAuditLogs(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAuditLogResponses(logs)})
}
