package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// AuditLogResponse representation of one trail entry.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	AccountID  *string   `json:"account_id"`
	Action     string    `json:"action"`
	EntityName string    `json:"entity_name"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuditLogResponse maps a domain audit log.
func NewAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		AccountID:  l.AccountID,
		Action:     l.Action,
		EntityName: l.EntityName,
		EntityID:   l.EntityID,
		Details:    l.Details,
		IPAddress:  l.IPAddress,
		CreatedAt:  l.CreatedAt,
	}
}

// NewAuditLogResponses maps a slice of domain audit logs.
func NewAuditLogResponses(logs []domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, NewAuditLogResponse(&logs[i]))
	}
	return out
}
