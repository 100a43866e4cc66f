package authz

import (
	"github.com/spec-kit/workforce-service/internal/domain"
)

// FieldRestrictionPolicy narrows update payloads based on the relationship
// between the caller and the target record. Sanitization never denies an
// operation, it only drops fields the caller may not change.
type FieldRestrictionPolicy struct{}

// SanitizeAccountPatch strips role and active from a self-service profile
// update, regardless of payload contents, so a non-admin caller can never
// escalate their own role or flip their own active flag through this path.
func (FieldRestrictionPolicy) SanitizeAccountPatch(p *Principal, targetAccountID string, patch domain.AccountPatch) domain.AccountPatch {
	if p.ID == targetAccountID && p.Role != domain.RoleAdmin {
		patch.Role = nil
		patch.Active = nil
	}
	return patch
}

// SanitizeTaskPatch narrows a plain assignee's update of their own task to
// status and hours logged. Admins, managers and the account that assigned
// the task keep the full payload.
func (FieldRestrictionPolicy) SanitizeTaskPatch(p *Principal, assignedByID string, patch domain.TaskPatch) domain.TaskPatch {
	if p.Role == domain.RoleAdmin || p.Role == domain.RoleManager || p.ID == assignedByID {
		return patch
	}
	return domain.TaskPatch{
		Status:      patch.Status,
		HoursLogged: patch.HoursLogged,
	}
}
