// Package authz decides which records a caller may see or change. Every
// read and mutation in the service layer passes through the Gate, which
// combines a role allow-list, the ownership scope rules, and payload
// field restrictions.
package authz

import (
	"github.com/spec-kit/workforce-service/internal/domain"
)

// Principal is the resolved identity of the caller for one request. It is
// immutable after resolution and threaded explicitly through call
// signatures; it is never stored in shared state.
type Principal struct {
	ID     string
	Role   domain.Role
	Active bool
}

// Kind names an entity type subject to authorization.
type Kind string

const (
	KindAccount           Kind = "account"
	KindDepartment        Kind = "department"
	KindProject           Kind = "project"
	KindTask              Kind = "task"
	KindKpi               Kind = "kpi"
	KindLeaveRequest      Kind = "leave_request"
	KindPerformanceReview Kind = "performance_review"
	KindAuditLog          Kind = "audit_log"
)

// Kinds lists every guarded entity type.
func Kinds() []Kind {
	return []Kind{
		KindAccount,
		KindDepartment,
		KindProject,
		KindTask,
		KindKpi,
		KindLeaveRequest,
		KindPerformanceReview,
		KindAuditLog,
	}
}

// Operation names a guarded action on an entity type.
type Operation string

const (
	OpCreate Operation = "create"
	OpView   Operation = "view"
	OpList   Operation = "list"
	OpUpdate Operation = "update"
	// OpUpdateSelf is the self-service variant of update: the caller edits
	// the record that is about themselves. Field restrictions apply.
	OpUpdateSelf Operation = "update_self"
	OpDelete     Operation = "delete"
	// OpReview transitions a status sub-machine (leave review, appraisal
	// review) rather than editing arbitrary fields.
	OpReview Operation = "review"
)
