package authz

import (
	"context"

	"github.com/spec-kit/workforce-service/internal/domain"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

var (
	anyRole    = []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee, domain.RoleUser}
	managerial = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	adminOnly  = []domain.Role{domain.RoleAdmin}
)

// allowlist is the single exhaustive permission table: which roles may
// attempt each operation per entity type, before any ownership check. A
// kind/operation pair missing from the table is denied for every role.
var allowlist = map[Kind]map[Operation][]domain.Role{
	KindAccount: {
		OpCreate:     adminOnly,
		OpList:       managerial,
		OpView:       anyRole,
		OpUpdate:     adminOnly,
		OpUpdateSelf: anyRole,
		OpDelete:     adminOnly,
	},
	KindDepartment: {
		OpCreate: adminOnly,
		OpList:   anyRole,
		OpView:   anyRole,
		OpUpdate: adminOnly,
		OpDelete: adminOnly,
	},
	KindProject: {
		OpCreate: managerial,
		OpList:   anyRole,
		OpView:   anyRole,
		OpUpdate: managerial,
		OpDelete: adminOnly,
	},
	KindTask: {
		OpCreate: managerial,
		OpList:   anyRole,
		OpView:   anyRole,
		OpUpdate: anyRole,
		OpDelete: managerial,
	},
	KindKpi: {
		OpCreate: managerial,
		OpList:   anyRole,
		OpView:   anyRole,
		OpUpdate: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee},
		OpDelete: managerial,
	},
	KindLeaveRequest: {
		OpCreate: anyRole,
		OpList:   anyRole,
		OpView:   anyRole,
		OpReview: managerial,
	},
	KindPerformanceReview: {
		OpCreate:     managerial,
		OpList:       anyRole,
		OpView:       anyRole,
		OpUpdate:     managerial,
		OpUpdateSelf: anyRole,
		OpDelete:     adminOnly,
	},
	KindAuditLog: {
		OpList: adminOnly,
		OpView: adminOnly,
	},
}

func roleAllowed(role domain.Role, kind Kind, op Operation) bool {
	ops, ok := allowlist[kind]
	if !ok {
		return false
	}
	for _, allowed := range ops[op] {
		if allowed == role {
			return true
		}
	}
	return false
}

// RefResolver loads the ownership chain for a record by id. Implementations
// return a NOT_FOUND domain error when the id does not exist at all.
type RefResolver interface {
	ResolveRef(ctx context.Context, kind Kind, id string) (*RecordRef, error)
}

// Gate is the single pre-check in front of every read and mutation. It
// evaluates, in order: the role allow-list, then the scope check against
// the concrete target. Field sanitization is applied by the service layer
// through FieldRestrictionPolicy and never denies. A denial is terminal
// and carries no side effects.
type Gate struct {
	scope    *ScopePolicy
	resolver RefResolver
}

// NewGate builds the gate.
func NewGate(scope *ScopePolicy, resolver RefResolver) *Gate {
	return &Gate{scope: scope, resolver: resolver}
}

// Scope exposes the underlying scope policy for list filtering.
func (g *Gate) Scope() *ScopePolicy {
	return g.scope
}

// Guard checks op against an already-loaded target. Pass a nil ref for
// operations without a concrete target (create, list). Role denial is
// independent of record ownership; scope denial means the record exists
// but is out of scope.
func (g *Gate) Guard(ctx context.Context, p *Principal, op Operation, kind Kind, ref *RecordRef) error {
	if p == nil || !p.Active {
		return apperrors.NewUnauthorized("active principal required")
	}
	if !roleAllowed(p.Role, kind, op) {
		return apperrors.NewForbidden("role not permitted for this operation")
	}
	if ref != nil {
		ok, err := g.scope.CanAccess(ctx, p, kind, *ref)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewForbidden("record out of scope")
		}
	}
	return nil
}

// Authorize guards op against targetID, resolving the target's ownership
// chain first. An unknown id surfaces as NotFound; an existing record out
// of scope surfaces as Forbidden.
func (g *Gate) Authorize(ctx context.Context, p *Principal, op Operation, kind Kind, targetID string) error {
	ref, err := g.resolver.ResolveRef(ctx, kind, targetID)
	if err != nil {
		return err
	}
	return g.Guard(ctx, p, op, kind, ref)
}
