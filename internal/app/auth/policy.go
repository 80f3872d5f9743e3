// Package auth holds the role policy consulted by every entity operation.
// The policy is a single table keyed by (entity, operation) so the full
// access matrix lives in one place and can be tested independently of the
// services that enforce it. Ownership-scoped visibility for enrollments is
// a row-level rule and stays with the enrollment service, which has the
// fetched row in hand.
package auth

import (
	"fmt"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/identity"
)

// Entity names a protected entity type.
type Entity string

// Protected entities
const (
	EntityProgram    Entity = "program"
	EntityCourse     Entity = "course"
	EntityEnrollment Entity = "enrollment"
)

// Operation names an action on an entity.
type Operation string

// Operations
const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpSearch Operation = "search"
)

// requirement is one cell of the access matrix. An empty role list means
// any authenticated caller qualifies.
type requirement struct {
	roles []models.RoleType
}

var anyAuthenticated = requirement{}

func roles(rs ...models.RoleType) requirement {
	return requirement{roles: rs}
}

// policy is the access matrix. Writes are admin-only across the board;
// reads differ per entity.
var policy = map[Entity]map[Operation]requirement{
	EntityProgram: {
		OpCreate: roles(models.RoleAdmin),
		OpUpdate: roles(models.RoleAdmin),
		OpDelete: roles(models.RoleAdmin),
		OpList:   roles(models.RoleUser, models.RoleAdmin),
		OpGet:    roles(models.RoleUser, models.RoleAdmin),
		OpSearch: anyAuthenticated,
	},
	EntityCourse: {
		OpCreate: roles(models.RoleAdmin),
		OpUpdate: roles(models.RoleAdmin),
		OpDelete: roles(models.RoleAdmin),
		OpList:   roles(models.RoleAdmin),
		OpGet:    roles(models.RoleAdmin),
		OpSearch: anyAuthenticated,
	},
	EntityEnrollment: {
		OpCreate: roles(models.RoleAdmin),
		OpUpdate: roles(models.RoleAdmin),
		OpDelete: roles(models.RoleAdmin),
		OpList:   anyAuthenticated,
		OpGet:    anyAuthenticated,
		OpSearch: anyAuthenticated,
	},
}

// Authorize checks the caller against the policy cell for (entity, op).
// It returns apperrors.ErrPermissionDenied (wrapped) when the caller is
// unauthenticated or lacks every required role.
func Authorize(ident identity.Identity, entity Entity, op Operation) error {
	ops, ok := policy[entity]
	if !ok {
		return fmt.Errorf("%w: unknown entity %q", apperrors.ErrPermissionDenied, entity)
	}
	req, ok := ops[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q on %q", apperrors.ErrPermissionDenied, op, entity)
	}

	if !ident.Authenticated() {
		return fmt.Errorf("%w: authentication required", apperrors.ErrPermissionDenied)
	}

	if len(req.roles) == 0 {
		return nil
	}
	if ident.HasAnyRole(req.roles...) {
		return nil
	}
	return fmt.Errorf("%w: %s %s requires one of %v", apperrors.ErrPermissionDenied, entity, op, req.roles)
}
