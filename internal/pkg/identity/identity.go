// Package identity carries the authenticated caller through the request
// context. Resolution never fails: an unauthenticated request simply yields
// the zero Identity, whose Login is the empty string.
package identity

import (
	"context"

	"github.com/opencampus/coursehub/internal/app/models"
)

type contextKey struct{}

// Identity is the resolved caller for the current request.
type Identity struct {
	Login string
	Roles []models.RoleType
}

// HasRole reports whether the caller holds the given role.
func (i Identity) HasRole(role models.RoleType) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the caller holds at least one of the roles.
func (i Identity) HasAnyRole(roles ...models.RoleType) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}
	return false
}

// Authenticated reports whether a caller was resolved at all.
func (i Identity) Authenticated() bool {
	return i.Login != ""
}

// NewContext returns a context carrying the identity.
func NewContext(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext resolves the caller from the context. The second return value
// is false when no authentication is present; the returned Identity is then
// the zero value, so Login comparisons against it see "".
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(Identity)
	return ident, ok
}

// CurrentLogin returns the caller's login, or "" when unauthenticated.
func CurrentLogin(ctx context.Context) string {
	ident, _ := FromContext(ctx)
	return ident.Login
}
