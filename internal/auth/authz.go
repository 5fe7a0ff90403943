package auth

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/domain"
)

// Authorize decides whether caller may act on a resource owned by ownerID.
// Allowed iff the caller is the owner, or holds the admin role.
// The decision is pure — no re-verification, no lookups; the identity is
// whatever token verification produced.
//
// A denial is always domain.ErrForbidden, never domain.ErrNotFound: existence
// of the resource has already been established by the time ownership is
// checked, and the two conditions map to different HTTP statuses.
func Authorize(caller Identity, ownerID uuid.UUID) error {
	if caller.UserID == ownerID || caller.Role == domain.RoleAdmin {
		return nil
	}
	return fmt.Errorf("user %s does not own resource: %w", caller.UserID, domain.ErrForbidden)
}

// AuthorizeRole decides whether caller holds one of the required roles.
// Used for endpoints gated on role rather than ownership.
func AuthorizeRole(caller Identity, required ...domain.Role) error {
	for _, r := range required {
		if caller.Role == r {
			return nil
		}
	}
	return fmt.Errorf("role %q not permitted: %w", caller.Role, domain.ErrForbidden)
}
