package access

import (
	"fmt"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app_errors"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/google/uuid"
)

// Caller is the authenticated identity an operation runs on behalf of,
// extracted from the access token by the auth middleware.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.AdminRole
}

// RequireRole denies unless the caller's role is in the permitted set.
func RequireRole(caller Caller, roles ...string) error {
	for _, r := range roles {
		if caller.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s role required", app_errors.ErrForbidden, roles)
}

// RequireOwner denies unless the caller is the resource owner.
func RequireOwner(caller Caller, ownerID uuid.UUID) error {
	if caller.UserID == ownerID {
		return nil
	}
	return fmt.Errorf("%w: not the resource owner", app_errors.ErrForbidden)
}

// RequireOwnerRole composes the role and ownership gates.
func RequireOwnerRole(caller Caller, ownerID uuid.UUID, roles ...string) error {
	if err := RequireRole(caller, roles...); err != nil {
		return err
	}
	return RequireOwner(caller, ownerID)
}

// RequireSelfOrAdmin permits the caller on their own record, or an admin
// on any record.
func RequireSelfOrAdmin(caller Caller, targetID uuid.UUID) error {
	if caller.IsAdmin() || caller.UserID == targetID {
		return nil
	}
	return fmt.Errorf("%w: may only modify own profile", app_errors.ErrForbidden)
}
