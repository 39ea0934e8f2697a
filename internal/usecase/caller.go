package usecase

import (
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

// Caller is the authenticated principal for an operation.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

func (c Caller) require(roles ...user.Role) error {
	if c.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return forbidden("role %s cannot perform this action", c.Role)
}
