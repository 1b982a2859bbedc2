package user

import (
	"context"
)

type UserRepository interface {
	// GetByIdentifier resolves a user by email or by the login ID of the linked employee.
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
}
