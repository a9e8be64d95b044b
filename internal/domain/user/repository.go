package user

import (
	"context"
)

type Repository interface {
	// Create assigns ID and CreatedAt. A taken email yields ErrAlreadyExists.
	Create(ctx context.Context, user *User) error
	// FindByEmail yields ErrNotFound for an unknown address.
	FindByEmail(ctx context.Context, email string) (User, error)
}
