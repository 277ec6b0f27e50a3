package repository

import (
	"context"

	"github.com/inventoria-app/inventoria/internal/domain"
)

// User defines the interface for user record persistence
type User interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)

	// InsertUser assigns the id and timestamps and returns the stored record.
	// Returns domain.ErrDuplicateUsername on a username collision.
	InsertUser(ctx context.Context, user *domain.User) (*domain.User, error)

	UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
}
