package repository

import (
	"context"

	"github.com/inventoria-app/inventoria/internal/domain"
)

// Category defines the interface for category record persistence
type Category interface {
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	GetAllCategories(ctx context.Context) ([]domain.Category, error)

	// InsertCategory assigns the id and creation timestamp. Returns
	// domain.ErrDuplicateCategory on a name collision.
	InsertCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)

	UpdateCategory(ctx context.Context, id int, update domain.CategoryUpdate) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) (bool, error)
}
