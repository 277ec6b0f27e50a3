package repository

import (
	"context"

	"github.com/inventoria-app/inventoria/internal/domain"
)

// Item defines the interface for item record persistence
type Item interface {
	GetItem(ctx context.Context, id int) (*domain.Item, error)

	// GetAllItems returns every item, newest first.
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	GetItemsByCategoryID(ctx context.Context, categoryID int) ([]domain.Item, error)

	// FindItems is a filtered scan; the predicate runs against a consistent
	// snapshot of each record.
	FindItems(ctx context.Context, predicate func(domain.Item) bool) ([]domain.Item, error)

	// SearchItems matches the query case-insensitively against name, sku and
	// description.
	SearchItems(ctx context.Context, query string) ([]domain.Item, error)

	// InsertItem assigns the id and timestamps and returns the stored record.
	// Returns domain.ErrDuplicateSKU on an sku collision.
	InsertItem(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// UpdateItem merges the partial update atomically and returns both the
	// updated record and the snapshot immediately prior to the write, so
	// callers can derive the stock delta without racing a concurrent writer.
	UpdateItem(ctx context.Context, id int, update domain.ItemUpdate) (updated, prev *domain.Item, err error)

	// AdjustStock atomically applies deltas to quantity and rentedCount. The
	// non-negativity checks are evaluated against the record value at write
	// time: domain.ErrInsufficientStock when quantity would go negative,
	// domain.ErrOverReturn when rentedCount would.
	AdjustStock(ctx context.Context, id, quantityDelta, rentedDelta int) (*domain.Item, error)

	// DeleteItem removes the item and cascades to its transactions.
	DeleteItem(ctx context.Context, id int) (bool, error)
}
