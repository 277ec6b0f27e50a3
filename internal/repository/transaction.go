package repository

import (
	"context"
	"time"

	"github.com/inventoria-app/inventoria/internal/domain"
)

// Transaction defines the interface for the immutable audit log. Entries are
// append-only: there is no update or single-entry delete.
type Transaction interface {
	// InsertTransaction assigns the id and creation timestamp and returns
	// the stored entry.
	InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)

	// GetAllTransactions returns entries newest first; limit <= 0 means all.
	GetAllTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	CountTransactionsSince(ctx context.Context, since time.Time) (int, error)

	// ReassignTransactions moves every entry recorded by one actor onto
	// another, used before deleting a user.
	ReassignTransactions(ctx context.Context, fromUserID, toUserID int) error

	// FlushTransactions removes every entry.
	FlushTransactions(ctx context.Context) error
}
