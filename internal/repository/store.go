package repository

import "context"

// Store bundles the four aggregate repositories a storage backend provides.
// Both the in-memory and the PostgreSQL backends implement it; the backup
// coordinator and the application wiring depend on this instead of concrete
// backends.
type Store interface {
	Users() User
	Categories() Category
	Items() Item
	Transactions() Transaction

	// ClearAll removes every record of every kind. Only the backup import
	// path calls this, under its exclusive lock.
	ClearAll(ctx context.Context) error
}
