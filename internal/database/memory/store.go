// Package memory provides an in-process storage backend. It keeps every
// record kind in a map guarded by one mutex, so each operation observes a
// consistent snapshot. Intended for development and tests; the PostgreSQL
// backend in database/postgres is the production counterpart.
package memory

import (
	"context"
	"sync"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// Store implements repository.Store backed by process memory.
type Store struct {
	mu sync.RWMutex

	users        map[int]domain.User
	categories   map[int]domain.Category
	items        map[int]domain.Item
	transactions map[int]domain.Transaction

	// Per-kind id counters. They only ever move forward: ClearAll does not
	// reset them, so ids are never reused within a process lifetime.
	nextUserID        int
	nextCategoryID    int
	nextItemID        int
	nextTransactionID int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:             make(map[int]domain.User),
		categories:        make(map[int]domain.Category),
		items:             make(map[int]domain.Item),
		transactions:      make(map[int]domain.Transaction),
		nextUserID:        1,
		nextCategoryID:    1,
		nextItemID:        1,
		nextTransactionID: 1,
	}
}

func (s *Store) Users() repository.User               { return (*userRepository)(s) }
func (s *Store) Categories() repository.Category      { return (*categoryRepository)(s) }
func (s *Store) Items() repository.Item               { return (*itemRepository)(s) }
func (s *Store) Transactions() repository.Transaction { return (*transactionRepository)(s) }

// ClearAll removes every record of every kind. Id counters keep advancing.
func (s *Store) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int]domain.User)
	s.categories = make(map[int]domain.Category)
	s.items = make(map[int]domain.Item)
	s.transactions = make(map[int]domain.Transaction)
	return nil
}
