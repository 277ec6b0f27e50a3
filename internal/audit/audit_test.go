package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventoria-app/inventoria/internal/database/memory"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/repository"
)

func seedUsers(t *testing.T, store *memory.Store, users ...domain.User) []domain.User {
	t.Helper()
	stored := make([]domain.User, 0, len(users))
	for i := range users {
		u, err := store.Users().InsertUser(context.Background(), &users[i])
		require.NoError(t, err)
		stored = append(stored, *u)
	}
	return stored
}

func recordedEntries(t *testing.T, store *memory.Store) []domain.Transaction {
	t.Helper()
	txs, err := store.Transactions().GetAllTransactions(context.Background(), 0)
	require.NoError(t, err)
	return txs
}

func TestRecord_ExplicitActor(t *testing.T) {
	store := memory.NewStore()
	users := seedUsers(t, store,
		domain.User{Username: "admin", FullName: "Admin", Role: domain.RoleAdmin, IsActive: true},
		domain.User{Username: "bob", FullName: "Bob", Role: domain.RoleUser, IsActive: true},
	)

	log := NewLogger(store.Transactions(), store.Users(), nil)
	log.Record(context.Background(), users[1].ID, Entry{Type: domain.TransactionOut, Quantity: 2, Notes: "Item rented - 2 units"})

	entries := recordedEntries(t, store)
	require.Len(t, entries, 1)
	assert.Equal(t, users[1].ID, entries[0].UserID)
	assert.Equal(t, domain.TransactionOut, entries[0].Type)
}

func TestRecord_FallsBackToFirstAdmin(t *testing.T) {
	store := memory.NewStore()
	users := seedUsers(t, store,
		domain.User{Username: "bob", FullName: "Bob", Role: domain.RoleUser, IsActive: true},
		domain.User{Username: "admin", FullName: "Admin", Role: domain.RoleAdmin, IsActive: true},
	)

	log := NewLogger(store.Transactions(), store.Users(), nil)
	log.Record(context.Background(), 0, Entry{Type: domain.TransactionIn, Quantity: 1})

	entries := recordedEntries(t, store)
	require.Len(t, entries, 1)
	assert.Equal(t, users[1].ID, entries[0].UserID)
}

func TestRecord_MissingActorFallsBack(t *testing.T) {
	store := memory.NewStore()
	users := seedUsers(t, store,
		domain.User{Username: "admin", FullName: "Admin", Role: domain.RoleAdmin, IsActive: true},
	)

	log := NewLogger(store.Transactions(), store.Users(), nil)
	log.Record(context.Background(), 999, Entry{Type: domain.TransactionIn, Quantity: 1})

	entries := recordedEntries(t, store)
	require.Len(t, entries, 1)
	assert.Equal(t, users[0].ID, entries[0].UserID)
}

func TestRecord_NoAdminsUsesAnyUser(t *testing.T) {
	store := memory.NewStore()
	users := seedUsers(t, store,
		domain.User{Username: "bob", FullName: "Bob", Role: domain.RoleUser, IsActive: true},
	)

	log := NewLogger(store.Transactions(), store.Users(), nil)
	log.Record(context.Background(), 0, Entry{Type: domain.TransactionIn, Quantity: 1})

	entries := recordedEntries(t, store)
	require.Len(t, entries, 1)
	assert.Equal(t, users[0].ID, entries[0].UserID)
}

func TestRecord_NoUsersSkipsEntry(t *testing.T) {
	store := memory.NewStore()

	log := NewLogger(store.Transactions(), store.Users(), nil)
	log.Record(context.Background(), 0, Entry{Type: domain.TransactionIn, Quantity: 1})

	assert.Empty(t, recordedEntries(t, store))
}

// failingTransactions wraps a transaction repository and refuses inserts.
type failingTransactions struct {
	repository.Transaction
}

func (f *failingTransactions) InsertTransaction(context.Context, *domain.Transaction) (*domain.Transaction, error) {
	return nil, errors.New("log unavailable")
}

func TestRecord_SwallowsInsertFailure(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store,
		domain.User{Username: "admin", FullName: "Admin", Role: domain.RoleAdmin, IsActive: true},
	)

	log := NewLogger(&failingTransactions{store.Transactions()}, store.Users(), nil)

	// Must not panic or propagate: the mutation being logged already happened.
	log.Record(context.Background(), 1, Entry{Type: domain.TransactionIn, Quantity: 1})

	assert.Empty(t, recordedEntries(t, store))
}
