package backup

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventoria-app/inventoria/internal/audit"
	"github.com/inventoria-app/inventoria/internal/bootstrap"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/database/memory"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/user"
)

type fixture struct {
	store *memory.Store
	svc   Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	guard := concurrency.NewGuard()
	seeder := bootstrap.NewSeeder(store)
	auditLog := audit.NewLogger(store.Transactions(), store.Users(), nil)

	// Replay services run under the import's exclusive lock, so no guard.
	inventorySvc := inventory.NewService(store.Items(), store.Categories(), auditLog, nil)
	userSvc := user.NewService(store.Users(), store.Transactions(), auditLog, nil)

	return &fixture{
		store: store,
		svc:   NewService(store, guard, seeder, inventorySvc, userSvc),
	}
}

func validSnapshot() *domain.Snapshot {
	categoryID := 10
	return &domain.Snapshot{
		Categories: []domain.Category{
			{ID: 10, Name: "Electronics", Description: "Devices"},
		},
		Users: []domain.User{
			{Username: "admin", FullName: "Admin User", Role: domain.RoleAdmin, IsActive: true},
			{Username: "bob", FullName: "Bob", Role: domain.RoleUser, IsActive: true},
		},
		Items: []domain.Item{
			{
				Name: "Laptop", SKU: "LAP-001", CategoryID: &categoryID,
				Quantity: 3, UnitPrice: decimal.RequireFromString("999.99"),
				MinStockLevel: 5, Rentable: true, RentedCount: 2, BrokenCount: 1,
			},
		},
		ExportDate: time.Now(),
	}
}

func TestExportSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.NewSeeder(f.store).Seed(ctx))

	snapshot, err := f.svc.ExportSnapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snapshot.Users, 3)
	assert.Len(t, snapshot.Categories, 6)
	assert.Len(t, snapshot.Items, 4)
	assert.False(t, snapshot.ExportDate.IsZero())
}

func TestExportSnapshot_RepeatableWithoutMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.NewSeeder(f.store).Seed(ctx))

	first, err := f.svc.ExportSnapshot(ctx)
	require.NoError(t, err)
	second, err := f.svc.ExportSnapshot(ctx)
	require.NoError(t, err)

	// Same store state, same data; only the export date moves
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.Transactions, second.Transactions)
}

func TestImportSnapshot_ReplacesStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.NewSeeder(f.store).Seed(ctx))

	summary, err := f.svc.ImportSnapshot(ctx, validSnapshot())
	require.NoError(t, err)
	assert.Equal(t, &domain.ImportSummary{Categories: 1, Users: 2, Items: 1}, summary)

	users, err := f.store.Users().GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	items, err := f.store.Items().GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Category references are remapped onto freshly assigned ids
	categories, err := f.store.Categories().GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.NotNil(t, items[0].CategoryID)
	assert.Equal(t, categories[0].ID, *items[0].CategoryID)

	// Replay goes through the regular create path: rented and broken
	// counters start over
	assert.Equal(t, 0, items[0].RentedCount)
	assert.Equal(t, 0, items[0].BrokenCount)
}

func TestImportSnapshot_RejectsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, bootstrap.NewSeeder(f.store).Seed(ctx))

	cases := map[string]*domain.Snapshot{
		"nil snapshot": nil,
		"no users":     {Categories: []domain.Category{{Name: "C"}}},
		"items without categories": {
			Users: []domain.User{{Username: "a", FullName: "A", Role: domain.RoleAdmin}},
			Items: []domain.Item{{Name: "X", SKU: "X-1"}},
		},
		"unnamed category": {
			Users:      []domain.User{{Username: "a", FullName: "A", Role: domain.RoleAdmin}},
			Categories: []domain.Category{{Description: "no name"}},
		},
		"incomplete user": {
			Users: []domain.User{{Username: "a"}},
		},
		"item missing sku": {
			Users:      []domain.User{{Username: "a", FullName: "A", Role: domain.RoleAdmin}},
			Categories: []domain.Category{{Name: "C"}},
			Items:      []domain.Item{{Name: "X"}},
		},
		"item with negative price": {
			Users:      []domain.User{{Username: "a", FullName: "A", Role: domain.RoleAdmin}},
			Categories: []domain.Category{{Name: "C"}},
			Items:      []domain.Item{{Name: "X", SKU: "X-1", UnitPrice: decimal.RequireFromString("-1.00")}},
		},
	}

	for name, snapshot := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.ImportSnapshot(ctx, snapshot)
			assert.ErrorIs(t, err, domain.ErrSnapshotRejected)
		})
	}

	// Rejection happens before anything is touched
	users, err := f.store.Users().GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestImportSnapshot_ReplayFailureReseedsDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snapshot := validSnapshot()
	snapshot.Users = append(snapshot.Users, domain.User{
		Username: "admin", FullName: "Duplicate", Role: domain.RoleAdmin, IsActive: true,
	})

	_, err := f.svc.ImportSnapshot(ctx, snapshot)
	assert.ErrorIs(t, err, domain.ErrImportFailed)

	// The store came back with the defaults
	users, err := f.store.Users().GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "admin", users[0].Username)

	categories, err := f.store.Categories().GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestFlushActivityLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Transactions().InsertTransaction(ctx, &domain.Transaction{
		UserID: 1, Type: domain.TransactionIn, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.FlushActivityLogs(ctx))

	txs, err := f.store.Transactions().GetAllTransactions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
