package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventoria-app/inventoria/internal/database/schema"
	"github.com/inventoria-app/inventoria/internal/domain"
)

// openTestStore connects to the database named by TEST_DATABASE_URL, applies
// the schema and clears all records. Tests are skipped when the variable is
// unset so the suite stays runnable without a database.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, schema.Apply(ctx, pool))

	store := NewStore(pool)
	require.NoError(t, store.ClearAll(ctx))
	return store
}

func insertTestUser(t *testing.T, store *Store, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := store.Users().InsertUser(context.Background(), &domain.User{
		Username: username,
		FullName: username + " full",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return user
}

func insertTestItem(t *testing.T, store *Store, name, sku string, quantity int) *domain.Item {
	t.Helper()
	item, err := store.Items().InsertItem(context.Background(), &domain.Item{
		Name:      name,
		SKU:       sku,
		Quantity:  quantity,
		UnitPrice: decimal.NewFromFloat(19.99),
		Status:    domain.ItemStatusActive,
	})
	require.NoError(t, err)
	return item
}

func TestInsertAndGetItem(t *testing.T) {
	store := openTestStore(t)

	created := insertTestItem(t, store, "Laptop", "LAP-100", 5)
	assert.NotZero(t, created.ID)
	assert.True(t, created.UnitPrice.Equal(decimal.NewFromFloat(19.99)))

	got, err := store.Items().GetItem(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SKU, got.SKU)
	assert.Equal(t, 5, got.Quantity)

	_, err = store.Items().GetItem(context.Background(), created.ID+1000)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestInsertItem_DuplicateSKU(t *testing.T) {
	store := openTestStore(t)

	insertTestItem(t, store, "Laptop", "LAP-100", 5)
	_, err := store.Items().InsertItem(context.Background(), &domain.Item{
		Name:      "Other laptop",
		SKU:       "LAP-100",
		UnitPrice: decimal.Zero,
		Status:    domain.ItemStatusActive,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestGetAllItems_NewestFirst(t *testing.T) {
	store := openTestStore(t)

	first := insertTestItem(t, store, "First", "SKU-1", 1)
	second := insertTestItem(t, store, "Second", "SKU-2", 1)

	items, err := store.Items().GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestUpdateItem_ReturnsPreviousState(t *testing.T) {
	store := openTestStore(t)

	created := insertTestItem(t, store, "Laptop", "LAP-100", 5)

	newQuantity := 9
	updated, prev, err := store.Items().UpdateItem(context.Background(), created.ID, domain.ItemUpdate{
		Quantity: &newQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, 5, prev.Quantity)

	_, _, err = store.Items().UpdateItem(context.Background(), created.ID+1000, domain.ItemUpdate{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestAdjustStock(t *testing.T) {
	store := openTestStore(t)
	items := store.Items()
	created := insertTestItem(t, store, "Drill", "DRL-1", 5)

	adjusted, err := items.AdjustStock(context.Background(), created.ID, -3, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, adjusted.Quantity)
	assert.Equal(t, 3, adjusted.RentedCount)

	_, err = items.AdjustStock(context.Background(), created.ID, -3, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = items.AdjustStock(context.Background(), created.ID, 4, -4)
	assert.ErrorIs(t, err, domain.ErrOverReturn)

	_, err = items.AdjustStock(context.Background(), created.ID+1000, 1, 0)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItem_CascadesTransactions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := insertTestUser(t, store, "admin", domain.RoleAdmin)
	kept := insertTestItem(t, store, "Kept", "KEEP-1", 1)
	doomed := insertTestItem(t, store, "Doomed", "DOOM-1", 1)

	for _, itemID := range []int{kept.ID, doomed.ID} {
		id := itemID
		_, err := store.Transactions().InsertTransaction(ctx, &domain.Transaction{
			ItemID:   &id,
			UserID:   user.ID,
			Type:     domain.TransactionIn,
			Quantity: 1,
		})
		require.NoError(t, err)
	}

	deleted, err := store.Items().DeleteItem(ctx, doomed.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	txs, err := store.Transactions().GetAllTransactions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, kept.ID, *txs[0].ItemID)

	deleted, err = store.Items().DeleteItem(ctx, doomed.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestInsertUser_DuplicateUsername(t *testing.T) {
	store := openTestStore(t)

	insertTestUser(t, store, "admin", domain.RoleAdmin)
	_, err := store.Users().InsertUser(context.Background(), &domain.User{
		Username: "admin",
		FullName: "Someone else",
		Role:     domain.RoleUser,
		IsActive: true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestInsertCategory_DuplicateName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Categories().InsertCategory(ctx, &domain.Category{Name: "Tools"})
	require.NoError(t, err)

	_, err = store.Categories().InsertCategory(ctx, &domain.Category{Name: "Tools"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
}

func TestTransactions_ReassignAndCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	from := insertTestUser(t, store, "leaving", domain.RoleUser)
	to := insertTestUser(t, store, "admin", domain.RoleAdmin)

	_, err := store.Transactions().InsertTransaction(ctx, &domain.Transaction{
		UserID:   from.ID,
		Type:     domain.TransactionAdjustment,
		Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, store.Transactions().ReassignTransactions(ctx, from.ID, to.ID))

	txs, err := store.Transactions().GetAllTransactions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, to.ID, txs[0].UserID)

	count, err := store.Transactions().CountTransactionsSince(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.Transactions().FlushTransactions(ctx))
	txs, err = store.Transactions().GetAllTransactions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestClearAll_RemovesEverything(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := insertTestUser(t, store, "admin", domain.RoleAdmin)
	item := insertTestItem(t, store, "Laptop", "LAP-100", 1)
	_, err := store.Transactions().InsertTransaction(ctx, &domain.Transaction{
		ItemID:   &item.ID,
		UserID:   user.ID,
		Type:     domain.TransactionIn,
		Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, store.ClearAll(ctx))

	users, err := store.Users().GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	items, err := store.Items().GetAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
