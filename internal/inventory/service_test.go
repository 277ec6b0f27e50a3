package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventoria-app/inventoria/internal/audit"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/database/memory"
	"github.com/inventoria-app/inventoria/internal/domain"
)

type fixture struct {
	store *memory.Store
	svc   Service
	admin *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()

	admin, err := store.Users().InsertUser(context.Background(), &domain.User{
		Username: "admin", FullName: "Admin User", Role: domain.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)

	auditLog := audit.NewLogger(store.Transactions(), store.Users(), nil)
	svc := NewService(store.Items(), store.Categories(), auditLog, concurrency.NewGuard())
	return &fixture{store: store, svc: svc, admin: admin}
}

func (f *fixture) transactions(t *testing.T) []domain.Transaction {
	t.Helper()
	txs, err := f.store.Transactions().GetAllTransactions(context.Background(), 0)
	require.NoError(t, err)
	return txs
}

func TestCreateItem_DefaultsAndAuditEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{
		Name:      "Laptop",
		SKU:       "LAP-001",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("999.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultMinStockLevel, item.MinStockLevel)
	assert.Equal(t, domain.ItemStatusActive, item.Status)
	assert.True(t, item.Rentable)
	assert.Equal(t, 0, item.RentedCount)

	txs := f.transactions(t)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionIn, txs[0].Type)
	assert.Equal(t, 3, txs[0].Quantity)
	assert.Equal(t, "Item created: Laptop", txs[0].Notes)
	assert.Equal(t, f.admin.ID, txs[0].UserID)
}

func TestCreateItem_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateItem(ctx, NewItem{SKU: "X-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateItem(ctx, NewItem{Name: "X", SKU: "X-1", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := 42
	_, err = f.svc.CreateItem(ctx, NewItem{Name: "X", SKU: "X-1", CategoryID: &missing})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestNegativeUnitPriceRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateItem(ctx, NewItem{
		Name: "X", SKU: "X-1", Quantity: 1,
		UnitPrice: decimal.RequireFromString("-5.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.transactions(t))

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "X", SKU: "X-1", Quantity: 1})
	require.NoError(t, err)

	negative := decimal.RequireFromString("-0.01")
	_, err = f.svc.UpdateItem(ctx, item.ID, domain.ItemUpdate{UnitPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	current, err := f.store.Items().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, current.UnitPrice.IsZero())
}

func TestCreateItem_DuplicateSKU(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateItem(ctx, NewItem{Name: "A", SKU: "DUP-1"})
	require.NoError(t, err)

	_, err = f.svc.CreateItem(ctx, NewItem{Name: "B", SKU: "DUP-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestUpdateItem_QuantityChangeIsLogged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Widget", SKU: "WID-1", Quantity: 5})
	require.NoError(t, err)

	raised := 9
	_, err = f.svc.UpdateItem(ctx, item.ID, domain.ItemUpdate{Quantity: &raised})
	require.NoError(t, err)

	lowered := 2
	_, err = f.svc.UpdateItem(ctx, item.ID, domain.ItemUpdate{Quantity: &lowered})
	require.NoError(t, err)

	txs := f.transactions(t) // newest first
	require.Len(t, txs, 3)
	assert.Equal(t, domain.TransactionOut, txs[0].Type)
	assert.Equal(t, "Quantity decreased by 7", txs[0].Notes)
	assert.Equal(t, domain.TransactionIn, txs[1].Type)
	assert.Equal(t, "Quantity increased by 4", txs[1].Notes)
}

func TestUpdateItem_BrokenCountAsymmetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Widget", SKU: "WID-1", Quantity: 5})
	require.NoError(t, err)

	// Increase is logged as an adjustment
	broken := 2
	_, err = f.svc.UpdateItem(ctx, item.ID, domain.ItemUpdate{BrokenCount: &broken})
	require.NoError(t, err)

	txs := f.transactions(t)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TransactionAdjustment, txs[0].Type)
	assert.Equal(t, "Broken count increased by 2", txs[0].Notes)

	// Decrease is applied silently
	repaired := 0
	_, err = f.svc.UpdateItem(ctx, item.ID, domain.ItemUpdate{BrokenCount: &repaired})
	require.NoError(t, err)
	assert.Len(t, f.transactions(t), 2)
}

func TestRentAndReturn_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Projector", SKU: "PRJ-1", Quantity: 4})
	require.NoError(t, err)

	rented, err := f.svc.RentItem(ctx, item.ID, 3, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rented.Quantity)
	assert.Equal(t, 3, rented.RentedCount)

	returned, err := f.svc.ReturnItem(ctx, item.ID, 2, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, returned.Quantity)
	assert.Equal(t, 1, returned.RentedCount)

	txs := f.transactions(t)
	require.Len(t, txs, 3)
	assert.Equal(t, "Item returned - 2 units", txs[0].Notes)
	assert.Equal(t, "Item rented - 3 units", txs[1].Notes)
}

func TestRentItem_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Projector", SKU: "PRJ-1", Quantity: 2})
	require.NoError(t, err)

	_, err = f.svc.RentItem(ctx, item.ID, 3, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Failed rental leaves stock untouched and unlogged
	current, err := f.svc.RentItem(ctx, item.ID, 2, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Quantity)
}

func TestReturnItem_OverReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Projector", SKU: "PRJ-1", Quantity: 4})
	require.NoError(t, err)

	_, err = f.svc.RentItem(ctx, item.ID, 1, f.admin.ID)
	require.NoError(t, err)

	_, err = f.svc.ReturnItem(ctx, item.ID, 2, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrOverReturn)
}

func TestRentItem_InvalidQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RentItem(context.Background(), 1, 0, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.ReturnItem(context.Background(), 1, -2, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateItem(ctx, NewItem{Name: "Widget", SKU: "WID-1", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, f.svc.DeleteItem(ctx, item.ID), domain.ErrItemNotFound)

	// History went with the item
	assert.Empty(t, f.transactions(t))
}

func TestDeleteCategory_InUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, "Tools", "Hand tools")
	require.NoError(t, err)

	_, err = f.svc.CreateItem(ctx, NewItem{Name: "Hammer", SKU: "HAM-1", CategoryID: &category.ID})
	require.NoError(t, err)

	err = f.svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
}

func TestDeleteCategory_Empty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, "Tools", "")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteCategory(ctx, category.ID))
	assert.ErrorIs(t, f.svc.DeleteCategory(ctx, category.ID), domain.ErrCategoryNotFound)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCategory(ctx, "Tools", "")
	require.NoError(t, err)

	_, err = f.svc.CreateCategory(ctx, "Tools", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
}
