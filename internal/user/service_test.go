package user

import (
	"context"
	"testing"

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
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	auditLog := audit.NewLogger(store.Transactions(), store.Users(), nil)
	svc := NewService(store.Users(), store.Transactions(), auditLog, concurrency.NewGuard())
	return &fixture{store: store, svc: svc}
}

func (f *fixture) register(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.svc.RegisterUser(context.Background(), NewUser{
		Username: username,
		FullName: username + " full",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "admin", domain.RoleAdmin)
	assert.Equal(t, PrimaryAdminID, u.ID)
	assert.True(t, u.IsActive)

	txs, err := f.store.Transactions().GetAllTransactions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionUserCreated, txs[0].Type)
	assert.Equal(t, "User created: admin full (admin)", txs[0].Notes)
}

func TestRegisterUser_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RegisterUser(ctx, NewUser{FullName: "No Name", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.RegisterUser(ctx, NewUser{Username: "x", FullName: "X", Role: "supervisor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_Duplicate(t *testing.T) {
	f := newFixture(t)

	f.register(t, "bob", domain.RoleUser)
	_, err := f.svc.RegisterUser(context.Background(), NewUser{Username: "bob", FullName: "Bob", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "bob", domain.RoleUser)

	bad := domain.Role("supervisor")
	_, err := f.svc.UpdateUser(context.Background(), u.ID, domain.UserUpdate{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	promoted := domain.RoleAdmin
	updated, err := f.svc.UpdateUser(context.Background(), u.ID, domain.UserUpdate{Role: &promoted})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestDeleteUser_PrimaryAdminProtected(t *testing.T) {
	f := newFixture(t)

	admin := f.register(t, "admin", domain.RoleAdmin)
	f.register(t, "second", domain.RoleAdmin)

	err := f.svc.DeleteUser(context.Background(), admin.ID)
	assert.ErrorIs(t, err, domain.ErrPrimaryAdmin)
}

func TestDeleteUser_LastAdminProtected(t *testing.T) {
	f := newFixture(t)

	// The primary admin guard fires on id 1 and username "admin"; register a
	// filler first so the admin under test is neither.
	f.register(t, "bob", domain.RoleUser)
	admin := f.register(t, "solo-admin", domain.RoleAdmin)

	err := f.svc.DeleteUser(context.Background(), admin.ID)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
}

func TestDeleteUser_ReassignsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	heir := f.register(t, "admin", domain.RoleAdmin)
	doomed := f.register(t, "bob", domain.RoleUser)

	// A movement attributed to the doomed user
	_, err := f.store.Transactions().InsertTransaction(ctx, &domain.Transaction{
		UserID: doomed.ID, Type: domain.TransactionOut, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(ctx, doomed.ID))

	_, err = f.svc.GetUser(ctx, doomed.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	txs, err := f.store.Transactions().GetAllTransactions(ctx, 0)
	require.NoError(t, err)
	for _, tx := range txs {
		assert.Equal(t, heir.ID, tx.UserID)
	}

	// The deletion itself was logged, attributed to the heir
	assert.Equal(t, "User deleted: bob full (bob)", txs[0].Notes)
	assert.Equal(t, domain.TransactionAdjustment, txs[0].Type)
}

func TestDeleteUser_NotFound(t *testing.T) {
	f := newFixture(t)
	f.register(t, "admin", domain.RoleAdmin)

	err := f.svc.DeleteUser(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	f.register(t, "admin", domain.RoleAdmin)
	f.register(t, "bob", domain.RoleUser)

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
