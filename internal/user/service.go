// Package user implements user management: registration, updates, and the
// guarded deletion path that keeps the transaction log attributable.
package user

import (
	"context"
	"fmt"

	"github.com/inventoria-app/inventoria/internal/audit"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// PrimaryAdminID is the id of the seeded primary admin, which can never be
// deleted.
const PrimaryAdminID = 1

// PrimaryAdminUsername is the reserved username of the primary admin.
const PrimaryAdminUsername = "admin"

// NewUser carries the fields accepted when registering a user.
type NewUser struct {
	Username string
	FullName string
	Role     domain.Role
	IsActive *bool
}

// Service defines the user management business logic.
type Service interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	// RegisterUser stores a new user and records a user_created log entry.
	RegisterUser(ctx context.Context, input NewUser) (*domain.User, error)

	UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error)

	// DeleteUser removes a user. The primary admin and the last remaining
	// admin are protected. The deleted user's log entries are reassigned
	// to an admin first, and the deletion itself is logged.
	DeleteUser(ctx context.Context, id int) error
}

type service struct {
	users        repository.User
	transactions repository.Transaction
	auditLog     audit.Logger
	guard        *concurrency.Guard
}

// NewService creates a new user service. guard may be nil for callers that
// already hold the store exclusively.
func NewService(users repository.User, transactions repository.Transaction, auditLog audit.Logger, guard *concurrency.Guard) Service {
	return &service{
		users:        users,
		transactions: transactions,
		auditLog:     auditLog,
		guard:        guard,
	}
}

func (s *service) GetUser(ctx context.Context, id int) (*domain.User, error) {
	defer s.guard.Shared()()
	return s.users.GetUser(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]domain.User, error) {
	defer s.guard.Shared()()
	return s.users.GetAllUsers(ctx)
}

func (s *service) RegisterUser(ctx context.Context, input NewUser) (*domain.User, error) {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if input.Username == "" || input.FullName == "" {
		return nil, fmt.Errorf("%w: username and fullName are required", domain.ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	user := &domain.User{
		Username: input.Username,
		FullName: input.FullName,
		Role:     input.Role,
		IsActive: true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	stored, err := s.users.InsertUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.auditLog.Record(ctx, 0, audit.Entry{
		Type:     domain.TransactionUserCreated,
		Quantity: 1,
		Notes:    fmt.Sprintf("User created: %s (%s)", stored.FullName, stored.Username),
	})

	log.Info("User registered", "userID", stored.ID, "username", stored.Username, "role", stored.Role)
	return stored, nil
}

func (s *service) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	defer s.guard.Shared()()

	if update.Role != nil && !update.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *update.Role)
	}
	return s.users.UpdateUser(ctx, id, update)
}

func (s *service) DeleteUser(ctx context.Context, id int) error {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == PrimaryAdminID || user.Username == PrimaryAdminUsername {
		return domain.ErrPrimaryAdmin
	}

	heir, err := s.reassignmentHeir(ctx, user)
	if err != nil {
		return err
	}

	// Keep the deleted user's history attributable before the row goes.
	if err := s.transactions.ReassignTransactions(ctx, id, heir.ID); err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}

	deleted, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	s.auditLog.Record(ctx, heir.ID, audit.Entry{
		Type:     domain.TransactionAdjustment,
		Quantity: 1,
		Notes:    fmt.Sprintf("User deleted: %s (%s)", user.FullName, user.Username),
	})

	log.Info("User deleted", "userID", id, "username", user.Username)
	return nil
}

// reassignmentHeir picks the admin that inherits a deleted user's log
// entries, and enforces the last-admin guard.
func (s *service) reassignmentHeir(ctx context.Context, doomed *domain.User) (*domain.User, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	var heir *domain.User
	admins := 0
	for i := range users {
		if users[i].Role != domain.RoleAdmin {
			continue
		}
		admins++
		if heir == nil && users[i].ID != doomed.ID {
			heir = &users[i]
		}
	}

	if doomed.Role == domain.RoleAdmin && admins <= 1 {
		return nil, domain.ErrLastAdmin
	}
	if heir == nil {
		return nil, fmt.Errorf("%w: no admin available to reassign transactions", domain.ErrInvalidInput)
	}
	return heir, nil
}
