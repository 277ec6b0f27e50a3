// Package backup implements snapshot export and the destructive import path
// that atomically replaces the entire store contents.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/inventoria-app/inventoria/internal/bootstrap"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/metrics"
	"github.com/inventoria-app/inventoria/internal/repository"
	"github.com/inventoria-app/inventoria/internal/user"
)

// Service defines backup and restore operations.
type Service interface {
	// ExportSnapshot returns a complete copy of the store plus the export
	// timestamp.
	ExportSnapshot(ctx context.Context) (*domain.Snapshot, error)

	// ImportSnapshot validates the snapshot, wipes the store, and replays
	// its records through the regular create paths so ids are freshly
	// assigned and creations are logged. On replay failure the store is
	// reseeded with defaults and domain.ErrImportFailed is returned.
	ImportSnapshot(ctx context.Context, snapshot *domain.Snapshot) (*domain.ImportSummary, error)

	// FlushActivityLogs removes every transaction log entry.
	FlushActivityLogs(ctx context.Context) error
}

type service struct {
	store  repository.Store
	guard  *concurrency.Guard
	seeder *bootstrap.Seeder
	now    func() time.Time

	// Replay services are built with a nil guard: ImportSnapshot already
	// holds the exclusive side when it calls them.
	inventorySvc inventory.Service
	userSvc      user.Service
}

// NewService creates a backup service. inventorySvc and userSvc must be
// unguarded instances over the same store.
func NewService(store repository.Store, guard *concurrency.Guard, seeder *bootstrap.Seeder, inventorySvc inventory.Service, userSvc user.Service) Service {
	return &service{
		store:        store,
		guard:        guard,
		seeder:       seeder,
		now:          time.Now,
		inventorySvc: inventorySvc,
		userSvc:      userSvc,
	}
}

func (s *service) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	defer s.guard.Shared()()

	items, err := s.store.Items().GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.Categories().GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users().GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.Transactions().GetAllTransactions(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Items:        items,
		Categories:   categories,
		Users:        users,
		Transactions: transactions,
		ExportDate:   s.now(),
	}, nil
}

func (s *service) ImportSnapshot(ctx context.Context, snapshot *domain.Snapshot) (*domain.ImportSummary, error) {
	log := logger.FromContext(ctx)

	if err := validateSnapshot(snapshot); err != nil {
		metrics.BackupImports.WithLabelValues("rejected").Inc()
		return nil, err
	}

	defer s.guard.Exclusive()()

	log.Info("Starting snapshot import",
		"categories", len(snapshot.Categories), "users", len(snapshot.Users), "items", len(snapshot.Items))

	if err := s.store.ClearAll(ctx); err != nil {
		metrics.BackupImports.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
	}

	summary, err := s.replay(ctx, snapshot)
	if err != nil {
		log.Error("Snapshot import failed, reseeding defaults", "error", err)
		if seedErr := s.reseed(ctx); seedErr != nil {
			log.Error("Failed to reseed after import failure", "error", seedErr)
		}
		metrics.BackupImports.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
	}

	metrics.BackupImports.WithLabelValues("success").Inc()
	log.Info("Snapshot import completed",
		"categories", summary.Categories, "users", summary.Users, "items", summary.Items)
	return summary, nil
}

// validateSnapshot applies the acceptance rules before anything is touched.
func validateSnapshot(snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty snapshot", domain.ErrSnapshotRejected)
	}
	if len(snapshot.Users) == 0 {
		return fmt.Errorf("%w: snapshot must contain at least one user", domain.ErrSnapshotRejected)
	}
	if len(snapshot.Categories) == 0 && len(snapshot.Items) > 0 {
		return fmt.Errorf("%w: cannot import items without categories", domain.ErrSnapshotRejected)
	}
	for _, c := range snapshot.Categories {
		if c.Name == "" {
			return fmt.Errorf("%w: all categories must have a name", domain.ErrSnapshotRejected)
		}
	}
	for _, u := range snapshot.Users {
		if u.Username == "" || u.FullName == "" || u.Role == "" {
			return fmt.Errorf("%w: all users must have username, fullName, and role", domain.ErrSnapshotRejected)
		}
	}
	for _, i := range snapshot.Items {
		if i.Name == "" || i.SKU == "" {
			return fmt.Errorf("%w: all items must have name and sku", domain.ErrSnapshotRejected)
		}
		if i.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: all items must have a non-negative unit price", domain.ErrSnapshotRejected)
		}
	}
	return nil
}

// replay recreates the snapshot's records through the regular create paths.
// Original ids are not preserved; category references are remapped onto the
// freshly assigned ids.
func (s *service) replay(ctx context.Context, snapshot *domain.Snapshot) (*domain.ImportSummary, error) {
	summary := &domain.ImportSummary{}

	categoryIDs := make(map[int]int, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		stored, err := s.inventorySvc.CreateCategory(ctx, c.Name, c.Description)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		categoryIDs[c.ID] = stored.ID
		summary.Categories++
	}

	for _, u := range snapshot.Users {
		isActive := u.IsActive
		_, err := s.userSvc.RegisterUser(ctx, user.NewUser{
			Username: u.Username,
			FullName: u.FullName,
			Role:     u.Role,
			IsActive: &isActive,
		})
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		summary.Users++
	}

	for _, i := range snapshot.Items {
		categoryID := i.CategoryID
		if categoryID != nil {
			if mapped, ok := categoryIDs[*categoryID]; ok {
				categoryID = &mapped
			}
		}

		minStock := i.MinStockLevel
		rentable := i.Rentable
		_, err := s.inventorySvc.CreateItem(ctx, inventory.NewItem{
			Name:           i.Name,
			SKU:            i.SKU,
			Description:    i.Description,
			CategoryID:     categoryID,
			Quantity:       i.Quantity,
			UnitPrice:      i.UnitPrice,
			Location:       i.Location,
			MinStockLevel:  &minStock,
			Rentable:       &rentable,
			Expirable:      i.Expirable,
			ExpirationDate: i.ExpirationDate,
		})
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", i.SKU, err)
		}
		summary.Items++
	}

	return summary, nil
}

// reseed restores a usable store after a failed import.
func (s *service) reseed(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	return s.seeder.Seed(ctx)
}

func (s *service) FlushActivityLogs(ctx context.Context) error {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if err := s.store.Transactions().FlushTransactions(ctx); err != nil {
		return err
	}
	log.Info("Activity logs flushed")
	return nil
}
