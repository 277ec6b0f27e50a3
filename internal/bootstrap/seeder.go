// Package bootstrap seeds a fresh store with the default users, categories
// and sample items so the system is usable out of the box.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// Seeder writes default records directly through the repositories, bypassing
// the services so seeding produces no audit entries.
type Seeder struct {
	store repository.Store
	now   func() time.Time
}

// NewSeeder creates a seeder over the given store.
func NewSeeder(store repository.Store) *Seeder {
	return &Seeder{store: store, now: time.Now}
}

// Seed populates defaults. It is idempotent: a store that already holds any
// user is left untouched.
func (s *Seeder) Seed(ctx context.Context) error {
	log := logger.FromContext(ctx)

	users, err := s.store.Users().GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(users) > 0 {
		log.Debug("Store already seeded, skipping")
		return nil
	}

	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	categoryIDs, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}
	if err := s.seedItems(ctx, categoryIDs); err != nil {
		return err
	}

	log.Info("Seeded default data")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	defaults := []domain.User{
		{Username: "admin", FullName: "Admin User", Role: domain.RoleAdmin, IsActive: true},
		{Username: "default", FullName: "Default User", Role: domain.RoleUser, IsActive: true},
		{Username: "overseer", FullName: "Overseer User", Role: domain.RoleOverseer, IsActive: true},
	}
	for i := range defaults {
		if _, err := s.store.Users().InsertUser(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", defaults[i].Username, err)
		}
	}
	return nil
}

// seedCategories inserts the default categories and returns their assigned
// ids keyed by name, so item seeding never assumes fixed ids.
func (s *Seeder) seedCategories(ctx context.Context) (map[string]int, error) {
	defaults := []domain.Category{
		{Name: "BSA", Description: "BSA related items"},
		{Name: "BR", Description: "BR related items"},
		{Name: "Electronics", Description: "Electronic devices and components"},
		{Name: "Tools", Description: "Hand tools and equipment"},
		{Name: "Food", Description: "Food items and supplies"},
		{Name: "Drinks", Description: "Beverages and drink supplies"},
	}

	ids := make(map[string]int, len(defaults))
	for i := range defaults {
		stored, err := s.store.Categories().InsertCategory(ctx, &defaults[i])
		if err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", defaults[i].Name, err)
		}
		ids[stored.Name] = stored.ID
	}
	return ids, nil
}

func (s *Seeder) seedItems(ctx context.Context, categoryIDs map[string]int) error {
	electronics := categoryIDs["Electronics"]
	bsa := categoryIDs["BSA"]
	food := categoryIDs["Food"]

	milkExpiry := s.now().AddDate(0, 0, 5)
	barsExpiry := s.now().AddDate(0, 0, 3)

	defaults := []domain.Item{
		{
			Name:          "Laptop Dell XPS 13",
			SKU:           "LAP-001",
			Description:   "13-inch ultrabook with Intel i7 processor",
			CategoryID:    &electronics,
			Quantity:      2,
			UnitPrice:     decimal.RequireFromString("999.99"),
			Location:      "Electronics Storage",
			MinStockLevel: 5,
			Status:        domain.ItemStatusActive,
			Rentable:      true,
		},
		{
			Name:          "Office Chair",
			SKU:           "CHR-001",
			Description:   "Ergonomic office chair with lumbar support",
			CategoryID:    &bsa,
			Quantity:      1,
			UnitPrice:     decimal.RequireFromString("299.99"),
			Location:      "Furniture Storage",
			MinStockLevel: 3,
			Status:        domain.ItemStatusActive,
			Rentable:      true,
		},
		{
			Name:           "Milk Cartons",
			SKU:            "MILK-001",
			Description:    "Fresh whole milk",
			CategoryID:     &food,
			Quantity:       8,
			UnitPrice:      decimal.RequireFromString("3.50"),
			Location:       "Cold Storage",
			MinStockLevel:  10,
			Status:         domain.ItemStatusActive,
			Expirable:      true,
			ExpirationDate: &milkExpiry,
		},
		{
			Name:           "Protein Bars",
			SKU:            "PROT-001",
			Description:    "High protein energy bars",
			CategoryID:     &food,
			Quantity:       15,
			UnitPrice:      decimal.RequireFromString("2.99"),
			Location:       "Pantry",
			MinStockLevel:  5,
			Status:         domain.ItemStatusActive,
			Expirable:      true,
			ExpirationDate: &barsExpiry,
		},
	}

	for i := range defaults {
		if _, err := s.store.Items().InsertItem(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", defaults[i].SKU, err)
		}
	}
	return nil
}
