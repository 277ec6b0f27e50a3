// Package inventory implements the stock mutation engine: item and category
// writes, rentals and returns, with every stock movement recorded in the
// transaction log.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventoria-app/inventoria/internal/audit"
	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/metrics"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// NewItem carries the fields accepted when creating an item. Zero-valued
// optional fields get defaults: MinStockLevel 5, Rentable true.
type NewItem struct {
	Name           string
	SKU            string
	Description    string
	CategoryID     *int
	Quantity       int
	UnitPrice      decimal.Decimal
	Location       string
	MinStockLevel  *int
	Rentable       *bool
	Expirable      bool
	ExpirationDate *time.Time
}

// Service defines the inventory mutation business logic.
type Service interface {
	// CreateItem stores a new item and logs its initial stock as an "in"
	// movement.
	CreateItem(ctx context.Context, input NewItem) (*domain.Item, error)

	// UpdateItem applies a partial update. Quantity changes are logged as
	// in/out movements; a broken-count increase is logged as an adjustment.
	UpdateItem(ctx context.Context, id int, update domain.ItemUpdate) (*domain.Item, error)

	// DeleteItem removes an item and its transaction history. The deletion
	// itself is not logged.
	DeleteItem(ctx context.Context, id int) error

	// RentItem moves quantity units from available stock to rented, on
	// behalf of userID. Fails with domain.ErrInsufficientStock when not
	// enough units are available.
	RentItem(ctx context.Context, itemID, quantity, userID int) (*domain.Item, error)

	// ReturnItem moves quantity units back from rented to available stock.
	// Fails with domain.ErrOverReturn when more units would come back than
	// are out.
	ReturnItem(ctx context.Context, itemID, quantity, userID int) (*domain.Item, error)

	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int, update domain.CategoryUpdate) (*domain.Category, error)

	// DeleteCategory fails with domain.ErrCategoryInUse while any item
	// still references the category.
	DeleteCategory(ctx context.Context, id int) error
}

type service struct {
	items      repository.Item
	categories repository.Category
	auditLog   audit.Logger
	guard      *concurrency.Guard
}

// NewService creates a new inventory service. guard may be nil for callers
// that already hold the store exclusively.
func NewService(items repository.Item, categories repository.Category, auditLog audit.Logger, guard *concurrency.Guard) Service {
	return &service{
		items:      items,
		categories: categories,
		auditLog:   auditLog,
		guard:      guard,
	}
}

func (s *service) CreateItem(ctx context.Context, input NewItem) (*domain.Item, error) {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if input.Name == "" || input.SKU == "" {
		return nil, fmt.Errorf("%w: name and sku are required", domain.ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidInput)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", domain.ErrInvalidInput)
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	item := &domain.Item{
		Name:           input.Name,
		SKU:            input.SKU,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		Quantity:       input.Quantity,
		UnitPrice:      input.UnitPrice,
		Location:       input.Location,
		MinStockLevel:  domain.DefaultMinStockLevel,
		Status:         domain.ItemStatusActive,
		Rentable:       true,
		Expirable:      input.Expirable,
		ExpirationDate: input.ExpirationDate,
	}
	if input.MinStockLevel != nil {
		item.MinStockLevel = *input.MinStockLevel
	}
	if input.Rentable != nil {
		item.Rentable = *input.Rentable
	}

	stored, err := s.items.InsertItem(ctx, item)
	if err != nil {
		return nil, err
	}

	price := stored.UnitPrice
	s.auditLog.Record(ctx, 0, audit.Entry{
		ItemID:    &stored.ID,
		Type:      domain.TransactionIn,
		Quantity:  stored.Quantity,
		UnitPrice: &price,
		Notes:     fmt.Sprintf("Item created: %s", stored.Name),
	})
	metrics.StockMovements.WithLabelValues(string(domain.TransactionIn)).Inc()

	log.Info("Item created", "itemID", stored.ID, "sku", stored.SKU, "quantity", stored.Quantity)
	return stored, nil
}

func (s *service) UpdateItem(ctx context.Context, id int, update domain.ItemUpdate) (*domain.Item, error) {
	defer s.guard.Shared()()

	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidInput)
	}
	if update.UnitPrice != nil && update.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", domain.ErrInvalidInput)
	}
	if update.CategoryID.Set && update.CategoryID.Value != nil {
		if _, err := s.categories.GetCategory(ctx, *update.CategoryID.Value); err != nil {
			return nil, err
		}
	}

	updated, prev, err := s.items.UpdateItem(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logQuantityChange(ctx, updated, prev)
	s.logBrokenIncrease(ctx, updated, prev)
	return updated, nil
}

// logQuantityChange records a quantity delta between two item states. An
// increase is an "in" movement, a decrease an "out".
func (s *service) logQuantityChange(ctx context.Context, updated, prev *domain.Item) {
	diff := updated.Quantity - prev.Quantity
	if diff == 0 {
		return
	}

	movement := domain.TransactionIn
	direction := "increased"
	quantity := diff
	if diff < 0 {
		movement = domain.TransactionOut
		direction = "decreased"
		quantity = -diff
	}

	price := updated.UnitPrice
	s.auditLog.Record(ctx, 0, audit.Entry{
		ItemID:    &updated.ID,
		Type:      movement,
		Quantity:  quantity,
		UnitPrice: &price,
		Notes:     fmt.Sprintf("Quantity %s by %d", direction, quantity),
	})
	metrics.StockMovements.WithLabelValues(string(movement)).Inc()
}

// logBrokenIncrease records a broken-count increase as an adjustment.
// Decreases are applied silently.
func (s *service) logBrokenIncrease(ctx context.Context, updated, prev *domain.Item) {
	diff := updated.BrokenCount - prev.BrokenCount
	if diff <= 0 {
		return
	}

	price := updated.UnitPrice
	s.auditLog.Record(ctx, 0, audit.Entry{
		ItemID:    &updated.ID,
		Type:      domain.TransactionAdjustment,
		Quantity:  diff,
		UnitPrice: &price,
		Notes:     fmt.Sprintf("Broken count increased by %d", diff),
	})
	metrics.StockMovements.WithLabelValues(string(domain.TransactionAdjustment)).Inc()
}

func (s *service) DeleteItem(ctx context.Context, id int) error {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	deleted, err := s.items.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrItemNotFound
	}

	log.Info("Item deleted", "itemID", id)
	return nil
}

func (s *service) RentItem(ctx context.Context, itemID, quantity, userID int) (*domain.Item, error) {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	item, err := s.items.AdjustStock(ctx, itemID, -quantity, quantity)
	if err != nil {
		return nil, err
	}

	price := item.UnitPrice
	s.auditLog.Record(ctx, userID, audit.Entry{
		ItemID:    &item.ID,
		Type:      domain.TransactionOut,
		Quantity:  quantity,
		UnitPrice: &price,
		Notes:     fmt.Sprintf("Item rented - %d units", quantity),
	})
	metrics.ItemsRented.Add(float64(quantity))
	metrics.StockMovements.WithLabelValues(string(domain.TransactionOut)).Inc()

	log.Info("Item rented", "itemID", itemID, "quantity", quantity, "userID", userID)
	return item, nil
}

func (s *service) ReturnItem(ctx context.Context, itemID, quantity, userID int) (*domain.Item, error) {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	item, err := s.items.AdjustStock(ctx, itemID, quantity, -quantity)
	if err != nil {
		return nil, err
	}

	price := item.UnitPrice
	s.auditLog.Record(ctx, userID, audit.Entry{
		ItemID:    &item.ID,
		Type:      domain.TransactionIn,
		Quantity:  quantity,
		UnitPrice: &price,
		Notes:     fmt.Sprintf("Item returned - %d units", quantity),
	})
	metrics.ItemsReturned.Add(float64(quantity))
	metrics.StockMovements.WithLabelValues(string(domain.TransactionIn)).Inc()

	log.Info("Item returned", "itemID", itemID, "quantity", quantity, "userID", userID)
	return item, nil
}

func (s *service) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	defer s.guard.Shared()()

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	return s.categories.InsertCategory(ctx, &domain.Category{
		Name:        name,
		Description: description,
	})
}

func (s *service) UpdateCategory(ctx context.Context, id int, update domain.CategoryUpdate) (*domain.Category, error) {
	defer s.guard.Shared()()

	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}

	return s.categories.UpdateCategory(ctx, id, update)
}

func (s *service) DeleteCategory(ctx context.Context, id int) error {
	defer s.guard.Shared()()
	log := logger.FromContext(ctx)

	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		return err
	}

	items, err := s.items.GetItemsByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return fmt.Errorf("%w: %d items assigned", domain.ErrCategoryInUse, len(items))
	}

	deleted, err := s.categories.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrCategoryNotFound
	}

	log.Info("Category deleted", "categoryID", id)
	return nil
}
