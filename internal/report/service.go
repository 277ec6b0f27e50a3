// Package report implements the read side: item listings joined with
// category names, low-stock and expiration views, dashboard aggregates and
// the transaction history.
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/metrics"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// UncategorizedName is the display name used when an item has no category.
const UncategorizedName = "Uncategorized"

// CategoryFilter values with special meaning in ItemFilter.
const (
	CategoryFilterAll           = "all"
	CategoryFilterUncategorized = "uncategorized"
)

// ItemFilter narrows an item listing. Search wins over Category when both
// are set. Category is "all" (or empty), "uncategorized", or a category id.
type ItemFilter struct {
	Search   string
	Category string
}

// DashboardStats are the headline aggregates for the dashboard.
type DashboardStats struct {
	TotalItems        int             `json:"totalItems"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	LowStockCount     int             `json:"lowStockCount"`
	TodayTransactions int             `json:"todayTransactions"`
}

// ItemRef is the compact item reference embedded in a transaction view.
type ItemRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// UserRef is the compact user reference embedded in a transaction view.
type UserRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// TransactionDetail is a log entry joined with its item and actor. Either
// reference is null when the record no longer exists.
type TransactionDetail struct {
	domain.Transaction
	Item *ItemRef `json:"item"`
	User *UserRef `json:"user"`
}

// Service defines the reporting queries.
type Service interface {
	GetItem(ctx context.Context, id int) (*domain.Item, error)

	// ListItems returns items newest first, joined with category names,
	// narrowed by the filter.
	ListItems(ctx context.Context, filter ItemFilter) ([]domain.ItemWithCategory, error)

	// LowStockItems returns items whose quantity is below their minimum
	// stock level.
	LowStockItems(ctx context.Context) ([]domain.ItemWithCategory, error)

	// ExpiringSoonItems returns active expirable items whose expiration
	// date falls inside [today, today+thresholdDays], by calendar day.
	ExpiringSoonItems(ctx context.Context, thresholdDays int) ([]domain.Item, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)

	// Transactions returns log entries newest first; limit <= 0 means all.
	Transactions(ctx context.Context, limit int) ([]TransactionDetail, error)

	Categories(ctx context.Context) ([]domain.Category, error)
}

type service struct {
	items        repository.Item
	categories   repository.Category
	users        repository.User
	transactions repository.Transaction
	guard        *concurrency.Guard
	now          func() time.Time
}

// NewService creates a new report service. guard may be nil for callers that
// already hold the store exclusively.
func NewService(store repository.Store, guard *concurrency.Guard) Service {
	return &service{
		items:        store.Items(),
		categories:   store.Categories(),
		users:        store.Users(),
		transactions: store.Transactions(),
		guard:        guard,
		now:          time.Now,
	}
}

func (s *service) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	defer s.guard.Shared()()
	return s.items.GetItem(ctx, id)
}

func (s *service) ListItems(ctx context.Context, filter ItemFilter) ([]domain.ItemWithCategory, error) {
	defer s.guard.Shared()()

	items, err := s.filteredItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.withCategoryNames(ctx, items)
}

func (s *service) filteredItems(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	switch {
	case filter.Search != "":
		metrics.SearchesPerformed.Inc()
		return s.items.SearchItems(ctx, filter.Search)
	case filter.Category == "" || filter.Category == CategoryFilterAll:
		return s.items.GetAllItems(ctx)
	case filter.Category == CategoryFilterUncategorized:
		return s.items.FindItems(ctx, func(item domain.Item) bool {
			return item.CategoryID == nil
		})
	default:
		categoryID, err := strconv.Atoi(filter.Category)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return s.items.GetItemsByCategoryID(ctx, categoryID)
	}
}

func (s *service) LowStockItems(ctx context.Context) ([]domain.ItemWithCategory, error) {
	defer s.guard.Shared()()

	items, err := s.items.FindItems(ctx, domain.Item.IsLowStock)
	if err != nil {
		return nil, err
	}
	return s.withCategoryNames(ctx, items)
}

func (s *service) ExpiringSoonItems(ctx context.Context, thresholdDays int) ([]domain.Item, error) {
	defer s.guard.Shared()()

	today := domain.StartOfDay(s.now())
	cutoff := today.AddDate(0, 0, thresholdDays)

	return s.items.FindItems(ctx, func(item domain.Item) bool {
		if !item.Expirable || item.ExpirationDate == nil || item.Status != domain.ItemStatusActive {
			return false
		}
		date := domain.StartOfDay(*item.ExpirationDate)
		return !date.Before(today) && !date.After(cutoff)
	})
}

func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	defer s.guard.Shared()()

	items, err := s.items.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalValue: decimal.Zero}
	for _, item := range items {
		stats.TotalItems += item.Quantity
		stats.TotalValue = stats.TotalValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		if item.IsLowStock() {
			stats.LowStockCount++
		}
	}
	stats.TotalValue = stats.TotalValue.Round(2)

	stats.TodayTransactions, err = s.transactions.CountTransactionsSince(ctx, domain.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *service) Transactions(ctx context.Context, limit int) ([]TransactionDetail, error) {
	defer s.guard.Shared()()

	transactions, err := s.transactions.GetAllTransactions(ctx, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.items.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	itemRefs := make(map[int]ItemRef, len(items))
	for _, item := range items {
		itemRefs[item.ID] = ItemRef{ID: item.ID, Name: item.Name, SKU: item.SKU}
	}
	userRefs := make(map[int]UserRef, len(users))
	for _, user := range users {
		userRefs[user.ID] = UserRef{ID: user.ID, FullName: user.FullName, Username: user.Username}
	}

	details := make([]TransactionDetail, 0, len(transactions))
	for _, tx := range transactions {
		detail := TransactionDetail{Transaction: tx}
		if tx.ItemID != nil {
			if ref, ok := itemRefs[*tx.ItemID]; ok {
				detail.Item = &ref
			}
		}
		if ref, ok := userRefs[tx.UserID]; ok {
			detail.User = &ref
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *service) Categories(ctx context.Context) ([]domain.Category, error) {
	defer s.guard.Shared()()
	return s.categories.GetAllCategories(ctx)
}

// withCategoryNames joins items with their category's display name.
func (s *service) withCategoryNames(ctx context.Context, items []domain.Item) ([]domain.ItemWithCategory, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	joined := make([]domain.ItemWithCategory, 0, len(items))
	for _, item := range items {
		name := UncategorizedName
		if item.CategoryID != nil {
			if n, ok := names[*item.CategoryID]; ok {
				name = n
			}
		}
		joined = append(joined, domain.ItemWithCategory{Item: item, CategoryName: name})
	}
	return joined, nil
}
