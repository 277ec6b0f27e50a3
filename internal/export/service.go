// Package export builds XLSX workbooks from the inventory and the activity
// log, with the same filters the listing endpoints offer.
package export

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/inventoria-app/inventoria/internal/concurrency"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/metrics"
	"github.com/inventoria-app/inventoria/internal/repository"
)

const (
	inventorySheet = "Inventory"
	activitySheet  = "Activity"

	maxInventoryColWidth = 50
	maxActivityColWidth  = 30
)

// InventoryFilter narrows an inventory export. String fields accept "" or
// "all" for no filtering; Category additionally accepts "uncategorized" or a
// category name; Rentable and Expirable accept "true"/"false".
type InventoryFilter struct {
	Category  string
	Status    string
	Rentable  string
	Expirable string
	LowStock  bool
	Expired   bool
}

// ActivityFilter narrows an activity export. Zero values mean no filtering.
// Days wins over the DateFrom/DateTo range when set.
type ActivityFilter struct {
	Type     string
	UserID   int
	ItemID   int
	Days     int
	DateFrom *time.Time
	DateTo   *time.Time
}

// Workbook is a rendered spreadsheet plus its download filename.
type Workbook struct {
	File     *excelize.File
	Filename string
}

// Service renders spreadsheet exports.
type Service interface {
	InventoryWorkbook(ctx context.Context, filter InventoryFilter) (*Workbook, error)
	ActivityWorkbook(ctx context.Context, filter ActivityFilter) (*Workbook, error)
}

type service struct {
	items        repository.Item
	categories   repository.Category
	users        repository.User
	transactions repository.Transaction
	guard        *concurrency.Guard
	now          func() time.Time
}

// NewService creates a new export service.
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

var inventoryHeaders = []string{
	"Item ID", "Name", "SKU", "Description", "Category", "Quantity",
	"Unit Price", "Total Value", "Location", "Min Stock Level", "Status",
	"Rentable", "Expirable", "Rented Count", "Broken Count",
	"Available Count", "Expiration Date", "Days Until Expiry",
	"Is Low Stock", "Is Expired", "Created At", "Updated At",
}

func (s *service) InventoryWorkbook(ctx context.Context, filter InventoryFilter) (*Workbook, error) {
	defer s.guard.Shared()()

	items, err := s.items.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[int]string, len(categories))
	categoryIDs := make(map[string]int, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
		categoryIDs[c.Name] = c.ID
	}

	now := s.now()
	items = filterItems(items, filter, categoryIDs, now)

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, inventoryRow(item, categoryNames, now))
	}

	file, err := buildWorkbook(inventorySheet, inventoryHeaders, rows, maxInventoryColWidth)
	if err != nil {
		return nil, err
	}

	metrics.ExportsGenerated.WithLabelValues("inventory").Inc()
	return &Workbook{
		File:     file,
		Filename: exportFilename("inventory_export", inventoryFilterParts(filter), now),
	}, nil
}

func filterItems(items []domain.Item, filter InventoryFilter, categoryIDs map[string]int, now time.Time) []domain.Item {
	matched := items[:0]
	for _, item := range items {
		if !matchesInventoryFilter(item, filter, categoryIDs, now) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func matchesInventoryFilter(item domain.Item, filter InventoryFilter, categoryIDs map[string]int, now time.Time) bool {
	switch {
	case filter.Category == "" || filter.Category == "all":
	case filter.Category == "uncategorized":
		if item.CategoryID != nil {
			return false
		}
	default:
		id, ok := categoryIDs[filter.Category]
		if ok && (item.CategoryID == nil || *item.CategoryID != id) {
			return false
		}
	}

	if filter.Status != "" && filter.Status != "all" && item.Status != filter.Status {
		return false
	}
	if filter.Rentable == "true" && !item.Rentable || filter.Rentable == "false" && item.Rentable {
		return false
	}
	if filter.Expirable == "true" && !item.Expirable || filter.Expirable == "false" && item.Expirable {
		return false
	}
	if filter.LowStock && !item.IsLowStock() {
		return false
	}
	if filter.Expired && !item.IsExpired(now) {
		return false
	}
	return true
}

func inventoryRow(item domain.Item, categoryNames map[int]string, now time.Time) []any {
	categoryName := "Uncategorized"
	if item.CategoryID != nil {
		if name, ok := categoryNames[*item.CategoryID]; ok {
			categoryName = name
		}
	}

	totalValue := item.UnitPrice.Mul(decimalFromInt(item.Quantity)).StringFixed(2)

	var expirationDate, daysUntilExpiry any = "", ""
	if item.ExpirationDate != nil {
		expirationDate = item.ExpirationDate.Format("2006-01-02")
		daysUntilExpiry = int(math.Ceil(item.ExpirationDate.Sub(now).Hours() / 24))
	}

	return []any{
		item.ID, item.Name, item.SKU, item.Description, categoryName,
		item.Quantity, item.UnitPrice.StringFixed(2), totalValue,
		item.Location, domain.EffectiveMinStock(item.MinStockLevel), item.Status,
		yesNo(item.Rentable), yesNo(item.Expirable),
		item.RentedCount, item.BrokenCount,
		item.Quantity - item.RentedCount,
		expirationDate, daysUntilExpiry,
		yesNo(item.IsLowStock()), yesNo(item.IsExpired(now)),
		item.CreatedAt.Format(time.RFC3339), item.UpdatedAt.Format(time.RFC3339),
	}
}

func inventoryFilterParts(filter InventoryFilter) []string {
	var parts []string
	if filter.Category != "" && filter.Category != "all" {
		parts = append(parts, "category-"+filter.Category)
	}
	if filter.Status != "" && filter.Status != "all" {
		parts = append(parts, "status-"+filter.Status)
	}
	if filter.Rentable != "" && filter.Rentable != "all" {
		parts = append(parts, "rentable-"+filter.Rentable)
	}
	if filter.Expirable != "" && filter.Expirable != "all" {
		parts = append(parts, "expirable-"+filter.Expirable)
	}
	if filter.LowStock {
		parts = append(parts, "low-stock")
	}
	if filter.Expired {
		parts = append(parts, "expired")
	}
	return parts
}

var activityHeaders = []string{
	"Transaction ID", "Date", "Time", "Type", "Item Name", "Item ID",
	"Quantity", "Unit Price", "Total Value", "User", "User ID", "Notes",
	"Created At",
}

func (s *service) ActivityWorkbook(ctx context.Context, filter ActivityFilter) (*Workbook, error) {
	defer s.guard.Shared()()

	transactions, err := s.transactions.GetAllTransactions(ctx, 0)
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

	itemNames := make(map[int]string, len(items))
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}
	userNames := make(map[int]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.FullName
	}

	now := s.now()
	transactions = filterTransactions(transactions, filter, now)

	rows := make([][]any, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, activityRow(tx, itemNames, userNames))
	}

	file, err := buildWorkbook(activitySheet, activityHeaders, rows, maxActivityColWidth)
	if err != nil {
		return nil, err
	}

	metrics.ExportsGenerated.WithLabelValues("activity").Inc()
	return &Workbook{
		File:     file,
		Filename: exportFilename("activity_export", activityFilterParts(filter), now),
	}, nil
}

func filterTransactions(transactions []domain.Transaction, filter ActivityFilter, now time.Time) []domain.Transaction {
	matched := transactions[:0]
	for _, tx := range transactions {
		if !matchesActivityFilter(tx, filter, now) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

func matchesActivityFilter(tx domain.Transaction, filter ActivityFilter, now time.Time) bool {
	if filter.Type != "" && filter.Type != "all" && string(tx.Type) != filter.Type {
		return false
	}
	if filter.UserID != 0 && tx.UserID != filter.UserID {
		return false
	}
	if filter.ItemID != 0 && (tx.ItemID == nil || *tx.ItemID != filter.ItemID) {
		return false
	}

	if filter.Days > 0 {
		cutoff := now.AddDate(0, 0, -filter.Days)
		return !tx.CreatedAt.Before(cutoff)
	}
	if filter.DateFrom != nil && tx.CreatedAt.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil {
		// DateTo is inclusive of the whole calendar day.
		end := domain.StartOfDay(*filter.DateTo).AddDate(0, 0, 1)
		if !tx.CreatedAt.Before(end) {
			return false
		}
	}
	return true
}

func activityRow(tx domain.Transaction, itemNames, userNames map[int]string) []any {
	itemName := "System/Unknown"
	var itemID any = ""
	if tx.ItemID != nil {
		itemID = *tx.ItemID
		if name, ok := itemNames[*tx.ItemID]; ok {
			itemName = name
		}
	}

	userName := "System"
	if name, ok := userNames[tx.UserID]; ok {
		userName = name
	}

	unitPrice := "0.00"
	totalValue := "0.00"
	if tx.UnitPrice != nil {
		unitPrice = tx.UnitPrice.StringFixed(2)
		totalValue = tx.UnitPrice.Mul(decimalFromInt(tx.Quantity)).StringFixed(2)
	}

	return []any{
		tx.ID,
		tx.CreatedAt.Format("2006-01-02"),
		tx.CreatedAt.Format("15:04:05"),
		capitalize(string(tx.Type)),
		itemName, itemID,
		tx.Quantity, unitPrice, totalValue,
		userName, tx.UserID, tx.Notes,
		tx.CreatedAt.Format(time.RFC3339),
	}
}

func activityFilterParts(filter ActivityFilter) []string {
	var parts []string
	if filter.Type != "" && filter.Type != "all" {
		parts = append(parts, "type-"+filter.Type)
	}
	if filter.UserID != 0 {
		parts = append(parts, fmt.Sprintf("user-%d", filter.UserID))
	}
	if filter.ItemID != 0 {
		parts = append(parts, fmt.Sprintf("item-%d", filter.ItemID))
	}
	if filter.Days > 0 {
		parts = append(parts, fmt.Sprintf("%ddays", filter.Days))
	} else {
		if filter.DateFrom != nil {
			parts = append(parts, "from-"+filter.DateFrom.Format("2006-01-02"))
		}
		if filter.DateTo != nil {
			parts = append(parts, "to-"+filter.DateTo.Format("2006-01-02"))
		}
	}
	return parts
}

// buildWorkbook writes a header row plus data rows onto a single sheet and
// sizes every column to its longest value, capped at maxColWidth.
func buildWorkbook(sheet string, headers []string, rows [][]any, maxColWidth float64) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(headers))
	widths := make([]float64, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = float64(len(h))
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		for col, value := range row {
			if w := float64(len(fmt.Sprint(value))); w > widths[col] {
				widths[col] = w
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetColWidth(sheet, col, col, math.Min(width+2, maxColWidth)); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}
	return file, nil
}

func exportFilename(prefix string, filterParts []string, now time.Time) string {
	suffix := ""
	if len(filterParts) > 0 {
		suffix = "_" + strings.Join(filterParts, "_")
	}
	return fmt.Sprintf("%s%s_%s.xlsx", prefix, suffix, now.Format("2006-01-02"))
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
