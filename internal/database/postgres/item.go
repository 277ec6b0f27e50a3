package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type itemRepository struct {
	pool *pgxpool.Pool
}

const itemColumns = `id, name, sku, description, category_id, quantity, unit_price::text,
	location, min_stock_level, status, rented_count, broken_count,
	rentable, expirable, expiration_date, created_at, updated_at`

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var price string
	err := row.Scan(
		&item.ID, &item.Name, &item.SKU, &item.Description, &item.CategoryID,
		&item.Quantity, &price, &item.Location, &item.MinStockLevel,
		&item.Status, &item.RentedCount, &item.BrokenCount,
		&item.Rentable, &item.Expirable, &item.ExpirationDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.UnitPrice = parseNumeric(price)
	return &item, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *itemRepository) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return collectItems(rows)
}

func (r *itemRepository) GetItemsByCategoryID(ctx context.Context, categoryID int) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY id DESC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by category: %w", err)
	}
	return collectItems(rows)
}

// FindItems scans all items and filters in process. The item set is small by
// design; predicates stay expressible in Go instead of SQL fragments.
func (r *itemRepository) FindItems(ctx context.Context, predicate func(domain.Item) bool) ([]domain.Item, error) {
	items, err := r.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	matched := items[:0]
	for _, item := range items {
		if predicate(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *itemRepository) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE name ILIKE $1 OR sku ILIKE $1 OR description ILIKE $1
		 ORDER BY id DESC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return collectItems(rows)
}

func (r *itemRepository) InsertItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO items (name, sku, description, category_id, quantity, unit_price,
			location, min_stock_level, status, rented_count, broken_count,
			rentable, expirable, expiration_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+itemColumns,
		item.Name, item.SKU, item.Description, item.CategoryID, item.Quantity,
		item.UnitPrice.StringFixed(2), item.Location, item.MinStockLevel,
		item.Status, item.RentedCount, item.BrokenCount,
		item.Rentable, item.Expirable, item.ExpirationDate)

	stored, err := scanItem(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return stored, nil
}

// UpdateItem merges the partial update under a row lock so the returned prev
// snapshot is exactly the value the write replaced.
func (r *itemRepository) UpdateItem(ctx context.Context, id int, update domain.ItemUpdate) (*domain.Item, *domain.Item, error) {
	var updated, prev *domain.Item

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
		existing, err := scanItem(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("failed to lock item: %w", err)
		}

		merged := update.Apply(*existing)
		row = tx.QueryRow(ctx,
			`UPDATE items SET name = $2, sku = $3, description = $4, category_id = $5,
				quantity = $6, unit_price = $7, location = $8, min_stock_level = $9,
				status = $10, rented_count = $11, broken_count = $12,
				rentable = $13, expirable = $14, expiration_date = $15, updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+itemColumns,
			id, merged.Name, merged.SKU, merged.Description, merged.CategoryID,
			merged.Quantity, merged.UnitPrice.StringFixed(2), merged.Location,
			merged.MinStockLevel, merged.Status, merged.RentedCount, merged.BrokenCount,
			merged.Rentable, merged.Expirable, merged.ExpirationDate)

		stored, err := scanItem(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateSKU
			}
			return fmt.Errorf("failed to update item: %w", err)
		}

		updated, prev = stored, existing
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, prev, nil
}

// AdjustStock applies the deltas with the non-negativity checks inside the
// UPDATE predicate, so they are evaluated against the row value at write time.
func (r *itemRepository) AdjustStock(ctx context.Context, id, quantityDelta, rentedDelta int) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE items
		 SET quantity = quantity + $2, rented_count = rented_count + $3, updated_at = NOW()
		 WHERE id = $1 AND quantity + $2 >= 0 AND rented_count + $3 >= 0
		 RETURNING `+itemColumns,
		id, quantityDelta, rentedDelta)

	item, err := scanItem(row)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	// No row matched: either the item is gone or a guard failed.
	existing, getErr := r.GetItem(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Quantity+quantityDelta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	return nil, domain.ErrOverReturn
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int) (bool, error) {
	// Transactions referencing the item go with it (ON DELETE CASCADE).
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
