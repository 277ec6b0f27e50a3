package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type itemRepository Store

func (r *itemRepository) GetItem(_ context.Context, id int) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (r *itemRepository) GetAllItems(_ context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(domain.Item) bool { return true }), nil
}

func (r *itemRepository) GetItemsByCategoryID(_ context.Context, categoryID int) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item domain.Item) bool {
		return item.CategoryID != nil && *item.CategoryID == categoryID
	}), nil
}

func (r *itemRepository) FindItems(_ context.Context, predicate func(domain.Item) bool) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(predicate), nil
}

func (r *itemRepository) SearchItems(_ context.Context, query string) ([]domain.Item, error) {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item domain.Item) bool {
		return strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.SKU), q) ||
			strings.Contains(strings.ToLower(item.Description), q)
	}), nil
}

// collect returns matching items newest first. Callers hold the lock.
func (r *itemRepository) collect(predicate func(domain.Item) bool) []domain.Item {
	items := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		if predicate(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items
}

func (r *itemRepository) InsertItem(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.SKU == item.SKU {
			return nil, domain.ErrDuplicateSKU
		}
	}

	now := time.Now()
	stored := *item
	stored.ID = r.nextItemID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.nextItemID++
	r.items[stored.ID] = stored
	return &stored, nil
}

func (r *itemRepository) UpdateItem(_ context.Context, id int, update domain.ItemUpdate) (*domain.Item, *domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, nil, domain.ErrItemNotFound
	}

	if update.SKU != nil && *update.SKU != existing.SKU {
		for _, other := range r.items {
			if other.ID != id && other.SKU == *update.SKU {
				return nil, nil, domain.ErrDuplicateSKU
			}
		}
	}

	prev := existing
	updated := update.Apply(existing)
	updated.UpdatedAt = time.Now()
	r.items[id] = updated
	return &updated, &prev, nil
}

func (r *itemRepository) AdjustStock(_ context.Context, id, quantityDelta, rentedDelta int) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if existing.Quantity+quantityDelta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if existing.RentedCount+rentedDelta < 0 {
		return nil, domain.ErrOverReturn
	}

	existing.Quantity += quantityDelta
	existing.RentedCount += rentedDelta
	existing.UpdatedAt = time.Now()
	r.items[id] = existing
	return &existing, nil
}

func (r *itemRepository) DeleteItem(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	// Cascade: the item's audit history goes with it.
	for txID, tx := range r.transactions {
		if tx.ItemID != nil && *tx.ItemID == id {
			delete(r.transactions, txID)
		}
	}
	return true, nil
}
