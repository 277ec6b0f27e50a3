package memory

import (
	"context"
	"sort"
	"time"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type categoryRepository Store

func (r *categoryRepository) GetCategory(_ context.Context, id int) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &category, nil
}

func (r *categoryRepository) GetAllCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *categoryRepository) InsertCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return nil, domain.ErrDuplicateCategory
		}
	}

	stored := *category
	stored.ID = r.nextCategoryID
	stored.CreatedAt = time.Now()
	r.nextCategoryID++
	r.categories[stored.ID] = stored
	return &stored, nil
}

func (r *categoryRepository) UpdateCategory(_ context.Context, id int, update domain.CategoryUpdate) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}

	if update.Name != nil && *update.Name != existing.Name {
		for _, other := range r.categories {
			if other.ID != id && other.Name == *update.Name {
				return nil, domain.ErrDuplicateCategory
			}
		}
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	r.categories[id] = existing
	return &existing, nil
}

func (r *categoryRepository) DeleteCategory(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	return true, nil
}
