package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type categoryRepository struct {
	pool *pgxpool.Pool
}

const categoryColumns = `id, name, description, created_at`

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) InsertCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING `+categoryColumns,
		category.Name, category.Description)

	stored, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return stored, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, id int, update domain.CategoryUpdate) (*domain.Category, error) {
	var updated *domain.Category

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
		existing, err := scanCategory(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCategoryNotFound
			}
			return fmt.Errorf("failed to lock category: %w", err)
		}

		if update.Name != nil {
			existing.Name = *update.Name
		}
		if update.Description != nil {
			existing.Description = *update.Description
		}

		row = tx.QueryRow(ctx,
			`UPDATE categories SET name = $2, description = $3
			 WHERE id = $1
			 RETURNING `+categoryColumns,
			id, existing.Name, existing.Description)

		stored, err := scanCategory(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateCategory
			}
			return fmt.Errorf("failed to update category: %w", err)
		}

		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
