package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type userRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, full_name, role, is_active, created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.FullName, &user.Role,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) InsertUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, full_name, role, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		user.Username, user.FullName, user.Role, user.IsActive)

	stored, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return stored, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id int, update domain.UserUpdate) (*domain.User, error) {
	var updated *domain.User

	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
		existing, err := scanUser(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if update.Username != nil {
			existing.Username = *update.Username
		}
		if update.FullName != nil {
			existing.FullName = *update.FullName
		}
		if update.Role != nil {
			existing.Role = *update.Role
		}
		if update.IsActive != nil {
			existing.IsActive = *update.IsActive
		}

		row = tx.QueryRow(ctx,
			`UPDATE users SET username = $2, full_name = $3, role = $4, is_active = $5, updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+userColumns,
			id, existing.Username, existing.FullName, existing.Role, existing.IsActive)

		stored, err := scanUser(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateUsername
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
