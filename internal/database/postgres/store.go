// Package postgres implements the repository interfaces on PostgreSQL with
// hand-written pgx queries.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventoria-app/inventoria/internal/repository"
)

// Store implements repository.Store for PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a PostgreSQL-backed store on top of an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Users() repository.User               { return &userRepository{pool: s.pool} }
func (s *Store) Categories() repository.Category      { return &categoryRepository{pool: s.pool} }
func (s *Store) Items() repository.Item               { return &itemRepository{pool: s.pool} }
func (s *Store) Transactions() repository.Transaction { return &transactionRepository{pool: s.pool} }

// ClearAll removes every record, children before parents, in one transaction.
// Sequences are left alone so ids are never reused.
func (s *Store) ClearAll(ctx context.Context) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"transactions", "items", "categories", "users"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
