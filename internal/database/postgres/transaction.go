package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type transactionRepository struct {
	pool *pgxpool.Pool
}

const transactionColumns = `id, item_id, user_id, type, quantity, unit_price::text, notes, created_at`

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var price *string
	err := row.Scan(
		&tx.ID, &tx.ItemID, &tx.UserID, &tx.Type,
		&tx.Quantity, &price, &tx.Notes, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.UnitPrice = parseNullableNumeric(price)
	return &tx, nil
}

func (r *transactionRepository) InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	var price *string
	if tx.UnitPrice != nil {
		s := tx.UnitPrice.StringFixed(2)
		price = &s
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (item_id, user_id, type, quantity, unit_price, notes)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6)
		 RETURNING `+transactionColumns,
		tx.ItemID, tx.UserID, tx.Type, tx.Quantity, price, tx.Notes)

	stored, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return stored, nil
}

func (r *transactionRepository) GetAllTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.pool.Query(ctx,
			`SELECT `+transactionColumns+` FROM transactions ORDER BY id DESC LIMIT $1`, limit)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT `+transactionColumns+` FROM transactions ORDER BY id DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) CountTransactionsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) ReassignTransactions(ctx context.Context, fromUserID, toUserID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE transactions SET user_id = $2 WHERE user_id = $1`, fromUserID, toUserID)
	if err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}
	return nil
}

func (r *transactionRepository) FlushTransactions(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to flush transactions: %w", err)
	}
	return nil
}
