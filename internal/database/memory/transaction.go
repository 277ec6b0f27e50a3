package memory

import (
	"context"
	"sort"
	"time"

	"github.com/inventoria-app/inventoria/internal/domain"
)

type transactionRepository Store

func (r *transactionRepository) InsertTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *tx
	stored.ID = r.nextTransactionID
	stored.CreatedAt = time.Now()
	r.nextTransactionID++
	r.transactions[stored.ID] = stored
	return &stored, nil
}

func (r *transactionRepository) GetAllTransactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txs := make([]domain.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID > txs[j].ID })
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (r *transactionRepository) CountTransactionsSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, tx := range r.transactions {
		if !tx.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepository) ReassignTransactions(_ context.Context, fromUserID, toUserID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, tx := range r.transactions {
		if tx.UserID == fromUserID {
			tx.UserID = toUserID
			r.transactions[id] = tx
		}
	}
	return nil
}

func (r *transactionRepository) FlushTransactions(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = make(map[int]domain.Transaction)
	return nil
}
