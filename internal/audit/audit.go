// Package audit records stock movements and administrative actions into the
// immutable transaction log.
package audit

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/repository"
)

// Entry describes a single movement to be recorded.
type Entry struct {
	ItemID    *int
	Type      domain.TransactionType
	Quantity  int
	UnitPrice *decimal.Decimal
	Notes     string
}

// Logger appends entries to the transaction log.
type Logger interface {
	// Record writes an entry on behalf of actorID. actorID <= 0 means the
	// caller has no actor; a fallback is resolved. Failures are logged and
	// swallowed: the mutation the entry describes has already been applied
	// and is never rolled back over a logging problem.
	Record(ctx context.Context, actorID int, entry Entry)
}

type logger struct {
	transactions repository.Transaction
	users        repository.User
	log          *slog.Logger
}

// NewLogger creates an audit logger over the given repositories.
func NewLogger(transactions repository.Transaction, users repository.User, log *slog.Logger) Logger {
	if log == nil {
		log = slog.Default()
	}
	return &logger{transactions: transactions, users: users, log: log}
}

func (l *logger) Record(ctx context.Context, actorID int, entry Entry) {
	actor, err := l.resolveActor(ctx, actorID)
	if err != nil {
		l.log.WarnContext(ctx, "skipping audit entry, failed to resolve actor",
			slog.Int("actorId", actorID), slog.String("error", err.Error()))
		return
	}
	if actor == nil {
		l.log.WarnContext(ctx, "skipping audit entry, no users exist",
			slog.String("type", string(entry.Type)))
		return
	}

	_, err = l.transactions.InsertTransaction(ctx, &domain.Transaction{
		ItemID:    entry.ItemID,
		UserID:    actor.ID,
		Type:      entry.Type,
		Quantity:  entry.Quantity,
		UnitPrice: entry.UnitPrice,
		Notes:     entry.Notes,
	})
	if err != nil {
		l.log.WarnContext(ctx, "failed to record audit entry",
			slog.String("type", string(entry.Type)), slog.String("error", err.Error()))
	}
}

// resolveActor picks the user a log entry is attributed to. An explicit,
// existing actor wins; otherwise the first admin, then any user. A nil
// result with nil error means the log has nobody to attribute to.
func (l *logger) resolveActor(ctx context.Context, actorID int) (*domain.User, error) {
	if actorID > 0 {
		actor, err := l.users.GetUser(ctx, actorID)
		if err == nil {
			return actor, nil
		}
		// Fall through to the fallback chain on a missing actor.
	}

	users, err := l.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			return &u, nil
		}
	}
	if len(users) > 0 {
		return &users[0], nil
	}
	return nil, nil
}
