package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType categorizes a stock or administrative movement.
type TransactionType string

const (
	TransactionIn          TransactionType = "in"
	TransactionOut         TransactionType = "out"
	TransactionAdjustment  TransactionType = "adjustment"
	TransactionUserCreated TransactionType = "user_created"
)

// Transaction is an immutable audit log entry. Entries are never updated or
// individually deleted; the log can only be bulk-flushed.
type Transaction struct {
	ID        int              `json:"id"`
	ItemID    *int             `json:"itemId"`
	UserID    int              `json:"userId"`
	Type      TransactionType  `json:"type"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
