package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     StockStatus
	}{
		{"zero quantity is critical", 0, 5, StockCritical},
		{"at 30 percent of threshold is urgent", 1, 5, StockUrgent},
		{"below threshold is low", 4, 5, StockLow},
		{"at threshold is good", 5, 5, StockGood},
		{"at 2.5x threshold is still good", 12, 5, StockGood},
		{"above 2.5x threshold is saturated", 13, 5, StockSaturated},
		{"unset threshold falls back to default", 4, 0, StockLow},
		{"negative threshold falls back to default", 5, -1, StockGood},
		{"large threshold urgent band", 3, 10, StockUrgent},
		{"large threshold saturated band", 26, 10, StockSaturated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStock(tt.quantity, tt.minStock))
		})
	}
}

func TestClassifyStockIsPure(t *testing.T) {
	// Same inputs, same answer, regardless of call order.
	for i := 0; i < 3; i++ {
		assert.Equal(t, StockUrgent, ClassifyStock(1, 5))
		assert.Equal(t, StockSaturated, ClassifyStock(13, 5))
	}
}

func TestItemIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)

	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 9, 0, 0, 0, time.Local)
		return &t
	}

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"not expirable", Item{Expirable: false, ExpirationDate: date(2024, 6, 1)}, false},
		{"no date set", Item{Expirable: true}, false},
		{"past date", Item{Expirable: true, ExpirationDate: date(2024, 6, 1)}, true},
		{"same day counts as expired regardless of time", Item{Expirable: true, ExpirationDate: date(2024, 6, 15)}, true},
		{"future date", Item{Expirable: true, ExpirationDate: date(2024, 6, 16)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.IsExpired(now))
		})
	}
}

func TestItemIsLowStock(t *testing.T) {
	assert.True(t, Item{Quantity: 4, MinStockLevel: 5}.IsLowStock())
	assert.False(t, Item{Quantity: 5, MinStockLevel: 5}.IsLowStock())
	// Unset threshold uses the default of 5.
	assert.True(t, Item{Quantity: 4}.IsLowStock())
}
