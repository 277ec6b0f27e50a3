package domain

import "time"

// StockStatus is the stock-level classification of an item.
type StockStatus string

const (
	StockCritical  StockStatus = "critical"
	StockUrgent    StockStatus = "urgent"
	StockLow       StockStatus = "low"
	StockGood      StockStatus = "good"
	StockSaturated StockStatus = "saturated"
)

// DefaultMinStockLevel applies when an item has no usable threshold of its own.
const DefaultMinStockLevel = 5

// EffectiveMinStock returns the threshold to classify against.
func EffectiveMinStock(minStockLevel int) int {
	if minStockLevel <= 0 {
		return DefaultMinStockLevel
	}
	return minStockLevel
}

// ClassifyStock maps quantity against the effective minimum stock level.
// Saturation starts above 2.5x the threshold.
func ClassifyStock(quantity, minStockLevel int) StockStatus {
	min := EffectiveMinStock(minStockLevel)
	switch {
	case quantity <= 0:
		return StockCritical
	case float64(quantity) <= 0.3*float64(min):
		return StockUrgent
	case quantity < min:
		return StockLow
	case float64(quantity) <= 2.5*float64(min):
		return StockGood
	default:
		return StockSaturated
	}
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsExpired reports whether the item has passed its expiration date. The
// comparison is date-only; an item expires on the morning of its expiration
// date. Expiry is orthogonal to the stock-level classification.
func (i Item) IsExpired(now time.Time) bool {
	if !i.Expirable || i.ExpirationDate == nil {
		return false
	}
	return !StartOfDay(*i.ExpirationDate).After(StartOfDay(now))
}

// IsLowStock reports whether quantity is below the effective threshold.
func (i Item) IsLowStock() bool {
	return i.Quantity < EffectiveMinStock(i.MinStockLevel)
}

// StockStatus classifies the item's current quantity.
func (i Item) StockStatus() StockStatus {
	return ClassifyStock(i.Quantity, i.MinStockLevel)
}
