package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatusActive is the lifecycle status assigned to every item on
// creation. The field is carried for forward compatibility with archival.
const ItemStatusActive = "active"

// Item is a stocked good identified by a unique SKU.
//
// Quantity counts units physically on hand and available. Rented units are
// moved out of Quantity into RentedCount, so Quantity+RentedCount is the
// total owned at any instant. BrokenCount is informational only and is never
// subtracted from Quantity or the owned total.
type Item struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description,omitempty"`
	CategoryID     *int            `json:"categoryId"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Location       string          `json:"location,omitempty"`
	MinStockLevel  int             `json:"minStockLevel"`
	Status         string          `json:"status"`
	RentedCount    int             `json:"rentedCount"`
	BrokenCount    int             `json:"brokenCount"`
	Rentable       bool            `json:"rentable"`
	Expirable      bool            `json:"expirable"`
	ExpirationDate *time.Time      `json:"expirationDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ItemWithCategory is an item joined with its category's display name.
type ItemWithCategory struct {
	Item
	CategoryName string `json:"categoryName"`
}

// OptionalInt is a nullable field in a partial update: Set says whether the
// field participates at all, Value may be nil to clear it.
type OptionalInt struct {
	Set   bool
	Value *int
}

// OptionalTime is the time-valued counterpart of OptionalInt.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// ItemUpdate is a partial update; unset fields are left unchanged.
type ItemUpdate struct {
	Name           *string
	SKU            *string
	Description    *string
	CategoryID     OptionalInt
	Quantity       *int
	UnitPrice      *decimal.Decimal
	Location       *string
	MinStockLevel  *int
	Status         *string
	RentedCount    *int
	BrokenCount    *int
	Rentable       *bool
	Expirable      *bool
	ExpirationDate OptionalTime
}

// Apply merges the update into a copy of the item. Timestamps are the
// store's concern and are not touched here.
func (u ItemUpdate) Apply(item Item) Item {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.SKU != nil {
		item.SKU = *u.SKU
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.CategoryID.Set {
		item.CategoryID = u.CategoryID.Value
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.UnitPrice != nil {
		item.UnitPrice = *u.UnitPrice
	}
	if u.Location != nil {
		item.Location = *u.Location
	}
	if u.MinStockLevel != nil {
		item.MinStockLevel = *u.MinStockLevel
	}
	if u.Status != nil {
		item.Status = *u.Status
	}
	if u.RentedCount != nil {
		item.RentedCount = *u.RentedCount
	}
	if u.BrokenCount != nil {
		item.BrokenCount = *u.BrokenCount
	}
	if u.Rentable != nil {
		item.Rentable = *u.Rentable
	}
	if u.Expirable != nil {
		item.Expirable = *u.Expirable
	}
	if u.ExpirationDate.Set {
		item.ExpirationDate = u.ExpirationDate.Value
	}
	return item
}
