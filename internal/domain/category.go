package domain

import "time"

// Category classifies items. Items reference categories by id; the reference
// is nullable (uncategorized).
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}
