package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Record lookup errors
	ErrMsgUserNotFound     = "user not found"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgCategoryNotFound = "category not found"

	// Uniqueness errors
	ErrMsgDuplicateSKU      = "sku already exists"
	ErrMsgDuplicateUsername = "username already exists"
	ErrMsgDuplicateCategory = "category name already exists"

	// Stock movement errors
	ErrMsgInsufficientStock = "insufficient stock available"
	ErrMsgOverReturn        = "cannot return more items than are currently rented"

	// Referential integrity errors
	ErrMsgCategoryInUse = "cannot delete category that contains items"

	// User management errors
	ErrMsgPrimaryAdmin = "cannot delete the primary admin user"
	ErrMsgLastAdmin    = "cannot delete the last admin user"

	// Validation errors (used for partial matches)
	ErrMsgInvalidInput = "invalid input"

	// Backup errors
	ErrMsgSnapshotRejected = "snapshot rejected"
	ErrMsgImportFailed     = "snapshot import failed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Record lookup errors
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrCategoryNotFound = errors.New(ErrMsgCategoryNotFound)

	// Uniqueness errors
	ErrDuplicateSKU      = errors.New(ErrMsgDuplicateSKU)
	ErrDuplicateUsername = errors.New(ErrMsgDuplicateUsername)
	ErrDuplicateCategory = errors.New(ErrMsgDuplicateCategory)

	// Stock movement errors
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrOverReturn        = errors.New(ErrMsgOverReturn)

	// Referential integrity errors
	ErrCategoryInUse = errors.New(ErrMsgCategoryInUse)

	// User management errors
	ErrPrimaryAdmin = errors.New(ErrMsgPrimaryAdmin)
	ErrLastAdmin    = errors.New(ErrMsgLastAdmin)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Backup errors
	ErrSnapshotRejected = errors.New(ErrMsgSnapshotRejected)
	ErrImportFailed     = errors.New(ErrMsgImportFailed)
)
