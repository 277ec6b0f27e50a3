package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path/query parameter error messages
	ErrMsgInvalidID    = "Invalid id parameter"
	ErrMsgInvalidLimit = "Invalid limit parameter"

	// Item operation error messages
	ErrMsgGetItemsFailed    = "Failed to fetch items"
	ErrMsgGetItemFailed     = "Failed to fetch item"
	ErrMsgCreateItemFailed  = "Failed to create item"
	ErrMsgUpdateItemFailed  = "Failed to update item"
	ErrMsgDeleteItemFailed  = "Failed to delete item"
	ErrMsgRentItemFailed    = "Failed to rent item"
	ErrMsgReturnItemFailed  = "Failed to return item"
	ErrMsgGetLowStockFailed = "Failed to fetch low stock items"
	ErrMsgGetExpiringFailed = "Failed to fetch expiring items"

	// Category operation error messages
	ErrMsgGetCategoriesFailed   = "Failed to fetch categories"
	ErrMsgCreateCategoryFailed  = "Failed to create category"
	ErrMsgUpdateCategoryFailed  = "Failed to update category"
	ErrMsgDeleteCategoryFailed  = "Failed to delete category"

	// User management error messages
	ErrMsgGetUsersFailed   = "Failed to fetch users"
	ErrMsgCreateUserFailed = "Failed to create user"
	ErrMsgUpdateUserFailed = "Failed to update user"
	ErrMsgDeleteUserFailed = "Failed to delete user"

	// Transaction error messages
	ErrMsgGetTransactionsFailed = "Failed to fetch transactions"
	ErrMsgFlushActivityFailed   = "Failed to flush activity logs"

	// Dashboard error messages
	ErrMsgGetStatsFailed = "Failed to fetch dashboard stats"

	// Backup error messages
	ErrMsgExportBackupFailed = "Failed to export backup"
	ErrMsgImportBackupFailed = "Failed to import backup"

	// Spreadsheet export error messages
	ErrMsgExportInventoryFailed = "Failed to export inventory"
	ErrMsgExportActivityFailed  = "Failed to export activity"

	// Settings error messages
	ErrMsgInvalidThreshold = "Threshold must be a number between 1 and 365"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgBackupImportedSuccess = "Backup imported successfully"
	MsgActivityFlushed       = "Activity logs flushed successfully"
	MsgThresholdUpdated      = "Expires soon threshold updated successfully"
)
