package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inventoria-app/inventoria/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgAuthFailedError    = "Authentication failed. Please check your API key."

	// Record lookup messages
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgCategoryNotFoundError = "Category not found"

	// Uniqueness messages
	ErrMsgDuplicateSKUError      = "An item with that SKU already exists"
	ErrMsgDuplicateUsernameError = "A user with that username already exists"
	ErrMsgDuplicateCategoryError = "A category with that name already exists"

	// Stock movement messages
	ErrMsgInsufficientStockError = "Insufficient stock available"
	ErrMsgOverReturnError        = "Cannot return more items than are currently rented"

	// Referential integrity messages
	ErrMsgCategoryInUseError = "Cannot delete category that contains items"

	// User management messages
	ErrMsgPrimaryAdminError = "Cannot delete the primary admin user"
	ErrMsgLastAdminError    = "Cannot delete the last admin user"

	// Backup messages
	ErrMsgImportFailedError = "Failed to import backup. The database has been restored to a safe state with default data."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, ErrMsgCategoryNotFoundError
	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict, ErrMsgDuplicateSKUError
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict, ErrMsgDuplicateUsernameError
	case errors.Is(err, domain.ErrDuplicateCategory):
		return http.StatusConflict, ErrMsgDuplicateCategoryError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, ErrMsgInsufficientStockError
	case errors.Is(err, domain.ErrOverReturn):
		return http.StatusBadRequest, ErrMsgOverReturnError
	case errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusBadRequest, ErrMsgCategoryInUseError
	case errors.Is(err, domain.ErrPrimaryAdmin):
		return http.StatusBadRequest, ErrMsgPrimaryAdminError
	case errors.Is(err, domain.ErrLastAdmin):
		return http.StatusBadRequest, ErrMsgLastAdminError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSnapshotRejected):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrImportFailed):
		return http.StatusInternalServerError, ErrMsgImportFailedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps err and writes the error response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
