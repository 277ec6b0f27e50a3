package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/user"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100,excludesall=\x00\n\r\t"`
	FullName string `json:"fullName" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,role"`
	IsActive *bool  `json:"isActive"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,max=100,excludesall=\x00\n\r\t"`
	FullName *string `json:"fullName" validate:"omitempty,max=200"`
	Role     *string `json:"role" validate:"omitempty,role"`
	IsActive *bool   `json:"isActive"`
}

// HandleGetUsers lists all users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Failure 500 {object} ErrorResponse
// @Router /api/users [get]
func HandleGetUsers(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		users, err := svc.ListUsers(r.Context())
		if err != nil {
			log.Error("Failed to list users", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetUsersFailed)
			return
		}

		respondJSON(w, http.StatusOK, users)
	}
}

// HandleCreateUser registers a user
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/users [post]
func HandleCreateUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		created, err := svc.RegisterUser(r.Context(), user.NewUser{
			Username: req.Username,
			FullName: req.FullName,
			Role:     domain.Role(req.Role),
			IsActive: req.IsActive,
		})
		if err != nil {
			log.Error("Failed to create user", "error", err, "username", req.Username)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleUpdateUser applies a partial user update
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id} [put]
func HandleUpdateUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		update := domain.UserUpdate{
			Username: req.Username,
			FullName: req.FullName,
			IsActive: req.IsActive,
		}
		if req.Role != nil {
			role := domain.Role(*req.Role)
			update.Role = &role
		}

		updated, err := svc.UpdateUser(r.Context(), id, update)
		if err != nil {
			log.Error("Failed to update user", "error", err, "userID", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleDeleteUser removes a user
// @Summary Delete user
// @Description Delete a user; the primary admin and the last admin are protected
// @Tags users
// @Param id path int true "User id"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/users/{id} [delete]
func HandleDeleteUser(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			log.Warn("Failed to delete user", "error", err, "userID", id)
			respondServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
