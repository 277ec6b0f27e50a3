package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/report"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// HandleGetCategories lists all categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 500 {object} ErrorResponse
// @Router /api/categories [get]
func HandleGetCategories(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		categories, err := svc.Categories(r.Context())
		if err != nil {
			log.Error("Failed to list categories", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetCategoriesFailed)
			return
		}

		respondJSON(w, http.StatusOK, categories)
	}
}

// HandleCreateCategory creates a category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.Category
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/categories [post]
func HandleCreateCategory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		category, err := svc.CreateCategory(r.Context(), req.Name, req.Description)
		if err != nil {
			log.Error("Failed to create category", "error", err, "name", req.Name)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, category)
	}
}

// HandleUpdateCategory applies a partial category update
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param request body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} domain.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [put]
func HandleUpdateCategory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var req UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, domain.CategoryUpdate{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			log.Error("Failed to update category", "error", err, "categoryID", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, category)
	}
}

// HandleDeleteCategory removes an empty category
// @Summary Delete category
// @Tags categories
// @Param id path int true "Category id"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [delete]
func HandleDeleteCategory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
