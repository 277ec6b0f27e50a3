package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/inventory"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/report"
	"github.com/inventoria-app/inventoria/internal/settings"
)

type CreateItemRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	SKU            string          `json:"sku" validate:"required,max=100"`
	Description    string          `json:"description" validate:"max=1000"`
	CategoryID     *int            `json:"categoryId"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Location       string          `json:"location" validate:"max=200"`
	MinStockLevel  *int            `json:"minStockLevel"`
	Rentable       *bool           `json:"rentable"`
	Expirable      bool            `json:"expirable"`
	ExpirationDate *time.Time      `json:"expirationDate"`
}

// HandleGetItems lists items joined with category names
// @Summary List items
// @Description List items newest first, optionally narrowed by search or category
// @Tags items
// @Produce json
// @Param search query string false "Substring match on name, SKU, or description"
// @Param category query string false "Category id, 'uncategorized', or 'all'"
// @Success 200 {array} domain.ItemWithCategory
// @Failure 500 {object} ErrorResponse
// @Router /api/items [get]
func HandleGetItems(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		filter := report.ItemFilter{
			Search:   r.URL.Query().Get("search"),
			Category: r.URL.Query().Get("category"),
		}

		items, err := svc.ListItems(r.Context(), filter)
		if err != nil {
			log.Error("Failed to list items", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetItemsFailed)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetLowStockItems lists items below their minimum stock level
// @Summary List low stock items
// @Tags items
// @Produce json
// @Success 200 {array} domain.ItemWithCategory
// @Failure 500 {object} ErrorResponse
// @Router /api/items/low-stock [get]
func HandleGetLowStockItems(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		items, err := svc.LowStockItems(r.Context())
		if err != nil {
			log.Error("Failed to list low stock items", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetLowStockFailed)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetExpiringSoonItems lists active expirable items inside the
// configured expiring-soon window
// @Summary List items expiring soon
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Failure 500 {object} ErrorResponse
// @Router /api/items/expires-soon [get]
func HandleGetExpiringSoonItems(svc report.Service, cfg *settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		items, err := svc.ExpiringSoonItems(r.Context(), cfg.ExpiresSoonDays())
		if err != nil {
			log.Error("Failed to list expiring items", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetExpiringFailed)
			return
		}

		respondJSON(w, http.StatusOK, items)
	}
}

// HandleGetItem fetches a single item
// @Summary Get item
// @Tags items
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} domain.Item
// @Failure 404 {object} ErrorResponse
// @Router /api/items/{id} [get]
func HandleGetItem(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleCreateItem creates an item
// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item details"
// @Success 201 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/items [post]
func HandleCreateItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode create item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid create item request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		item, err := svc.CreateItem(r.Context(), inventory.NewItem{
			Name:           req.Name,
			SKU:            req.SKU,
			Description:    req.Description,
			CategoryID:     req.CategoryID,
			Quantity:       req.Quantity,
			UnitPrice:      req.UnitPrice,
			Location:       req.Location,
			MinStockLevel:  req.MinStockLevel,
			Rentable:       req.Rentable,
			Expirable:      req.Expirable,
			ExpirationDate: req.ExpirationDate,
		})
		if err != nil {
			log.Error("Failed to create item", "error", err, "sku", req.SKU)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, item)
	}
}

type UpdateItemRequest struct {
	Name           *string          `json:"name"`
	SKU            *string          `json:"sku"`
	Description    *string          `json:"description"`
	CategoryID     *int             `json:"categoryId"`
	Quantity       *int             `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	Location       *string          `json:"location"`
	MinStockLevel  *int             `json:"minStockLevel"`
	Status         *string          `json:"status"`
	RentedCount    *int             `json:"rentedCount"`
	BrokenCount    *int             `json:"brokenCount"`
	Rentable       *bool            `json:"rentable"`
	Expirable      *bool            `json:"expirable"`
	ExpirationDate *time.Time       `json:"expirationDate"`

	// Nullable fields need present-vs-null tracked separately, so an
	// explicit null clears the value while an absent key leaves it alone.
	categoryIDSet     bool
	expirationDateSet bool
}

func (req *UpdateItemRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateItemRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*req = UpdateItemRequest(a)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, req.categoryIDSet = keys["categoryId"]
	_, req.expirationDateSet = keys["expirationDate"]
	return nil
}

func (req *UpdateItemRequest) toUpdate() domain.ItemUpdate {
	return domain.ItemUpdate{
		Name:           req.Name,
		SKU:            req.SKU,
		Description:    req.Description,
		CategoryID:     domain.OptionalInt{Set: req.categoryIDSet, Value: req.CategoryID},
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Location:       req.Location,
		MinStockLevel:  req.MinStockLevel,
		Status:         req.Status,
		RentedCount:    req.RentedCount,
		BrokenCount:    req.BrokenCount,
		Rentable:       req.Rentable,
		Expirable:      req.Expirable,
		ExpirationDate: domain.OptionalTime{Set: req.expirationDateSet, Value: req.ExpirationDate},
	}
}

// HandleUpdateItem applies a partial item update
// @Summary Update item
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/items/{id} [put]
func HandleUpdateItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var req UpdateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode update item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		item, err := svc.UpdateItem(r.Context(), id, req.toUpdate())
		if err != nil {
			log.Error("Failed to update item", "error", err, "itemID", id)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleDeleteItem removes an item and its transaction history
// @Summary Delete item
// @Tags items
// @Param id path int true "Item id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/items/{id} [delete]
func HandleDeleteItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type StockMovementRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
	UserID   int `json:"userId" validate:"gte=0"`
}

// HandleRentItem moves stock from available to rented
// @Summary Rent item units
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param request body StockMovementRequest true "Quantity and acting user"
// @Success 200 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/items/{id}/rent [post]
func HandleRentItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var req StockMovementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		item, err := svc.RentItem(r.Context(), id, req.Quantity, req.UserID)
		if err != nil {
			log.Warn("Failed to rent item", "error", err, "itemID", id, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleReturnItem moves stock from rented back to available
// @Summary Return rented item units
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item id"
// @Param request body StockMovementRequest true "Quantity and acting user"
// @Success 200 {object} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/items/{id}/return [post]
func HandleReturnItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}

		var req StockMovementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMsgInvalidRequestSummary, "details": FormatValidationError(err)})
			return
		}

		item, err := svc.ReturnItem(r.Context(), id, req.Quantity, req.UserID)
		if err != nil {
			log.Warn("Failed to return item", "error", err, "itemID", id, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}
