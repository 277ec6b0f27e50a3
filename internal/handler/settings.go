package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/settings"
)

type ExpiresThresholdResponse struct {
	Threshold int `json:"threshold"`
}

type UpdateExpiresThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// HandleGetExpiresThreshold returns the expiring-soon window
// @Summary Get expires-soon threshold
// @Tags settings
// @Produce json
// @Success 200 {object} ExpiresThresholdResponse
// @Router /api/settings/expires-threshold [get]
func HandleGetExpiresThreshold(cfg *settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ExpiresThresholdResponse{Threshold: cfg.ExpiresSoonDays()})
	}
}

// HandleUpdateExpiresThreshold updates the expiring-soon window
// @Summary Update expires-soon threshold
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateExpiresThresholdRequest true "New threshold in days (1-365)"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/settings/expires-threshold [put]
func HandleUpdateExpiresThreshold(cfg *settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UpdateExpiresThresholdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if !cfg.SetExpiresSoonDays(req.Threshold) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidThreshold)
			return
		}

		log.Info("Expires soon threshold updated", "threshold", req.Threshold)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgThresholdUpdated,
			Data:    ExpiresThresholdResponse{Threshold: req.Threshold},
		})
	}
}
