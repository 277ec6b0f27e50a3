package handler

import (
	"net/http"

	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/report"
)

// HandleDashboardStats returns the headline dashboard aggregates
// @Summary Dashboard stats
// @Description Total item count, total inventory value, low stock count, and today's transaction count
// @Tags dashboard
// @Produce json
// @Success 200 {object} report.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard/stats [get]
func HandleDashboardStats(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		stats, err := svc.DashboardStats(r.Context())
		if err != nil {
			log.Error("Failed to compute dashboard stats", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
