package handler

import (
	"net/http"

	"github.com/inventoria-app/inventoria/internal/backup"
	"github.com/inventoria-app/inventoria/internal/logger"
	"github.com/inventoria-app/inventoria/internal/report"
)

// HandleGetTransactions lists log entries newest first
// @Summary List transactions
// @Description List transaction log entries joined with item and user references
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} report.TransactionDetail
// @Failure 500 {object} ErrorResponse
// @Router /api/transactions [get]
func HandleGetTransactions(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit, err := queryInt(r, "limit", 0)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		transactions, err := svc.Transactions(r.Context(), limit)
		if err != nil {
			log.Error("Failed to list transactions", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetTransactionsFailed)
			return
		}

		respondJSON(w, http.StatusOK, transactions)
	}
}

// HandleFlushActivity removes every transaction log entry
// @Summary Flush activity logs
// @Tags transactions
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/database/flush-activity [post]
func HandleFlushActivity(svc backup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := svc.FlushActivityLogs(r.Context()); err != nil {
			log.Error("Failed to flush activity logs", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgFlushActivityFailed)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgActivityFlushed})
	}
}
