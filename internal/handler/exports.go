package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/inventoria-app/inventoria/internal/export"
	"github.com/inventoria-app/inventoria/internal/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleExportInventory streams a filtered inventory spreadsheet
// @Summary Export inventory spreadsheet
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category query string false "Category name, 'uncategorized', or 'all'"
// @Param status query string false "Item status or 'all'"
// @Param rentable query string false "true, false, or all"
// @Param expirable query string false "true, false, or all"
// @Param lowStock query bool false "Only items below minimum stock"
// @Param expired query bool false "Only expired items"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /api/database/export/inventory [get]
func HandleExportInventory(svc export.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		q := r.URL.Query()

		workbook, err := svc.InventoryWorkbook(r.Context(), export.InventoryFilter{
			Category:  q.Get("category"),
			Status:    q.Get("status"),
			Rentable:  q.Get("rentable"),
			Expirable: q.Get("expirable"),
			LowStock:  q.Get("lowStock") == "true",
			Expired:   q.Get("expired") == "true",
		})
		if err != nil {
			log.Error("Failed to export inventory", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgExportInventoryFailed)
			return
		}

		writeWorkbook(w, workbook, log.Error)
	}
}

// HandleExportActivity streams a filtered activity log spreadsheet
// @Summary Export activity spreadsheet
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "Transaction type or 'all'"
// @Param userId query int false "Acting user id"
// @Param itemId query int false "Item id"
// @Param days query int false "Only the last N days"
// @Param dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param dateTo query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /api/database/export/activity [get]
func HandleExportActivity(svc export.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		q := r.URL.Query()

		filter := export.ActivityFilter{Type: q.Get("type")}

		var err error
		if filter.UserID, err = queryInt(r, "userId", 0); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		if filter.ItemID, err = queryInt(r, "itemId", 0); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
			return
		}
		if filter.Days, err = queryInt(r, "days", 0); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		if filter.DateFrom, err = queryDate(r, "dateFrom"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		if filter.DateTo, err = queryDate(r, "dateTo"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		workbook, err := svc.ActivityWorkbook(r.Context(), filter)
		if err != nil {
			log.Error("Failed to export activity", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgExportActivityFailed)
			return
		}

		writeWorkbook(w, workbook, log.Error)
	}
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeWorkbook(w http.ResponseWriter, workbook *export.Workbook, logError func(string, ...any)) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbook.Filename))
	if err := workbook.File.Write(w); err != nil {
		logError("Failed to write workbook", "error", err)
	}
}
