package handler

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/inventoria-app/inventoria/internal/backup"
	"github.com/inventoria-app/inventoria/internal/domain"
	"github.com/inventoria-app/inventoria/internal/logger"
)

// maxBackupUploadSize bounds snapshot uploads (32 MiB).
const maxBackupUploadSize = 32 << 20

// HandleExportBackup streams a full snapshot as a JSON download
// @Summary Export backup
// @Tags backup
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Failure 500 {object} ErrorResponse
// @Router /api/database/backup/export [get]
func HandleExportBackup(svc backup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		snapshot, err := svc.ExportSnapshot(r.Context())
		if err != nil {
			log.Error("Failed to export backup", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgExportBackupFailed)
			return
		}

		filename := fmt.Sprintf("inventoria_backup_%s.json", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		respondJSON(w, http.StatusOK, snapshot)
	}
}

// HandleImportBackup replaces the store contents with an uploaded snapshot.
// The snapshot arrives either as a multipart upload under the "backup" field
// or as the raw JSON request body.
// @Summary Import backup
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/database/backup/import [post]
func HandleImportBackup(svc backup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		snapshot, err := decodeSnapshot(r)
		if err != nil {
			log.Warn("Rejected backup upload", "error", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		summary, err := svc.ImportSnapshot(r.Context(), snapshot)
		if err != nil {
			log.Error("Backup import failed", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgBackupImportedSuccess,
			Data:    map[string]any{"imported": summary},
		})
	}
}

func decodeSnapshot(r *http.Request) (*domain.Snapshot, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var snapshot domain.Snapshot
		if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBackupUploadSize)).Decode(&snapshot); err != nil {
			return nil, fmt.Errorf("invalid JSON format in backup body")
		}
		return &snapshot, nil
	}

	if err := r.ParseMultipartForm(maxBackupUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart upload")
	}
	file, _, err := r.FormFile("backup")
	if err != nil {
		return nil, fmt.Errorf("missing backup file")
	}
	defer file.Close()

	var snapshot domain.Snapshot
	if err := json.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("invalid JSON format in backup file")
	}
	return &snapshot, nil
}
