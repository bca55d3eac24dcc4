package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// BackupHandler handles state backup HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// BackupResponse represents a stored backup
type BackupResponse struct {
	Key       string `json:"key"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"`
	URL       string `json:"url,omitempty"`
}

// CreateBackup snapshots the budget state to object storage
// @Summary Create backup
// @Description Writes the current state to S3 and returns a short-lived download link
// @Tags backups
// @Produce json
// @Success 201 {object} BackupResponse
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /backups [post]
func (h *BackupHandler) CreateBackup(c echo.Context) error {
	backup, err := h.backupService.CreateBackup(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to create backup")
	}

	return c.JSON(http.StatusCreated, BackupResponse{
		Key:       backup.Key,
		Size:      backup.Size,
		CreatedAt: backup.CreatedAt.Format(time.RFC3339),
		URL:       backup.URL,
	})
}
