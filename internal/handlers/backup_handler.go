package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/jobs"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/services"
	"github.com/smlcredit/smlcredit-api/pkg/logger"
)

// BackupHandler serves full-dataset export and restore, plus access to the
// snapshot archive.
type BackupHandler struct {
	backupService *services.BackupService
	worker        *jobs.Worker
}

func NewBackupHandler(backupService *services.BackupService, worker *jobs.Worker) *BackupHandler {
	return &BackupHandler{backupService: backupService, worker: worker}
}

// @Summary Export Backup
// @Description Download the full dataset as a JSON document
// @Tags Backup
// @Produce json
// @Success 200 {object} models.Backup
// @Security BearerAuth
// @Router /backup [get]
func (h *BackupHandler) Export(c *gin.Context) {
	backup, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, backup)
}

// @Summary Restore Backup
// @Description Replace the full dataset with an uploaded backup document
// @Tags Backup
// @Accept json
// @Produce json
// @Param request body models.Backup true "Backup document"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	var backup models.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid backup file format"})
		return
	}

	if err := h.backupService.Import(c.Request.Context(), &backup); err != nil {
		respondError(c, err)
		return
	}

	// Archive the restored state in the background so the restore itself
	// becomes a recoverable point.
	h.worker.EnqueueAsync(func(ctx context.Context) error {
		if _, err := h.backupService.Snapshot(ctx); err != nil {
			logger.Error("Post-restore snapshot failed", "error", err)
			return err
		}
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored"})
}

// @Summary List Snapshots
// @Description List archived backup snapshots, newest first
// @Tags Backup
// @Produce json
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /backup/snapshots [get]
func (h *BackupHandler) Snapshots(c *gin.Context) {
	paths, err := h.backupService.ListSnapshots()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": paths})
}

// @Summary Download Snapshot
// @Description Download one archived backup snapshot
// @Tags Backup
// @Produce json
// @Param year path string true "Snapshot year"
// @Param month path string true "Snapshot month"
// @Param file path string true "Snapshot filename"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /backup/snapshots/{year}/{month}/{file} [get]
func (h *BackupHandler) DownloadSnapshot(c *gin.Context) {
	rel := filepath.Join("backups", c.Param("year"), c.Param("month"), c.Param("file"))
	data, err := h.backupService.ReadSnapshot(rel)
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, data, filepath.Base(rel), "application/json")
}
