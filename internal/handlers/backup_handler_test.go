package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/jobs"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/internal/services"
	"github.com/smlcredit/smlcredit-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupHandler(t *testing.T, repo *mockCounterpartyRepo) (*BackupHandler, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repos := &repository.Repositories{Suppliers: repo, Clients: repo}
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)
	return NewBackupHandler(services.NewBackupService(repos, store), worker), store
}

func emptyLedgerRepo() *mockCounterpartyRepo {
	return &mockCounterpartyRepo{
		mockList: func(ctx context.Context) ([]models.Counterparty, error) {
			return []models.Counterparty{}, nil
		},
		mockReplaceAll: func(ctx context.Context, cps []models.Counterparty) error {
			return nil
		},
	}
}

func TestBackupRestore_ArchivesSnapshot(t *testing.T) {
	h, store := newBackupHandler(t, emptyLedgerRepo())

	w := performJSON(t, h.Restore, "POST", "/backup/restore", nil, models.Backup{
		Version:   models.BackupVersion,
		Suppliers: []models.Counterparty{},
		Clients:   []models.Counterparty{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backup restored")

	// The restore archives itself in the background
	assert.Eventually(t, func() bool {
		paths, err := store.ListSnapshots()
		return err == nil && len(paths) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBackupRestore_BadDocument(t *testing.T) {
	h, store := newBackupHandler(t, emptyLedgerRepo())

	w := performJSON(t, h.Restore, "POST", "/backup/restore", nil, map[string]interface{}{
		"suppliers": []models.Counterparty{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	paths, err := store.ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestBackupSnapshots_ListAndDownload(t *testing.T) {
	h, store := newBackupHandler(t, emptyLedgerRepo())

	rel, err := store.WriteSnapshot([]byte(`{"version":2}`), "smlcredit-backup-1.json")
	require.NoError(t, err)

	w := performJSON(t, h.Snapshots, "GET", "/backup/snapshots", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smlcredit-backup-1.json")

	// rel is backups/<year>/<month>/<file>
	parts := strings.Split(rel, "/")
	require.Len(t, parts, 4)
	params := gin.Params{
		{Key: "year", Value: parts[1]},
		{Key: "month", Value: parts[2]},
		{Key: "file", Value: parts[3]},
	}
	w = performJSON(t, h.DownloadSnapshot, "GET", "/backup/snapshots/"+rel, params, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"version":2}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "smlcredit-backup-1.json")
}

func TestBackupDownloadSnapshot_Missing(t *testing.T) {
	h, _ := newBackupHandler(t, emptyLedgerRepo())

	params := gin.Params{
		{Key: "year", Value: "2026"},
		{Key: "month", Value: "01"},
		{Key: "file", Value: "nope.json"},
	}
	w := performJSON(t, h.DownloadSnapshot, "GET", "/backup/snapshots/2026/01/nope.json", params, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthIndex_ReportsWorkerStats(t *testing.T) {
	worker := jobs.NewWorker(2)
	t.Cleanup(worker.Shutdown)
	h := NewHealthHandler(worker)

	w := performJSON(t, h.Index, "GET", "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"worker"`)
	assert.Contains(t, body, `"max_concurrent":10`)
	assert.Contains(t, body, `"queue_length":0`)
}
