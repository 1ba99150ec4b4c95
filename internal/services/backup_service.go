package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/internal/storage"
	"github.com/smlcredit/smlcredit-api/pkg/logger"
)

// BackupService exports the full dataset as a single JSON document and
// restores from one. The format matches the file the web client downloads.
type BackupService struct {
	repos   *repository.Repositories
	storage *storage.LocalStorage
}

func NewBackupService(repos *repository.Repositories, storage *storage.LocalStorage) *BackupService {
	return &BackupService{repos: repos, storage: storage}
}

// Export collects both counterparty datasets, transactions included.
func (s *BackupService) Export(ctx context.Context) (*models.Backup, error) {
	suppliers, err := s.repos.Suppliers.List(ctx)
	if err != nil {
		return nil, fromRepo(err)
	}
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, fromRepo(err)
	}

	return &models.Backup{
		Version:    models.BackupVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Suppliers:  suppliers,
		Clients:    clients,
	}, nil
}

// Snapshot writes the current export to the storage directory and returns
// the snapshot's relative path.
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	backup, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	filename := fmt.Sprintf("smlcredit-backup-%d.json", time.Now().UnixMilli())
	path, err := s.storage.WriteSnapshot(data, filename)
	if err != nil {
		return "", err
	}

	logger.Info("Wrote backup snapshot", "path", path,
		"suppliers", len(backup.Suppliers), "clients", len(backup.Clients))
	return path, nil
}

// ListSnapshots returns the relative paths of archived snapshots, newest
// first.
func (s *BackupService) ListSnapshots() ([]string, error) {
	return s.storage.ListSnapshots()
}

// ReadSnapshot returns the contents of one archived snapshot.
func (s *BackupService) ReadSnapshot(relativePath string) ([]byte, error) {
	data, err := s.storage.Read(relativePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: snapshot %s", ErrNotFound, relativePath)
		}
		return nil, err
	}
	return data, nil
}

// Import replaces both datasets with the backup contents. Totals in the file
// are ignored: every balance is re-derived from the imported transactions.
// Each counterparty class is restored in its own atomic unit of work.
func (s *BackupService) Import(ctx context.Context, backup *models.Backup) error {
	if backup == nil || backup.Suppliers == nil || backup.Clients == nil {
		return fmt.Errorf("%w: backup must contain suppliers and clients", ErrInvalidInput)
	}

	for i := range backup.Suppliers {
		backup.Suppliers[i].Kind = models.KindSupplier
		if err := validateImported(&backup.Suppliers[i]); err != nil {
			return err
		}
	}
	for i := range backup.Clients {
		backup.Clients[i].Kind = models.KindClient
		if err := validateImported(&backup.Clients[i]); err != nil {
			return err
		}
	}

	if err := s.repos.Suppliers.ReplaceAll(ctx, backup.Suppliers); err != nil {
		return fromRepo(err)
	}
	if err := s.repos.Clients.ReplaceAll(ctx, backup.Clients); err != nil {
		return fromRepo(err)
	}

	logger.Info("Restored backup",
		"suppliers", len(backup.Suppliers), "clients", len(backup.Clients))
	return nil
}

func validateImported(cp *models.Counterparty) error {
	if cp.ID == "" || cp.Name == "" {
		return fmt.Errorf("%w: every counterparty needs an id and a name", ErrInvalidInput)
	}
	for i := range cp.Transactions {
		tx := &cp.Transactions[i]
		if tx.ID == "" {
			return fmt.Errorf("%w: transaction without id on %s", ErrInvalidInput, cp.ID)
		}
		if tx.Amount <= 0 {
			return fmt.Errorf("%w: transaction %s has a non-positive amount", ErrInvalidInput, tx.ID)
		}
		if !models.ValidTransactionKind(tx.Kind) {
			return fmt.Errorf("%w: transaction %s has kind %q", ErrInvalidInput, tx.ID, tx.Kind)
		}
	}
	return nil
}
