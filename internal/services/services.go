package services

import (
	"github.com/smlcredit/smlcredit-api/internal/config"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	Counterparty *CounterpartyService
	Transaction  *TransactionService
	Backup       *BackupService
	Export       *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, storage *storage.LocalStorage, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(cfg),
		Counterparty: NewCounterpartyService(repos),
		Transaction:  NewTransactionService(repos),
		Backup:       NewBackupService(repos, storage),
		Export:       NewExportService(repos),
	}
}
