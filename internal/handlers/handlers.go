package handlers

import (
	"github.com/smlcredit/smlcredit-api/internal/jobs"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health              *HealthHandler
	Auth                *AuthHandler
	Suppliers           *CounterpartyHandler
	Clients             *CounterpartyHandler
	SupplierTransaction *TransactionHandler
	ClientTransaction   *TransactionHandler
	Backup              *BackupHandler
	Report              *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker) *Handlers {
	return &Handlers{
		Health:              NewHealthHandler(worker),
		Auth:                NewAuthHandler(svcs.Auth),
		Suppliers:           NewCounterpartyHandler(svcs.Counterparty, svcs.Transaction, models.KindSupplier),
		Clients:             NewCounterpartyHandler(svcs.Counterparty, svcs.Transaction, models.KindClient),
		SupplierTransaction: NewTransactionHandler(svcs.Transaction, models.KindSupplier),
		ClientTransaction:   NewTransactionHandler(svcs.Transaction, models.KindClient),
		Backup:              NewBackupHandler(svcs.Backup, worker),
		Report:              NewReportHandler(svcs.Export),
	}
}
