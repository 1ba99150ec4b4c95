package repository

import (
	"github.com/smlcredit/smlcredit-api/internal/models"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Suppliers CounterpartyRepository
	Clients   CounterpartyRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Suppliers: NewSupplierRepository(db),
		Clients:   NewClientRepository(db),
	}
}

// ForKind returns the repository for the given counterparty kind.
func (r *Repositories) ForKind(kind models.Kind) CounterpartyRepository {
	if kind == models.KindClient {
		return r.Clients
	}
	return r.Suppliers
}
