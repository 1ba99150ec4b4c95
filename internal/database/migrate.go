package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Schema statements, applied in order. Idempotent: every statement uses
// IF NOT EXISTS so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		total_debt NUMERIC(14,2) NOT NULL DEFAULT 0,
		phone      TEXT,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		total_debt    NUMERIC(14,2) NOT NULL DEFAULT 0,
		phone         TEXT,
		due_day       INTEGER,
		next_due_date TEXT,
		created_at    BIGINT NOT NULL,
		updated_at    BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS supplier_transactions (
		id          TEXT PRIMARY KEY,
		supplier_id TEXT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
		amount      NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		kind        TEXT NOT NULL CHECK (kind IN ('debt', 'payment')),
		date        BIGINT NOT NULL,
		note        TEXT,
		created_at  BIGINT NOT NULL,
		seq         BIGSERIAL
	)`,
	`CREATE TABLE IF NOT EXISTS client_transactions (
		id         TEXT PRIMARY KEY,
		client_id  TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		amount     NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		kind       TEXT NOT NULL CHECK (kind IN ('debt', 'payment')),
		date       BIGINT NOT NULL,
		note       TEXT,
		created_at BIGINT NOT NULL,
		seq        BIGSERIAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_supplier_transactions_supplier_id ON supplier_transactions(supplier_id)`,
	`CREATE INDEX IF NOT EXISTS idx_client_transactions_client_id ON client_transactions(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_suppliers_created_at ON suppliers(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_created_at ON clients(created_at)`,
}

// Migrate creates the ledger schema if it does not exist yet
func Migrate(db *gorm.DB) error {
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
