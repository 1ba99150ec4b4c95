package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"gorm.io/gorm"
)

// CounterpartyRepository is the ledger store for one counterparty class:
// durable CRUD for counterparty records plus their transaction rows, and the
// balance derivation queries. Suppliers and clients share the same shape but
// live in separate tables, so there is one implementation bound to either
// table set.
type CounterpartyRepository interface {
	FindByID(ctx context.Context, id string) (*models.Counterparty, error)
	List(ctx context.Context) ([]models.Counterparty, error)
	// Create inserts the counterparty and its seed transactions, then derives
	// the initial total, all in one database transaction.
	Create(ctx context.Context, cp *models.Counterparty, txs []models.Transaction) error
	// UpdateFields applies a partial column patch and bumps updated_at.
	UpdateFields(ctx context.Context, id string, patch map[string]interface{}) error
	// Delete removes the counterparty and all its transactions atomically.
	Delete(ctx context.Context, id string) error
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	// SumTransactions derives the balance from the stored rows. It never reads
	// the cached total_debt column.
	SumTransactions(ctx context.Context, counterpartyID string) (float64, error)
	// RecomputeTotal re-derives total_debt from the transaction rows and
	// persists it, holding a row lock on the counterparty for the whole unit
	// of work so concurrent recomputes against the same counterparty
	// serialize and the last writer has seen every committed row.
	RecomputeTotal(ctx context.Context, id string) (float64, error)
	// ReplaceAll wipes the counterparty class and loads the given records,
	// re-deriving every total. Used by backup restore.
	ReplaceAll(ctx context.Context, cps []models.Counterparty) error
}

type counterpartyRepository struct {
	db        *gorm.DB
	kind      models.Kind
	table     string
	txTable   string
	fkColumn  string
	dueFields bool
}

// NewSupplierRepository creates the ledger store over the supplier tables
func NewSupplierRepository(db *gorm.DB) CounterpartyRepository {
	return &counterpartyRepository{
		db:       db,
		kind:     models.KindSupplier,
		table:    "suppliers",
		txTable:  "supplier_transactions",
		fkColumn: "supplier_id",
	}
}

// NewClientRepository creates the ledger store over the client tables
func NewClientRepository(db *gorm.DB) CounterpartyRepository {
	return &counterpartyRepository{
		db:        db,
		kind:      models.KindClient,
		table:     "clients",
		txTable:   "client_transactions",
		fkColumn:  "client_id",
		dueFields: true,
	}
}

// counterpartyRow is the scan target for counterparty selects. The due
// columns only exist on the clients table and stay nil for suppliers.
type counterpartyRow struct {
	ID          string
	Name        string
	TotalDebt   float64
	Phone       *string
	DueDay      *int
	NextDueDate *string
	CreatedAt   int64
	UpdatedAt   int64
}

func (r *counterpartyRepository) toModel(row counterpartyRow) models.Counterparty {
	return models.Counterparty{
		ID:           row.ID,
		Kind:         r.kind,
		Name:         row.Name,
		TotalDebt:    row.TotalDebt,
		Phone:        row.Phone,
		DueDay:       row.DueDay,
		NextDueDate:  row.NextDueDate,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Transactions: []models.Transaction{},
	}
}

func (r *counterpartyRepository) FindByID(ctx context.Context, id string) (*models.Counterparty, error) {
	var row counterpartyRow
	res := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT * FROM %s WHERE id = ?`, r.table), id).
		Scan(&row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	cp := r.toModel(row)
	txs, err := r.transactions(ctx, id)
	if err != nil {
		return nil, err
	}
	cp.Transactions = txs
	return &cp, nil
}

func (r *counterpartyRepository) List(ctx context.Context) ([]models.Counterparty, error) {
	var rows []counterpartyRow
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT * FROM %s ORDER BY created_at DESC`, r.table)).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	// One query for all transactions, bucketed in memory, to avoid a query
	// per counterparty.
	var txs []models.Transaction
	err = r.db.WithContext(ctx).
		Raw(fmt.Sprintf(
			`SELECT id, %s AS counterparty_id, amount, kind, date, note, created_at
			 FROM %s ORDER BY date DESC, seq ASC`, r.fkColumn, r.txTable)).
		Scan(&txs).Error
	if err != nil {
		return nil, translate(err)
	}

	byOwner := make(map[string][]models.Transaction, len(rows))
	for _, tx := range txs {
		byOwner[tx.CounterpartyID] = append(byOwner[tx.CounterpartyID], tx)
	}

	cps := make([]models.Counterparty, 0, len(rows))
	for _, row := range rows {
		cp := r.toModel(row)
		if owned, ok := byOwner[row.ID]; ok {
			cp.Transactions = owned
		}
		cps = append(cps, cp)
	}
	return cps, nil
}

func (r *counterpartyRepository) Create(ctx context.Context, cp *models.Counterparty, txs []models.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.insertCounterparty(tx, cp); err != nil {
			return err
		}
		for i := range txs {
			if err := r.insertTransactionRow(tx, &txs[i]); err != nil {
				return err
			}
		}
		total, err := r.recomputeLocked(tx, cp.ID)
		if err != nil {
			return err
		}
		cp.TotalDebt = total
		return nil
	})
	return translate(err)
}

func (r *counterpartyRepository) insertCounterparty(tx *gorm.DB, cp *models.Counterparty) error {
	if r.dueFields {
		return tx.Exec(
			fmt.Sprintf(`INSERT INTO %s (id, name, total_debt, phone, due_day, next_due_date, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, r.table),
			cp.ID, cp.Name, cp.TotalDebt, cp.Phone, cp.DueDay, cp.NextDueDate, cp.CreatedAt, cp.UpdatedAt,
		).Error
	}
	return tx.Exec(
		fmt.Sprintf(`INSERT INTO %s (id, name, total_debt, phone, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`, r.table),
		cp.ID, cp.Name, cp.TotalDebt, cp.Phone, cp.CreatedAt, cp.UpdatedAt,
	).Error
}

func (r *counterpartyRepository) UpdateFields(ctx context.Context, id string, patch map[string]interface{}) error {
	if len(patch) == 0 {
		patch = map[string]interface{}{}
	}
	patch["updated_at"] = time.Now().UnixMilli()

	res := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *counterpartyRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The FK is ON DELETE CASCADE; the explicit delete keeps the cascade
		// visible in the unit of work and independent of schema drift.
		if err := tx.Exec(
			fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, r.txTable, r.fkColumn), id,
		).Error; err != nil {
			return err
		}
		res := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *counterpartyRepository) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	return translate(r.insertTransactionRow(r.db.WithContext(ctx), tx))
}

func (r *counterpartyRepository) insertTransactionRow(db *gorm.DB, tx *models.Transaction) error {
	return db.Exec(
		fmt.Sprintf(`INSERT INTO %s (id, %s, amount, kind, date, note, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, r.txTable, r.fkColumn),
		tx.ID, tx.CounterpartyID, tx.Amount, tx.Kind, tx.Date, tx.Note, tx.CreatedAt,
	).Error
}

func (r *counterpartyRepository) transactions(ctx context.Context, counterpartyID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(
			`SELECT id, %s AS counterparty_id, amount, kind, date, note, created_at
			 FROM %s WHERE %s = ? ORDER BY date DESC, seq ASC`,
			r.fkColumn, r.txTable, r.fkColumn), counterpartyID).
		Scan(&txs).Error
	return txs, translate(err)
}

func (r *counterpartyRepository) SumTransactions(ctx context.Context, counterpartyID string) (float64, error) {
	return r.sum(r.db.WithContext(ctx), counterpartyID)
}

func (r *counterpartyRepository) sum(db *gorm.DB, counterpartyID string) (float64, error) {
	var total float64
	err := db.
		Raw(fmt.Sprintf(
			`SELECT COALESCE(SUM(CASE WHEN kind = 'debt' THEN amount ELSE -amount END), 0)
			 FROM %s WHERE %s = ?`, r.txTable, r.fkColumn), counterpartyID).
		Scan(&total).Error
	return total, translate(err)
}

func (r *counterpartyRepository) RecomputeTotal(ctx context.Context, id string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.recomputeLocked(tx, id)
		if err != nil {
			return err
		}
		total = t
		return nil
	})
	return total, translate(err)
}

// recomputeLocked locks the counterparty row, re-sums its transactions and
// writes the total back, all on the given transaction handle. The lock is the
// serialization point for concurrent writers on the same counterparty.
func (r *counterpartyRepository) recomputeLocked(tx *gorm.DB, id string) (float64, error) {
	var locked struct{ ID string }
	res := tx.Raw(fmt.Sprintf(`SELECT id FROM %s WHERE id = ? FOR UPDATE`, r.table), id).Scan(&locked)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	total, err := r.sum(tx, id)
	if err != nil {
		return 0, err
	}

	err = tx.Exec(
		fmt.Sprintf(`UPDATE %s SET total_debt = ?, updated_at = ? WHERE id = ?`, r.table),
		total, time.Now().UnixMilli(), id,
	).Error
	return total, err
}

func (r *counterpartyRepository) ReplaceAll(ctx context.Context, cps []models.Counterparty) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, r.txTable)).Error; err != nil {
			return err
		}
		if err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, r.table)).Error; err != nil {
			return err
		}
		for i := range cps {
			cp := &cps[i]
			if err := r.insertCounterparty(tx, cp); err != nil {
				return err
			}
			for j := range cp.Transactions {
				row := cp.Transactions[j]
				row.CounterpartyID = cp.ID
				if err := r.insertTransactionRow(tx, &row); err != nil {
					return err
				}
			}
			// Imported totals are untrusted; re-derive from the rows.
			total, err := r.recomputeLocked(tx, cp.ID)
			if err != nil {
				return err
			}
			cp.TotalDebt = total
		}
		return nil
	})
	return translate(err)
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrConflict
		case "23503": // foreign_key_violation
			return ErrNotFound
		}
	}
	return err
}
