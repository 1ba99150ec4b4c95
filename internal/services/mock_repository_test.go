package services

import (
	"context"
	"sort"
	"sync"

	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
)

// memRepo is an in-memory CounterpartyRepository. A single mutex held across
// every operation stands in for the row lock the real store takes, so
// concurrent recomputes serialize the same way.
type memRepo struct {
	mu   sync.Mutex
	kind models.Kind
	cps  map[string]*models.Counterparty
	txs  map[string][]models.Transaction
}

func newMemRepo(kind models.Kind) *memRepo {
	return &memRepo{
		kind: kind,
		cps:  map[string]*models.Counterparty{},
		txs:  map[string][]models.Transaction{},
	}
}

func newMemRepos() (*repository.Repositories, *memRepo, *memRepo) {
	suppliers := newMemRepo(models.KindSupplier)
	clients := newMemRepo(models.KindClient)
	return &repository.Repositories{Suppliers: suppliers, Clients: clients}, suppliers, clients
}

// sortedTxs returns a copy ordered by date descending, insertion order
// breaking ties, matching the store's read ordering.
func (m *memRepo) sortedTxs(id string) []models.Transaction {
	out := make([]models.Transaction, len(m.txs[id]))
	copy(out, m.txs[id])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func (m *memRepo) view(cp *models.Counterparty) *models.Counterparty {
	out := *cp
	out.Transactions = m.sortedTxs(cp.ID)
	return &out
}

func (m *memRepo) FindByID(ctx context.Context, id string) (*models.Counterparty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.cps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.view(cp), nil
}

func (m *memRepo) List(ctx context.Context) ([]models.Counterparty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Counterparty, 0, len(m.cps))
	for _, cp := range m.cps {
		out = append(out, *m.view(cp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memRepo) Create(ctx context.Context, cp *models.Counterparty, txs []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.cps[cp.ID]; exists {
		return repository.ErrConflict
	}
	stored := *cp
	m.cps[cp.ID] = &stored
	for _, tx := range txs {
		m.txs[cp.ID] = append(m.txs[cp.ID], tx)
	}
	stored.TotalDebt = m.sumLocked(cp.ID)
	cp.TotalDebt = stored.TotalDebt
	return nil
}

func (m *memRepo) UpdateFields(ctx context.Context, id string, patch map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.cps[id]
	if !ok {
		return repository.ErrNotFound
	}
	for col, val := range patch {
		switch col {
		case "name":
			cp.Name = val.(string)
		case "phone":
			if val == nil {
				cp.Phone = nil
			} else {
				s := val.(string)
				cp.Phone = &s
			}
		case "due_day":
			if val == nil {
				cp.DueDay = nil
			} else {
				d := val.(int)
				cp.DueDay = &d
			}
		case "next_due_date":
			if val == nil {
				cp.NextDueDate = nil
			} else {
				s := val.(string)
				cp.NextDueDate = &s
			}
		case "updated_at":
			cp.UpdatedAt = val.(int64)
		}
	}
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.cps, id)
	delete(m.txs, id)
	return nil
}

func (m *memRepo) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cps[tx.CounterpartyID]; !ok {
		return repository.ErrNotFound
	}
	m.txs[tx.CounterpartyID] = append(m.txs[tx.CounterpartyID], *tx)
	return nil
}

func (m *memRepo) SumTransactions(ctx context.Context, counterpartyID string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sumLocked(counterpartyID), nil
}

func (m *memRepo) sumLocked(counterpartyID string) float64 {
	total := 0.0
	for _, tx := range m.txs[counterpartyID] {
		total += tx.Signed()
	}
	return total
}

func (m *memRepo) RecomputeTotal(ctx context.Context, id string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp, ok := m.cps[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	cp.TotalDebt = m.sumLocked(id)
	return cp.TotalDebt, nil
}

func (m *memRepo) ReplaceAll(ctx context.Context, cps []models.Counterparty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cps = map[string]*models.Counterparty{}
	m.txs = map[string][]models.Transaction{}
	for i := range cps {
		cp := cps[i]
		for _, tx := range cp.Transactions {
			tx.CounterpartyID = cp.ID
			m.txs[cp.ID] = append(m.txs[cp.ID], tx)
		}
		cp.Transactions = nil
		cp.TotalDebt = m.sumLocked(cp.ID)
		m.cps[cp.ID] = &cp
	}
	return nil
}

// corruptTotal overwrites the stored balance directly, bypassing recompute.
func (m *memRepo) corruptTotal(id string, total float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cps[id].TotalDebt = total
}

// seedCounterparty inserts a bare record for tests that exercise the
// transaction path directly.
func (m *memRepo) seedCounterparty(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cps[id] = &models.Counterparty{ID: id, Kind: m.kind, Name: name}
}
