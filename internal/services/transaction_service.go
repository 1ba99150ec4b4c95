package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/pkg/logger"
)

// TransactionService validates and applies ledger transactions and owns the
// balance recomputation. The stored total is never adjusted incrementally:
// every write re-derives it from the full transaction history, so the cached
// value can never drift away from the rows it summarizes.
type TransactionService struct {
	repos *repository.Repositories
}

func NewTransactionService(repos *repository.Repositories) *TransactionService {
	return &TransactionService{repos: repos}
}

// ApplyInput is one incoming debt or payment event.
type ApplyInput struct {
	ID     string
	Amount *float64
	Kind   string
	Date   *int64
	Note   *string
}

// Validate checks the input without touching storage.
func (in *ApplyInput) Validate() error {
	if in.Amount == nil {
		return fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	if math.IsNaN(*in.Amount) || math.IsInf(*in.Amount, 0) {
		return fmt.Errorf("%w: amount must be a number", ErrInvalidInput)
	}
	if *in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	if in.Kind == "" {
		return fmt.Errorf("%w: kind is required", ErrInvalidInput)
	}
	if !models.ValidTransactionKind(in.Kind) {
		return fmt.Errorf("%w: kind must be 'debt' or 'payment'", ErrInvalidInput)
	}
	return nil
}

// Apply persists one transaction against the counterparty, re-derives the
// stored balance and returns the refreshed counterparty view.
//
// The insert and the recompute are two storage calls on purpose: once the row
// is durably inserted it is authoritative, and a failure between the two steps
// leaves only the derived total stale. Any later recompute (next write, the
// integrity sweep, or the repair endpoint) restores it.
func (s *TransactionService) Apply(ctx context.Context, kind models.Kind, counterpartyID string, in ApplyInput) (*models.Counterparty, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repo := s.repos.ForKind(kind)
	now := time.Now().UnixMilli()

	tx := models.Transaction{
		ID:             in.ID,
		CounterpartyID: counterpartyID,
		Amount:         *in.Amount,
		Kind:           in.Kind,
		Date:           now,
		Note:           in.Note,
		CreatedAt:      now,
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}

	if err := repo.InsertTransaction(ctx, &tx); err != nil {
		return nil, fromRepo(err)
	}

	if _, err := repo.RecomputeTotal(ctx, counterpartyID); err != nil {
		return nil, fmt.Errorf("transaction %s recorded but balance recompute failed: %w", tx.ID, fromRepo(err))
	}

	cp, err := repo.FindByID(ctx, counterpartyID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return cp, nil
}

// Recompute re-derives one counterparty's balance from its transaction rows.
// Idempotent: with no new transactions it always lands on the same total.
func (s *TransactionService) Recompute(ctx context.Context, kind models.Kind, counterpartyID string) (float64, error) {
	total, err := s.repos.ForKind(kind).RecomputeTotal(ctx, counterpartyID)
	return total, fromRepo(err)
}

// IntegritySweep re-derives the balance of every counterparty whose stored
// total disagrees with its transaction sum. Drift can only appear when a
// recompute failed after a successful insert; the sweep is the self-healing
// path for that window.
func (s *TransactionService) IntegritySweep(ctx context.Context) error {
	var firstErr error
	for _, kind := range []models.Kind{models.KindSupplier, models.KindClient} {
		repo := s.repos.ForKind(kind)
		cps, err := repo.List(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for i := range cps {
			cp := &cps[i]
			sum, err := repo.SumTransactions(ctx, cp.ID)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if sum == cp.TotalDebt {
				continue
			}
			total, err := repo.RecomputeTotal(ctx, cp.ID)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			logger.Warn("Repaired stale balance",
				"kind", string(kind), "id", cp.ID,
				"stored", cp.TotalDebt, "derived", total)
		}
	}
	return firstErr
}
