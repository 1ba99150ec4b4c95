package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/smlcredit/smlcredit-api/pkg/logger"
)

// CounterpartyService manages the counterparty lifecycle: create, patch and
// delete for both suppliers and clients. It never writes total_debt itself;
// the balance belongs to the recompute path.
type CounterpartyService struct {
	repos *repository.Repositories
}

func NewCounterpartyService(repos *repository.Repositories) *CounterpartyService {
	return &CounterpartyService{repos: repos}
}

// CreateInput carries a new counterparty, optionally seeded with opening
// transactions.
type CreateInput struct {
	ID           string
	Name         string
	TotalDebt    float64
	Phone        *string
	DueDay       *int
	Transactions []ApplyInput
}

// UpdateInput is a partial patch; nil fields are left untouched. A DueDay of
// 0 clears the billing cycle.
type UpdateInput struct {
	Name   *string
	Phone  *string
	DueDay *int
}

func (s *CounterpartyService) List(ctx context.Context, kind models.Kind) ([]models.Counterparty, error) {
	cps, err := s.repos.ForKind(kind).List(ctx)
	return cps, fromRepo(err)
}

func (s *CounterpartyService) FindByID(ctx context.Context, kind models.Kind, id string) (*models.Counterparty, error) {
	cp, err := s.repos.ForKind(kind).FindByID(ctx, id)
	return cp, fromRepo(err)
}

func (s *CounterpartyService) Create(ctx context.Context, kind models.Kind, in CreateInput) (*models.Counterparty, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	now := time.Now().UnixMilli()
	cp := models.Counterparty{
		ID:        in.ID,
		Kind:      kind,
		Name:      strings.TrimSpace(in.Name),
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}

	if in.DueDay != nil {
		if kind != models.KindClient {
			return nil, fmt.Errorf("%w: dueDay only applies to clients", ErrInvalidInput)
		}
		if !ValidDueDay(*in.DueDay) {
			return nil, fmt.Errorf("%w: dueDay must be between 1 and 31", ErrInvalidInput)
		}
		day := *in.DueDay
		next := NextDueDate(day, time.Now())
		cp.DueDay = &day
		cp.NextDueDate = &next
	}

	seeds := make([]models.Transaction, 0, len(in.Transactions)+1)
	for i := range in.Transactions {
		txIn := in.Transactions[i]
		if err := txIn.Validate(); err != nil {
			return nil, err
		}
		tx := models.Transaction{
			ID:             txIn.ID,
			CounterpartyID: cp.ID,
			Amount:         *txIn.Amount,
			Kind:           txIn.Kind,
			Date:           now,
			Note:           txIn.Note,
			CreatedAt:      now,
		}
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		if txIn.Date != nil {
			tx.Date = *txIn.Date
		}
		seeds = append(seeds, tx)
	}

	// An opening balance with no transaction backing it would break the
	// ledger-equals-total rule, so turn it into an explicit opening entry.
	if in.TotalDebt > 0 && len(seeds) == 0 {
		note := "Initial debt"
		seeds = append(seeds, models.Transaction{
			ID:             uuid.NewString(),
			CounterpartyID: cp.ID,
			Amount:         in.TotalDebt,
			Kind:           models.TransactionDebt,
			Date:           now,
			Note:           &note,
			CreatedAt:      now,
		})
	}

	repo := s.repos.ForKind(kind)
	if err := repo.Create(ctx, &cp, seeds); err != nil {
		return nil, fromRepo(err)
	}

	created, err := repo.FindByID(ctx, cp.ID)
	if err != nil {
		return nil, fromRepo(err)
	}
	return created, nil
}

func (s *CounterpartyService) Update(ctx context.Context, kind models.Kind, id string, in UpdateInput) (*models.Counterparty, error) {
	patch := map[string]interface{}{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		patch["name"] = name
	}
	if in.Phone != nil {
		patch["phone"] = *in.Phone
	}
	if in.DueDay != nil {
		if kind != models.KindClient {
			return nil, fmt.Errorf("%w: dueDay only applies to clients", ErrInvalidInput)
		}
		switch {
		case *in.DueDay == 0:
			patch["due_day"] = nil
			patch["next_due_date"] = nil
		case ValidDueDay(*in.DueDay):
			patch["due_day"] = *in.DueDay
			patch["next_due_date"] = NextDueDate(*in.DueDay, time.Now())
		default:
			return nil, fmt.Errorf("%w: dueDay must be between 1 and 31", ErrInvalidInput)
		}
	}

	repo := s.repos.ForKind(kind)
	if err := repo.UpdateFields(ctx, id, patch); err != nil {
		return nil, fromRepo(err)
	}

	cp, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	return cp, nil
}

func (s *CounterpartyService) Delete(ctx context.Context, kind models.Kind, id string) error {
	return fromRepo(s.repos.ForKind(kind).Delete(ctx, id))
}

// RefreshDueDates rolls stale client due dates forward. The stored
// next_due_date is a derived value that goes out of date as time passes;
// this keeps it pointing at the next occurrence of each client's due day.
func (s *CounterpartyService) RefreshDueDates(ctx context.Context) error {
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return fromRepo(err)
	}

	today := time.Now()
	todayStr := today.Format("2006-01-02")
	refreshed := 0

	for i := range clients {
		c := &clients[i]
		if c.DueDay == nil {
			continue
		}
		next := NextDueDate(*c.DueDay, today)
		if c.NextDueDate != nil && *c.NextDueDate >= todayStr && *c.NextDueDate == next {
			continue
		}
		err := s.repos.Clients.UpdateFields(ctx, c.ID, map[string]interface{}{
			"next_due_date": next,
		})
		if err != nil {
			return fromRepo(err)
		}
		refreshed++
	}

	if refreshed > 0 {
		logger.Info("Refreshed client due dates", "count", refreshed)
	}
	return nil
}
