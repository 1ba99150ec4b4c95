package services

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string   { return &v }

func TestApply_DebtThenPayment(t *testing.T) {
	repos, suppliers, _ := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")

	cp, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(100), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, cp.TotalDebt)

	cp, err = svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(40), Kind: models.TransactionPayment, Note: str("partial"),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, cp.TotalDebt)
	assert.Len(t, cp.Transactions, 2)
}

func TestApply_OrdersNewestFirst(t *testing.T) {
	repos, suppliers, _ := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")

	_, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(10), Kind: models.TransactionDebt, Date: i64(1000),
	})
	require.NoError(t, err)
	cp, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(20), Kind: models.TransactionDebt, Date: i64(2000),
	})
	require.NoError(t, err)

	require.Len(t, cp.Transactions, 2)
	assert.Equal(t, int64(2000), cp.Transactions[0].Date)
	assert.Equal(t, int64(1000), cp.Transactions[1].Date)
}

func TestApply_Validation(t *testing.T) {
	repos, suppliers, _ := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")

	tests := []struct {
		name  string
		input ApplyInput
	}{
		{"missing amount", ApplyInput{Kind: models.TransactionDebt}},
		{"zero amount", ApplyInput{Amount: f64(0), Kind: models.TransactionDebt}},
		{"negative amount", ApplyInput{Amount: f64(-5), Kind: models.TransactionPayment}},
		{"NaN amount", ApplyInput{Amount: f64(math.NaN()), Kind: models.TransactionDebt}},
		{"missing kind", ApplyInput{Amount: f64(10)}},
		{"unknown kind", ApplyInput{Amount: f64(10), Kind: "transfer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(context.Background(), models.KindSupplier, "s1", tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// Nothing was written and the balance is untouched
	cp, err := repos.Suppliers.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, cp.Transactions)
	assert.Equal(t, 0.0, cp.TotalDebt)
}

func TestApply_UnknownCounterparty(t *testing.T) {
	repos, _, _ := newMemRepos()
	svc := NewTransactionService(repos)

	_, err := svc.Apply(context.Background(), models.KindClient, "missing", ApplyInput{
		Amount: f64(10), Kind: models.TransactionDebt,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecompute_Idempotent(t *testing.T) {
	repos, suppliers, _ := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")

	_, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(100), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)

	first, err := svc.Recompute(context.Background(), models.KindSupplier, "s1")
	require.NoError(t, err)
	second, err := svc.Recompute(context.Background(), models.KindSupplier, "s1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 100.0, second)
}

func TestApply_ConcurrentWriters(t *testing.T) {
	repos, _, clients := newMemRepos()
	svc := NewTransactionService(repos)
	clients.seedCounterparty("c1", "Corner Store")

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Apply(context.Background(), models.KindClient, "c1", ApplyInput{
				Amount: f64(2), Kind: models.TransactionDebt,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cp, err := repos.Clients.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, cp.Transactions, writers)
	assert.Equal(t, float64(writers*2), cp.TotalDebt)

	sum, err := repos.Clients.SumTransactions(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cp.TotalDebt, sum)
}

func TestIntegritySweep_RepairsDrift(t *testing.T) {
	repos, suppliers, clients := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")
	clients.seedCounterparty("c1", "Corner Store")

	_, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(100), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), models.KindClient, "c1", ApplyInput{
		Amount: f64(50), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)

	suppliers.corruptTotal("s1", 999)
	clients.corruptTotal("c1", -3)

	require.NoError(t, svc.IntegritySweep(context.Background()))

	s, err := repos.Suppliers.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.TotalDebt)

	c, err := repos.Clients.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.TotalDebt)
}

func TestApply_FullScenario(t *testing.T) {
	repos, suppliers, _ := newMemRepos()
	svc := NewTransactionService(repos)
	suppliers.seedCounterparty("s1", "Lumber Co")

	cp, err := svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(100), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, cp.TotalDebt)

	cp, err = svc.Apply(context.Background(), models.KindSupplier, "s1", ApplyInput{
		Amount: f64(40), Kind: models.TransactionPayment,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, cp.TotalDebt)

	total, err := svc.Recompute(context.Background(), models.KindSupplier, "s1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, total)
}
