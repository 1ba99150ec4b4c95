package services

import (
	"context"
	"testing"

	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupService(t *testing.T) (*BackupService, *CounterpartyService, *TransactionService) {
	t.Helper()
	repos, _, _ := newMemRepos()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewBackupService(repos, store), NewCounterpartyService(repos), NewTransactionService(repos)
}

func TestExport_ContainsBothClasses(t *testing.T) {
	svc, cps, txs := newBackupService(t)

	s, err := cps.Create(context.Background(), models.KindSupplier, CreateInput{Name: "Lumber Co"})
	require.NoError(t, err)
	_, err = txs.Apply(context.Background(), models.KindSupplier, s.ID, ApplyInput{
		Amount: f64(100), Kind: models.TransactionDebt,
	})
	require.NoError(t, err)
	_, err = cps.Create(context.Background(), models.KindClient, CreateInput{Name: "Corner Store"})
	require.NoError(t, err)

	backup, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.BackupVersion, backup.Version)
	assert.NotEmpty(t, backup.ExportDate)
	require.Len(t, backup.Suppliers, 1)
	require.Len(t, backup.Clients, 1)
	assert.Equal(t, 100.0, backup.Suppliers[0].TotalDebt)
	assert.Len(t, backup.Suppliers[0].Transactions, 1)
}

func TestImport_ReplacesDataAndRederivesTotals(t *testing.T) {
	svc, cps, _ := newBackupService(t)

	_, err := cps.Create(context.Background(), models.KindSupplier, CreateInput{Name: "Old Supplier"})
	require.NoError(t, err)

	backup := &models.Backup{
		Version:   models.BackupVersion,
		Suppliers: []models.Counterparty{},
		Clients: []models.Counterparty{
			{
				ID:   "c1",
				Name: "Corner Store",
				// Stored total in the file is wrong on purpose
				TotalDebt: 12345,
				Transactions: []models.Transaction{
					{ID: "t1", Amount: 100, Kind: models.TransactionDebt, Date: 1000},
					{ID: "t2", Amount: 25, Kind: models.TransactionPayment, Date: 2000},
				},
			},
		},
	}

	require.NoError(t, svc.Import(context.Background(), backup))

	exported, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exported.Suppliers)
	require.Len(t, exported.Clients, 1)
	assert.Equal(t, 75.0, exported.Clients[0].TotalDebt)
}

func TestImport_RejectsPartialDocument(t *testing.T) {
	svc, _, _ := newBackupService(t)

	err := svc.Import(context.Background(), &models.Backup{Suppliers: []models.Counterparty{}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Import(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestImport_RejectsBadRows(t *testing.T) {
	svc, _, _ := newBackupService(t)

	bad := &models.Backup{
		Suppliers: []models.Counterparty{
			{
				ID:   "s1",
				Name: "Lumber Co",
				Transactions: []models.Transaction{
					{ID: "t1", Amount: -5, Kind: models.TransactionDebt},
				},
			},
		},
		Clients: []models.Counterparty{},
	}
	assert.ErrorIs(t, svc.Import(context.Background(), bad), ErrInvalidInput)

	noName := &models.Backup{
		Suppliers: []models.Counterparty{{ID: "s1"}},
		Clients:   []models.Counterparty{},
	}
	assert.ErrorIs(t, svc.Import(context.Background(), noName), ErrInvalidInput)
}

func TestSnapshot_WritesFile(t *testing.T) {
	repos, _, _ := newMemRepos()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewBackupService(repos, store)

	path, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"suppliers"`)

	snapshots, err := store.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

func TestSnapshotArchive_ListAndRead(t *testing.T) {
	svc, cps, _ := newBackupService(t)

	_, err := cps.Create(context.Background(), models.KindClient, CreateInput{Name: "Corner Store"})
	require.NoError(t, err)

	path, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	paths, err := svc.ListSnapshots()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)

	data, err := svc.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Corner Store")
}

func TestReadSnapshot_Missing(t *testing.T) {
	svc, _, _ := newBackupService(t)

	_, err := svc.ReadSnapshot("backups/2026/01/nope.json")
	assert.ErrorIs(t, err, ErrNotFound)
}
