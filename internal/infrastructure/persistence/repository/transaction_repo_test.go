package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tugu-digital/dots/internal/domain/entity"
	"github.com/tugu-digital/dots/internal/domain/status"
	"github.com/tugu-digital/dots/internal/infrastructure/persistence/sqlite"
	"github.com/tugu-digital/dots/pkg/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "dots.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations(filepath.Join("..", "..", "..", "..", "migrations")))

	return db
}

func seedTxn(dotsNumber, hash string) *entity.Transaction {
	return &entity.Transaction{
		DotsNumber: dotsNumber,
		Hash:       hash,
		Status:     status.CashAdvanceCreated,
		TrxType:    1,
		FormType:   "C",
		Category:   "H",
		DocType:    "employee",
		CreatedBy:  "creator@tugu.com",
	}
}

func TestWithTransactionRollbackDiscardsCreate(t *testing.T) {
	db := newTestDB(t)
	txManager := sqlite.NewDB(db.DB, zap.NewNop())
	repo := NewTransactionRepository(db.DB, zap.NewNop())

	boom := errors.New("log insert failed")
	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, seedTxn("DOTS/2026/000001", "hash-rollback")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count))
	assert.Equal(t, 0, count, "rolled-back create must not leave a row behind")
}

func TestWithTransactionCommitPersistsCreate(t *testing.T) {
	db := newTestDB(t)
	txManager := sqlite.NewDB(db.DB, zap.NewNop())
	repo := NewTransactionRepository(db.DB, zap.NewNop())

	txn := seedTxn("DOTS/2026/000002", "hash-commit")
	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, txn)
	})
	require.NoError(t, err)
	require.NotZero(t, txn.ID)

	got, err := repo.GetByHash(context.Background(), "hash-commit")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "DOTS/2026/000002", got.DotsNumber)
	assert.Equal(t, status.CashAdvanceCreated, got.Status)
}

func TestNextSequenceRollsBackWithEnclosingTransaction(t *testing.T) {
	db := newTestDB(t)
	txManager := sqlite.NewDB(db.DB, zap.NewNop())
	repo := NewTransactionRepository(db.DB, zap.NewNop())

	boom := errors.New("create failed")
	err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		seq, err := repo.NextSequence(ctx, 2026)
		if err != nil {
			return err
		}
		require.EqualValues(t, 1, seq)
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The failed creation must not consume a number.
	var seq int64
	err = txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
		seq, err = repo.NextSequence(ctx, 2026)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)
}

func TestNextSequenceCountsPerYear(t *testing.T) {
	db := newTestDB(t)
	txManager := sqlite.NewDB(db.DB, zap.NewNop())
	repo := NewTransactionRepository(db.DB, zap.NewNop())

	ctx := context.Background()
	for want := int64(1); want <= 3; want++ {
		var seq int64
		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			var err error
			seq, err = repo.NextSequence(txCtx, 2026)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	var seq int64
	err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		seq, err = repo.NextSequence(txCtx, 2027)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq, "sequences are independent per year")
}
