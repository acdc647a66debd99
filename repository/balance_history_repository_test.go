package repository

import (
	"context"
	"testing"
	"time"

	"duelbot/domain/entities"
	"duelbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceHistoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	history := &entities.BalanceHistory{
		DiscordID:       123456,
		BalanceBefore:   100,
		BalanceAfter:    150,
		ChangeAmount:    50,
		TransactionType: entities.TransactionTypeMessageReward,
		TransactionMetadata: map[string]any{
			"reward": float64(50),
		},
	}

	err := repo.Record(ctx, history)
	require.NoError(t, err)

	assert.NotZero(t, history.ID)
	assert.Equal(t, testGuildID, history.GuildID)
	assert.False(t, history.CreatedAt.IsZero())
}

func TestBalanceHistoryRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceHistoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.Record(ctx, &entities.BalanceHistory{
			DiscordID:       123456,
			BalanceBefore:   int64(i * 10),
			BalanceAfter:    int64((i + 1) * 10),
			ChangeAmount:    10,
			TransactionType: entities.TransactionTypeMessageReward,
		})
		require.NoError(t, err)
	}

	t.Run("respects limit and orders newest first", func(t *testing.T) {
		histories, err := repo.GetByUser(ctx, 123456, 3)
		require.NoError(t, err)
		require.Len(t, histories, 3)

		for i := 1; i < len(histories); i++ {
			assert.False(t, histories[i].CreatedAt.After(histories[i-1].CreatedAt))
		}
	})

	t.Run("unknown user yields empty result", func(t *testing.T) {
		histories, err := repo.GetByUser(ctx, 999999, 10)
		require.NoError(t, err)
		assert.Empty(t, histories)
	})

	t.Run("metadata round-trips", func(t *testing.T) {
		err := repo.Record(ctx, &entities.BalanceHistory{
			DiscordID:       222222,
			BalanceBefore:   0,
			BalanceAfter:    50,
			ChangeAmount:    50,
			TransactionType: entities.TransactionTypeDuelWin,
			TransactionMetadata: map[string]any{
				"duel_id":         "abc-123",
				"challenger_move": "rock",
			},
		})
		require.NoError(t, err)

		histories, err := repo.GetByUser(ctx, 222222, 1)
		require.NoError(t, err)
		require.Len(t, histories, 1)
		assert.Equal(t, "abc-123", histories[0].TransactionMetadata["duel_id"])
		assert.Equal(t, "rock", histories[0].TransactionMetadata["challenger_move"])
	})
}

func TestBalanceHistoryRepository_GetByDateRange(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceHistoryRepository(testDB.DB, testGuildID)
	ctx := context.Background()

	err := repo.Record(ctx, &entities.BalanceHistory{
		DiscordID:       123456,
		BalanceBefore:   0,
		BalanceAfter:    25,
		ChangeAmount:    25,
		TransactionType: entities.TransactionTypeTransferIn,
	})
	require.NoError(t, err)

	now := time.Now()

	t.Run("window covering the entry", func(t *testing.T) {
		histories, err := repo.GetByDateRange(ctx, 123456, now.Add(-time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, histories, 1)
	})

	t.Run("window before the entry", func(t *testing.T) {
		histories, err := repo.GetByDateRange(ctx, 123456, now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, histories)
	})
}

// TestUnitOfWork_TransferAtomicity drives a failing two-sided mutation
// through a unit of work and checks nothing leaks out of the rolled back
// transaction.
func TestUnitOfWork_TransferAtomicity(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	poolRepo := NewAccountRepository(testDB.DB, testGuildID)
	_, err := poolRepo.Create(ctx, 111, "alice")
	require.NoError(t, err)
	_, err = poolRepo.AddBalance(ctx, 111, 100)
	require.NoError(t, err)

	factory := NewUnitOfWorkFactory(testDB.DB)
	uow := factory.CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))

	// Debit succeeds inside the transaction, then the credit to a missing
	// account fails; rollback must restore the debited balance.
	_, err = uow.AccountRepository().DeductBalance(ctx, 111, 60)
	require.NoError(t, err)
	_, err = uow.AccountRepository().AddBalance(ctx, 999999, 60)
	require.Error(t, err)
	require.NoError(t, uow.Rollback())

	account, err := poolRepo.GetByDiscordID(ctx, 111)
	require.NoError(t, err)
	assert.Equal(t, int64(100), account.Balance)
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	poolRepo := NewAccountRepository(testDB.DB, testGuildID)
	_, err := poolRepo.Create(ctx, 111, "alice")
	require.NoError(t, err)

	factory := NewUnitOfWorkFactory(testDB.DB)
	uow := factory.CreateForGuild(testGuildID)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	_, err = uow.AccountRepository().AddBalance(ctx, 111, 40)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	account, err := poolRepo.GetByDiscordID(ctx, 111)
	require.NoError(t, err)
	assert.Equal(t, int64(40), account.Balance)
}
