package repository

import (
	"context"
	"fmt"

	"duelbot/database"
	"duelbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface over a single pgx
// transaction. Repositories handed out by it all share that transaction.
type unitOfWork struct {
	db          *database.DB
	tx          pgx.Tx
	ctx         context.Context
	guildID     int64
	accountRepo interfaces.AccountRepository
	historyRepo interfaces.BalanceHistoryRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory over the pool
func NewUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

// CreateForGuild creates a new UnitOfWork scoped to a specific guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &unitOfWork{
		db:      f.db,
		guildID: guildID,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = newAccountRepository(tx, u.guildID)
	u.historyRepo = newBalanceHistoryRepository(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction. Safe to defer: it is a no-op after a
// successful Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.historyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.historyRepo
}
