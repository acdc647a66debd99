package interfaces

import (
	"context"
	"time"

	"duelbot/domain/entities"
)

// AccountRepository defines guild-scoped access to user economy accounts.
// All mutating operations are atomic with respect to concurrent callers on
// the same account; the guarded ones never leave a committed negative
// balance.
type AccountRepository interface {
	// GetByDiscordID retrieves an account, or nil if the user has none yet
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error)

	// Create inserts a zeroed account, returning the existing row untouched
	// if one already exists
	Create(ctx context.Context, discordID int64, username string) (*entities.Account, error)

	// AddBalance unconditionally increments the balance and returns the new value
	AddBalance(ctx context.Context, discordID int64, amount int64) (int64, error)

	// DeductBalance decrements the balance only if it covers the amount.
	// Returns the new balance, or *entities.InsufficientFundsError without
	// mutating anything.
	DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error)

	// GetForUpdate retrieves an account holding a row lock for the duration
	// of the surrounding transaction
	GetForUpdate(ctx context.Context, discordID int64) (*entities.Account, error)

	// UpdateProgress persists experience and level together
	UpdateProgress(ctx context.Context, discordID int64, experience, level int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user, newest first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error)

	// GetByDateRange returns balance history within a date range
	GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error)
}
