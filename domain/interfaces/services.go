package interfaces

import (
	"context"

	"duelbot/domain/entities"
	"duelbot/events"
)

// EventEmitter publishes domain events to interested consumers
type EventEmitter interface {
	Emit(ctx context.Context, event events.Event)
}

// Ledger defines the atomic economy operations. Implementations must
// guarantee that concurrent callers on the same account never lose updates
// and never observe a committed negative balance from a guarded debit.
type Ledger interface {
	// GetOrCreate retrieves an account, lazily creating a zeroed one on
	// first contact
	GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.Account, error)

	// Credit unconditionally adds amount (> 0) and returns the new balance
	Credit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// Debit removes amount (> 0) if the balance covers it; fails with
	// *entities.InsufficientFundsError and no mutation otherwise
	Debit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// Transfer atomically moves amount from one account to the other:
	// either both mutations commit or neither does. The two transaction
	// types tag the debit and credit history rows. Failures come back as
	// *entities.TransferError; from == to is rejected with ErrSelfTransfer.
	Transfer(ctx context.Context, fromDiscordID, toDiscordID int64, amount int64, fromType, toType entities.TransactionType, metadata map[string]any) error

	// GrantExperience adds amount (> 0) of experience, repairing stale
	// experience values first, and reports whether a level boundary was
	// crossed. Persisting experience and level is a single atomic step.
	GrantExperience(ctx context.Context, discordID int64, amount int64) (entities.LevelChange, error)
}

// RewardResult reports what the passive reward pipeline did for one message
type RewardResult struct {
	Credited    int64
	LevelChange entities.LevelChange
}

// RewardService is the per-message passive reward pipeline
type RewardService interface {
	// HandleMessage credits a random reward and grants message experience.
	// The two steps fail independently: an error from one never prevents
	// the other from being attempted, and both errors are reported joined.
	HandleMessage(ctx context.Context, discordID int64, username string) (*RewardResult, error)
}

// AcceptResponse is the opponent's answer to a duel challenge
type AcceptResponse int

const (
	AcceptResponseTimedOut AcceptResponse = iota
	AcceptResponseAccepted
	AcceptResponseDeclined
)

// DuelInteractor collects human input for a duel session. Implementations
// bound each prompt with the session timeout and must tear the prompt down
// on every exit path.
type DuelInteractor interface {
	// PromptAccept asks the opponent to accept or decline the challenge
	PromptAccept(ctx context.Context, session *entities.DuelSession) (AcceptResponse, error)

	// PromptMove asks one participant for their move. ok is false when the
	// participant made no choice within the timeout.
	PromptMove(ctx context.Context, session *entities.DuelSession, player entities.Participant) (move entities.Move, ok bool, err error)
}

// DuelService runs the wagered rock-paper-scissors protocol
type DuelService interface {
	// Run drives a session from Init to a terminal phase. Funds move at
	// most once, during resolution; every earlier exit leaves the ledger
	// untouched.
	Run(ctx context.Context, session *entities.DuelSession) error
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	BalanceHistoryRepository() BalanceHistoryRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}
