package services

import (
	"context"
	"fmt"

	"duelbot/domain/entities"
	"duelbot/domain/interfaces"
	"duelbot/events"
)

type ledgerService struct {
	guildID    int64
	uowFactory interfaces.UnitOfWorkFactory
	emitter    interfaces.EventEmitter
}

// NewLedger creates a ledger scoped to one guild. Every operation runs in
// its own unit of work, so each call is atomic on its own.
func NewLedger(guildID int64, uowFactory interfaces.UnitOfWorkFactory, emitter interfaces.EventEmitter) interfaces.Ledger {
	return &ledgerService{
		guildID:    guildID,
		uowFactory: uowFactory,
		emitter:    emitter,
	}
}

// GetOrCreate retrieves an account, lazily creating a zeroed one for users
// never seen before
func (s *ledgerService) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	uow := s.uowFactory.CreateForGuild(s.guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, entities.NewStorageError("begin", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, entities.NewStorageError("get account", err)
	}
	if account != nil {
		return account, nil
	}

	account, err = uow.AccountRepository().Create(ctx, discordID, username)
	if err != nil {
		return nil, entities.NewStorageError("create account", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, entities.NewStorageError("commit", err)
	}

	s.emitter.Emit(ctx, events.AccountCreatedEvent{
		DiscordID: discordID,
		GuildID:   s.guildID,
		Username:  username,
	})

	return account, nil
}

// Credit unconditionally adds amount to the account's balance
func (s *ledgerService) Credit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.CreateForGuild(s.guildID)
	if err := uow.Begin(ctx); err != nil {
		return 0, entities.NewStorageError("begin", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.AccountRepository().AddBalance(ctx, discordID, amount)
	if err != nil {
		return 0, entities.NewStorageError("credit", err)
	}

	if err := s.recordChange(ctx, uow, discordID, newBalance-amount, newBalance, txType, metadata); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, entities.NewStorageError("commit", err)
	}

	s.emitBalanceChange(ctx, discordID, newBalance-amount, newBalance, txType)
	return newBalance, nil
}

// Debit removes amount from the account's balance if it is covered. On
// insufficient funds nothing is mutated and the typed error carries the
// have/need amounts for the user-facing message.
func (s *ledgerService) Debit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.CreateForGuild(s.guildID)
	if err := uow.Begin(ctx); err != nil {
		return 0, entities.NewStorageError("begin", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.AccountRepository().DeductBalance(ctx, discordID, amount)
	if err != nil {
		if entities.IsInsufficientFunds(err) {
			return 0, err
		}
		return 0, entities.NewStorageError("debit", err)
	}

	if err := s.recordChange(ctx, uow, discordID, newBalance+amount, newBalance, txType, metadata); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, entities.NewStorageError("commit", err)
	}

	s.emitBalanceChange(ctx, discordID, newBalance+amount, newBalance, txType)
	return newBalance, nil
}

// Transfer moves amount between two accounts in a single transaction:
// either both sides commit or neither does.
func (s *ledgerService) Transfer(ctx context.Context, fromDiscordID, toDiscordID int64, amount int64, fromType, toType entities.TransactionType, metadata map[string]any) error {
	if fromDiscordID == toDiscordID {
		return entities.ErrSelfTransfer
	}
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.CreateForGuild(s.guildID)
	if err := uow.Begin(ctx); err != nil {
		return entities.NewStorageError("begin", err)
	}
	defer uow.Rollback()

	// The guarded deduct doubles as the last-instant funds re-check; any
	// earlier validation may be stale by the time settlement runs.
	newFromBalance, err := uow.AccountRepository().DeductBalance(ctx, fromDiscordID, amount)
	if err != nil {
		if entities.IsInsufficientFunds(err) {
			return &entities.TransferError{
				FromDiscordID: fromDiscordID,
				ToDiscordID:   toDiscordID,
				Amount:        amount,
				Err:           err,
			}
		}
		return entities.NewStorageError("transfer debit", err)
	}

	newToBalance, err := uow.AccountRepository().AddBalance(ctx, toDiscordID, amount)
	if err != nil {
		return entities.NewStorageError("transfer credit", err)
	}

	if err := s.recordChange(ctx, uow, fromDiscordID, newFromBalance+amount, newFromBalance, fromType, metadata); err != nil {
		return err
	}
	if err := s.recordChange(ctx, uow, toDiscordID, newToBalance-amount, newToBalance, toType, metadata); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return entities.NewStorageError("commit", err)
	}

	s.emitBalanceChange(ctx, fromDiscordID, newFromBalance+amount, newFromBalance, fromType)
	s.emitBalanceChange(ctx, toDiscordID, newToBalance-amount, newToBalance, toType)
	return nil
}

// GrantExperience adds experience under a row lock, repairing experience
// values left behind by an older curve before applying the delta, and
// persists experience and the recomputed level together.
func (s *ledgerService) GrantExperience(ctx context.Context, discordID int64, amount int64) (entities.LevelChange, error) {
	var change entities.LevelChange

	if amount <= 0 {
		return change, fmt.Errorf("experience amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.CreateForGuild(s.guildID)
	if err := uow.Begin(ctx); err != nil {
		return change, entities.NewStorageError("begin", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetForUpdate(ctx, discordID)
	if err != nil {
		return change, entities.NewStorageError("lock account", err)
	}
	if account == nil {
		return change, fmt.Errorf("account %d not found in guild %d", discordID, s.guildID)
	}

	experience := account.Experience
	if !IsConsistent(account.Level, experience) {
		// Deliberately lossy: the level survives, stale experience does not.
		experience = LevelToExperience(account.Level)
	}

	experience += amount
	newLevel := ExperienceToLevel(experience)

	if err := uow.AccountRepository().UpdateProgress(ctx, discordID, experience, newLevel); err != nil {
		return change, entities.NewStorageError("update progress", err)
	}

	if err := uow.Commit(); err != nil {
		return change, entities.NewStorageError("commit", err)
	}

	change.Old = account.Level
	change.New = newLevel
	return change, nil
}

func (s *ledgerService) recordChange(ctx context.Context, uow interfaces.UnitOfWork, discordID, before, after int64, txType entities.TransactionType, metadata map[string]any) error {
	history := &entities.BalanceHistory{
		DiscordID:           discordID,
		GuildID:             s.guildID,
		BalanceBefore:       before,
		BalanceAfter:        after,
		ChangeAmount:        after - before,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return entities.NewStorageError("record balance change", err)
	}
	return nil
}

func (s *ledgerService) emitBalanceChange(ctx context.Context, discordID, before, after int64, txType entities.TransactionType) {
	s.emitter.Emit(ctx, events.BalanceChangeEvent{
		DiscordID:       discordID,
		GuildID:         s.guildID,
		OldBalance:      before,
		NewBalance:      after,
		TransactionType: txType,
		ChangeAmount:    after - before,
	})
}
