package repository

import (
	"context"
	"fmt"

	"duelbot/database"
	"duelbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface over postgres.
// All queries are scoped to a single guild.
type AccountRepository struct {
	q       queryable
	guildID int64
}

// NewAccountRepository creates an account repository over the pool, scoped to
// a guild
func NewAccountRepository(db *database.DB, guildID int64) *AccountRepository {
	return &AccountRepository{q: db.Pool, guildID: guildID}
}

// newAccountRepository creates an account repository bound to a transaction
// and guild scope
func newAccountRepository(tx queryable, guildID int64) *AccountRepository {
	return &AccountRepository{
		q:       tx,
		guildID: guildID,
	}
}

const accountColumns = `discord_id, guild_id, username, balance, experience, level, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.DiscordID,
		&account.GuildID,
		&account.Username,
		&account.Balance,
		&account.Experience,
		&account.Level,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByDiscordID retrieves an account by Discord ID in the current guild.
// A missing account is not an error: it returns nil, nil.
func (r *AccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = $1 AND guild_id = $2
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, r.guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d in guild %d: %w", discordID, r.guildID, err)
	}

	return account, nil
}

// Create inserts a zeroed account. A concurrent insert of the same account is
// not an error: the existing row comes back with its username refreshed.
func (r *AccountRepository) Create(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (discord_id, guild_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, discord_id) DO UPDATE SET
			username = EXCLUDED.username,
			updated_at = NOW()
		RETURNING ` + accountColumns + `
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, r.guildID, username))
	if err != nil {
		return nil, fmt.Errorf("failed to create account %d in guild %d: %w", discordID, r.guildID, err)
	}

	return account, nil
}

// AddBalance atomically adds amount to the account's balance and returns the
// new balance
func (r *AccountRepository) AddBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, discordID, r.guildID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("account %d not found in guild %d", discordID, r.guildID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for account %d in guild %d: %w", discordID, r.guildID, err)
	}

	return newBalance, nil
}

// DeductBalance atomically removes amount from the account's balance. The
// update is guarded by the current balance, so two concurrent deducts can
// never drive it negative; the loser gets an InsufficientFundsError carrying
// the balance it actually saw.
func (r *AccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE discord_id = $2 AND guild_id = $3 AND balance >= $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, discordID, r.guildID).Scan(&newBalance)
	if err == nil {
		return newBalance, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("failed to deduct balance for account %d in guild %d: %w", discordID, r.guildID, err)
	}

	// The guard rejected the update: either the account is missing or the
	// balance does not cover the amount.
	account, lookupErr := r.GetByDiscordID(ctx, discordID)
	if lookupErr != nil {
		return 0, lookupErr
	}
	if account == nil {
		return 0, fmt.Errorf("account %d not found in guild %d", discordID, r.guildID)
	}

	return 0, &entities.InsufficientFundsError{
		DiscordID: discordID,
		Have:      account.Balance,
		Need:      amount,
	}
}

// GetForUpdate retrieves an account with a row lock held for the rest of the
// transaction. A missing account returns nil, nil.
func (r *AccountRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE discord_id = $1 AND guild_id = $2
		FOR UPDATE
	`

	account, err := scanAccount(r.q.QueryRow(ctx, query, discordID, r.guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d in guild %d: %w", discordID, r.guildID, err)
	}

	return account, nil
}

// UpdateProgress persists experience and level together
func (r *AccountRepository) UpdateProgress(ctx context.Context, discordID int64, experience, level int64) error {
	query := `
		UPDATE accounts
		SET experience = $1, level = $2, updated_at = NOW()
		WHERE discord_id = $3 AND guild_id = $4
	`

	result, err := r.q.Exec(ctx, query, experience, level, discordID, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to update progress for account %d in guild %d: %w", discordID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found in guild %d", discordID, r.guildID)
	}

	return nil
}
