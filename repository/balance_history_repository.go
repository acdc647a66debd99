package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"duelbot/database"
	"duelbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BalanceHistoryRepository implements the BalanceHistoryRepository interface
// over postgres
type BalanceHistoryRepository struct {
	q       queryable
	guildID int64
}

// NewBalanceHistoryRepository creates a balance history repository over the
// pool, scoped to a guild
func NewBalanceHistoryRepository(db *database.DB, guildID int64) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool, guildID: guildID}
}

// newBalanceHistoryRepository creates a balance history repository bound to a
// transaction and guild scope
func newBalanceHistoryRepository(tx queryable, guildID int64) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	metadataJSON, err := json.Marshal(history.TransactionMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO balance_history
		(discord_id, guild_id, balance_before, balance_after, change_amount, transaction_type, transaction_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		history.DiscordID,
		r.guildID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		metadataJSON,
	).Scan(&history.ID, &history.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record balance history for user %d: %w", history.DiscordID, err)
	}

	history.GuildID = r.guildID
	return nil
}

// GetByUser returns balance history for a specific user, newest first
func (r *BalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	query := `
		SELECT id, discord_id, guild_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for user %d: %w", discordID, err)
	}
	defer rows.Close()

	return scanHistories(rows)
}

// GetByDateRange returns balance history within a date range, oldest first
func (r *BalanceHistoryRepository) GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error) {
	query := `
		SELECT id, discord_id, guild_id, balance_before, balance_after, change_amount,
		       transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE discord_id = $1 AND guild_id = $2 AND created_at >= $3 AND created_at < $4
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history range for user %d: %w", discordID, err)
	}
	defer rows.Close()

	return scanHistories(rows)
}

func scanHistories(rows pgx.Rows) ([]*entities.BalanceHistory, error) {
	var histories []*entities.BalanceHistory
	for rows.Next() {
		var history entities.BalanceHistory
		var metadataJSON []byte
		err := rows.Scan(
			&history.ID,
			&history.DiscordID,
			&history.GuildID,
			&history.BalanceBefore,
			&history.BalanceAfter,
			&history.ChangeAmount,
			&history.TransactionType,
			&metadataJSON,
			&history.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &history.TransactionMetadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}

	return histories, nil
}
