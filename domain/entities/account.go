package entities

import (
	"time"
)

// Account holds the per-guild economy state for a Discord user: their vbucks
// balance plus experience and the level derived from it.
type Account struct {
	DiscordID  int64     `db:"discord_id"`
	GuildID    int64     `db:"guild_id"`
	Username   string    `db:"username"`
	Balance    int64     `db:"balance"`
	Experience int64     `db:"experience"`
	Level      int64     `db:"level"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CanAfford checks if the account has sufficient balance for an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}

// LevelChange reports the level boundary crossing (if any) caused by an
// experience grant.
type LevelChange struct {
	Old int64
	New int64
}

// LeveledUp returns true if the grant crossed at least one level boundary
func (c LevelChange) LeveledUp() bool {
	return c.New > c.Old
}
