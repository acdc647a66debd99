package entities

import (
	"github.com/google/uuid"
)

// DuelPhase tracks where a duel session is in its lifecycle
type DuelPhase string

const (
	DuelPhaseInit               DuelPhase = "init"
	DuelPhaseAwaitingAcceptance DuelPhase = "awaiting_acceptance"
	DuelPhaseAwaitingMoves      DuelPhase = "awaiting_moves"
	DuelPhaseResolved           DuelPhase = "resolved"
	DuelPhaseDeclined           DuelPhase = "declined"
	DuelPhaseTimedOut           DuelPhase = "timed_out"
	DuelPhaseCancelled          DuelPhase = "cancelled"
)

// IsTerminal returns true once the session can make no further transitions
func (p DuelPhase) IsTerminal() bool {
	switch p {
	case DuelPhaseResolved, DuelPhaseDeclined, DuelPhaseTimedOut, DuelPhaseCancelled:
		return true
	}
	return false
}

// Participant identifies one side of a duel
type Participant struct {
	DiscordID int64
	Username  string
	IsBot     bool
}

// DuelSession is the ephemeral state of one rock-paper-scissors wager. It is
// owned by the command invocation that created it and discarded once a
// terminal phase is reached; nothing about it is persisted.
type DuelSession struct {
	ID         uuid.UUID
	GuildID    int64
	ChannelID  string
	Challenger Participant
	Opponent   Participant
	Stake      int64
	Phase      DuelPhase
	Moves      map[int64]Move
	Outcome    Outcome
}

// NewDuelSession creates a session in the Init phase
func NewDuelSession(guildID int64, channelID string, challenger, opponent Participant, stake int64) *DuelSession {
	return &DuelSession{
		ID:         uuid.New(),
		GuildID:    guildID,
		ChannelID:  channelID,
		Challenger: challenger,
		Opponent:   opponent,
		Stake:      stake,
		Phase:      DuelPhaseInit,
		Moves:      make(map[int64]Move, 2),
	}
}

// IsParticipant checks whether the given user is one of the two players
func (s *DuelSession) IsParticipant(discordID int64) bool {
	return s.Challenger.DiscordID == discordID || s.Opponent.DiscordID == discordID
}

// MoveOf returns the recorded move for a participant
func (s *DuelSession) MoveOf(discordID int64) (Move, bool) {
	m, ok := s.Moves[discordID]
	return m, ok
}
