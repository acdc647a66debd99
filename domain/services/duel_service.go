package services

import (
	"context"
	"fmt"

	"duelbot/domain/entities"
	"duelbot/domain/interfaces"
	"duelbot/events"

	log "github.com/sirupsen/logrus"
)

type duelService struct {
	ledger     interfaces.Ledger
	interactor interfaces.DuelInteractor
	emitter    interfaces.EventEmitter
}

// NewDuelService creates the wagered rock-paper-scissors engine. All human
// input flows through the interactor; all money flows through the ledger,
// and only during resolution.
func NewDuelService(ledger interfaces.Ledger, interactor interfaces.DuelInteractor, emitter interfaces.EventEmitter) interfaces.DuelService {
	return &duelService{
		ledger:     ledger,
		interactor: interactor,
		emitter:    emitter,
	}
}

// Run drives one session from Init to a terminal phase. The stake is never
// at risk before the final transfer: every exit prior to Resolved leaves the
// ledger untouched, so an abandoned session needs no cleanup.
func (s *duelService) Run(ctx context.Context, session *entities.DuelSession) error {
	if session.Phase != entities.DuelPhaseInit {
		return fmt.Errorf("duel session %s already started (phase %s)", session.ID, session.Phase)
	}

	if err := s.validate(ctx, session); err != nil {
		session.Phase = entities.DuelPhaseCancelled
		return err
	}

	session.Phase = entities.DuelPhaseAwaitingAcceptance
	response, err := s.interactor.PromptAccept(ctx, session)
	if err != nil {
		session.Phase = entities.DuelPhaseCancelled
		return fmt.Errorf("failed to collect challenge response: %w", err)
	}

	switch response {
	case interfaces.AcceptResponseDeclined:
		session.Phase = entities.DuelPhaseDeclined
		return nil
	case interfaces.AcceptResponseTimedOut:
		session.Phase = entities.DuelPhaseTimedOut
		return nil
	}

	// Moves are collected strictly in order so neither player's choice is
	// revealed while the other prompt is still open.
	session.Phase = entities.DuelPhaseAwaitingMoves
	for _, player := range []entities.Participant{session.Challenger, session.Opponent} {
		move, ok, err := s.interactor.PromptMove(ctx, session, player)
		if err != nil {
			session.Phase = entities.DuelPhaseCancelled
			return fmt.Errorf("failed to collect move from %s: %w", player.Username, err)
		}
		if !ok {
			session.Phase = entities.DuelPhaseTimedOut
			return nil
		}
		session.Moves[player.DiscordID] = move
	}

	return s.resolve(ctx, session)
}

// validate runs the Init phase checks: a real human opponent and both
// balances covering the stake. Nothing is mutated here.
func (s *duelService) validate(ctx context.Context, session *entities.DuelSession) error {
	if session.Stake <= 0 {
		return fmt.Errorf("stake must be positive, got %d", session.Stake)
	}
	if session.Opponent.DiscordID == session.Challenger.DiscordID {
		return fmt.Errorf("%w: you cannot challenge yourself", entities.ErrInvalidOpponent)
	}
	if session.Opponent.IsBot {
		return fmt.Errorf("%w: bots do not gamble", entities.ErrInvalidOpponent)
	}

	challenger, err := s.ledger.GetOrCreate(ctx, session.Challenger.DiscordID, session.Challenger.Username)
	if err != nil {
		return fmt.Errorf("failed to get challenger account: %w", err)
	}
	if !challenger.CanAfford(session.Stake) {
		return &entities.InsufficientFundsError{
			DiscordID: session.Challenger.DiscordID,
			Have:      challenger.Balance,
			Need:      session.Stake,
		}
	}

	opponent, err := s.ledger.GetOrCreate(ctx, session.Opponent.DiscordID, session.Opponent.Username)
	if err != nil {
		return fmt.Errorf("failed to get opponent account: %w", err)
	}
	if !opponent.CanAfford(session.Stake) {
		return &entities.InsufficientFundsError{
			DiscordID: session.Opponent.DiscordID,
			Have:      opponent.Balance,
			Need:      session.Stake,
		}
	}

	return nil
}

// resolve looks up the outcome and settles the stake with a single transfer.
// A settlement failure is reported to the caller verbatim, never retried.
func (s *duelService) resolve(ctx context.Context, session *entities.DuelSession) error {
	challengerMove, _ := session.MoveOf(session.Challenger.DiscordID)
	opponentMove, _ := session.MoveOf(session.Opponent.DiscordID)

	session.Outcome = entities.Resolve(challengerMove, opponentMove)
	session.Phase = entities.DuelPhaseResolved

	var winner, loser entities.Participant
	switch session.Outcome {
	case entities.OutcomeWin:
		winner, loser = session.Challenger, session.Opponent
	case entities.OutcomeLoss:
		winner, loser = session.Opponent, session.Challenger
	case entities.OutcomeTie:
		log.WithFields(log.Fields{
			"duel":  session.ID,
			"stake": session.Stake,
		}).Info("Duel tied, no funds moved")
		return nil
	}

	metadata := map[string]any{
		"duel_id":         session.ID.String(),
		"stake":           session.Stake,
		"challenger_move": string(challengerMove),
		"opponent_move":   string(opponentMove),
	}
	if err := s.ledger.Transfer(ctx, loser.DiscordID, winner.DiscordID, session.Stake,
		entities.TransactionTypeDuelLoss, entities.TransactionTypeDuelWin, metadata); err != nil {
		return fmt.Errorf("failed to settle duel %s: %w", session.ID, err)
	}

	s.emitter.Emit(ctx, events.DuelResolvedEvent{
		GuildID:  session.GuildID,
		WinnerID: winner.DiscordID,
		LoserID:  loser.DiscordID,
		Stake:    session.Stake,
		Outcome:  session.Outcome,
	})

	return nil
}
