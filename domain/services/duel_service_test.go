package services

import (
	"context"
	"errors"
	"testing"

	"duelbot/domain/entities"
	"duelbot/domain/interfaces"
	"duelbot/domain/testhelpers"
	"duelbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type duelFixture struct {
	ledger     *testhelpers.MockLedger
	interactor *testhelpers.MockDuelInteractor
	emitter    *testhelpers.MockEventEmitter
	service    interfaces.DuelService
}

func newDuelFixture(t *testing.T) *duelFixture {
	t.Helper()

	f := &duelFixture{
		ledger:     &testhelpers.MockLedger{},
		interactor: &testhelpers.MockDuelInteractor{},
		emitter:    &testhelpers.MockEventEmitter{},
	}
	f.service = NewDuelService(f.ledger, f.interactor, f.emitter)
	return f
}

func newTestSession(stake int64) *entities.DuelSession {
	return entities.NewDuelSession(testGuildID, "channel-1",
		entities.Participant{DiscordID: 100, Username: "alice"},
		entities.Participant{DiscordID: 200, Username: "bob"},
		stake)
}

// expectFundedAccounts stubs both participants with balances covering the stake
func (f *duelFixture) expectFundedAccounts(ctx context.Context, stake int64) {
	f.ledger.On("GetOrCreate", ctx, int64(100), "alice").
		Return(&entities.Account{DiscordID: 100, Balance: stake * 2}, nil)
	f.ledger.On("GetOrCreate", ctx, int64(200), "bob").
		Return(&entities.Account{DiscordID: 200, Balance: stake * 2}, nil)
}

func TestDuelService_Run_RejectsSelfChallenge(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	session := entities.NewDuelSession(testGuildID, "channel-1",
		entities.Participant{DiscordID: 100, Username: "alice"},
		entities.Participant{DiscordID: 100, Username: "alice"},
		50)

	err := f.service.Run(ctx, session)

	assert.ErrorIs(t, err, entities.ErrInvalidOpponent)
	assert.Equal(t, entities.DuelPhaseCancelled, session.Phase)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDuelService_Run_RejectsBotOpponent(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	session := entities.NewDuelSession(testGuildID, "channel-1",
		entities.Participant{DiscordID: 100, Username: "alice"},
		entities.Participant{DiscordID: 200, Username: "beep", IsBot: true},
		50)

	err := f.service.Run(ctx, session)

	assert.ErrorIs(t, err, entities.ErrInvalidOpponent)
	assert.Equal(t, entities.DuelPhaseCancelled, session.Phase)
}

func TestDuelService_Run_RejectsNonPositiveStake(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	for _, stake := range []int64{0, -5} {
		session := newTestSession(stake)
		err := f.service.Run(ctx, session)
		require.Error(t, err)
		assert.Equal(t, entities.DuelPhaseCancelled, session.Phase)
	}
}

func TestDuelService_Run_ChallengerCannotAffordStake(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	f.ledger.On("GetOrCreate", ctx, int64(100), "alice").
		Return(&entities.Account{DiscordID: 100, Balance: 10}, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	var ife *entities.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, int64(100), ife.DiscordID)
	assert.Equal(t, entities.DuelPhaseCancelled, session.Phase)
	f.interactor.AssertNotCalled(t, "PromptAccept", mock.Anything, mock.Anything)
}

func TestDuelService_Run_OpponentCannotAffordStake(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	f.ledger.On("GetOrCreate", ctx, int64(100), "alice").
		Return(&entities.Account{DiscordID: 100, Balance: 100}, nil)
	f.ledger.On("GetOrCreate", ctx, int64(200), "bob").
		Return(&entities.Account{DiscordID: 200, Balance: 10}, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	var ife *entities.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, int64(200), ife.DiscordID)
}

func TestDuelService_Run_Declined(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseDeclined, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.DuelPhaseDeclined, session.Phase)
	f.interactor.AssertNotCalled(t, "PromptMove", mock.Anything, mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDuelService_Run_AcceptanceTimeout(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseTimedOut, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.DuelPhaseTimedOut, session.Phase)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDuelService_Run_MoveTimeout(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseAccepted, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 100
	})).Return(entities.MoveRock, true, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 200
	})).Return(entities.Move(""), false, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.DuelPhaseTimedOut, session.Phase)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDuelService_Run_ChallengerWins(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseAccepted, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 100
	})).Return(entities.MoveRock, true, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 200
	})).Return(entities.MoveScissors, true, nil)

	// Loser pays winner: bob -> alice
	f.ledger.On("Transfer", ctx, int64(200), int64(100), int64(50), entities.TransactionTypeDuelLoss, entities.TransactionTypeDuelWin, mock.Anything).Return(nil)
	f.emitter.On("Emit", ctx, mock.MatchedBy(func(e events.Event) bool {
		resolved, ok := e.(events.DuelResolvedEvent)
		return ok && resolved.WinnerID == 100 && resolved.LoserID == 200 && resolved.Stake == 50
	})).Return()

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.DuelPhaseResolved, session.Phase)
	assert.Equal(t, entities.OutcomeWin, session.Outcome)
	f.ledger.AssertExpectations(t)
	f.emitter.AssertExpectations(t)
}

func TestDuelService_Run_OpponentWins(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseAccepted, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 100
	})).Return(entities.MovePaper, true, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 200
	})).Return(entities.MoveScissors, true, nil)

	f.ledger.On("Transfer", ctx, int64(100), int64(200), int64(50), entities.TransactionTypeDuelLoss, entities.TransactionTypeDuelWin, mock.Anything).Return(nil)
	f.emitter.On("Emit", ctx, mock.Anything).Return()

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.OutcomeLoss, session.Outcome)
	f.ledger.AssertExpectations(t)
}

func TestDuelService_Run_TieMovesNoFunds(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseAccepted, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.Anything).Return(entities.MoveRock, true, nil)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, entities.DuelPhaseResolved, session.Phase)
	assert.Equal(t, entities.OutcomeTie, session.Outcome)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestDuelService_Run_SettlementFailure(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).Return(interfaces.AcceptResponseAccepted, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 100
	})).Return(entities.MoveRock, true, nil)
	f.interactor.On("PromptMove", ctx, mock.Anything, mock.MatchedBy(func(p entities.Participant) bool {
		return p.DiscordID == 200
	})).Return(entities.MoveScissors, true, nil)

	settlementErr := errors.New("connection reset")
	f.ledger.On("Transfer", ctx, int64(200), int64(100), int64(50), entities.TransactionTypeDuelLoss, entities.TransactionTypeDuelWin, mock.Anything).Return(settlementErr)

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.Error(t, err)
	assert.ErrorIs(t, err, settlementErr)
	f.emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestDuelService_Run_RejectsReusedSession(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)

	session := newTestSession(50)
	session.Phase = entities.DuelPhaseResolved

	err := f.service.Run(ctx, session)

	require.Error(t, err)
}

func TestDuelService_Run_PromptErrorCancels(t *testing.T) {
	ctx := context.Background()
	f := newDuelFixture(t)
	f.expectFundedAccounts(ctx, 50)

	f.interactor.On("PromptAccept", ctx, mock.Anything).
		Return(interfaces.AcceptResponseTimedOut, errors.New("discord api error"))

	session := newTestSession(50)
	err := f.service.Run(ctx, session)

	require.Error(t, err)
	assert.Equal(t, entities.DuelPhaseCancelled, session.Phase)
	f.ledger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
