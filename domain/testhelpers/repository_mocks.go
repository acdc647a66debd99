package testhelpers

import (
	"context"
	"time"

	"duelbot/domain/entities"
	"duelbot/domain/interfaces"
	"duelbot/events"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, discordID int64, amount int64) (int64, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateProgress(ctx context.Context, discordID int64, experience, level int64) error {
	args := m.Called(ctx, discordID, experience, level)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

func (m *MockBalanceHistoryRepository) GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories rather than mocked per-call.
type MockUnitOfWork struct {
	mock.Mock
	accountRepo interfaces.AccountRepository
	historyRepo interfaces.BalanceHistoryRepository
}

func (m *MockUnitOfWork) SetRepositories(accountRepo interfaces.AccountRepository, historyRepo interfaces.BalanceHistoryRepository) {
	m.accountRepo = accountRepo
	m.historyRepo = historyRepo
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() interfaces.AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	return m.historyRepo
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	args := m.Called(guildID)
	return args.Get(0).(interfaces.UnitOfWork)
}

// MockLedger is a mock implementation of the Ledger service
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetOrCreate(ctx context.Context, discordID int64, username string) (*entities.Account, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, discordID, amount, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Debit(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, discordID, amount, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedger) Transfer(ctx context.Context, fromDiscordID, toDiscordID int64, amount int64, fromType, toType entities.TransactionType, metadata map[string]any) error {
	args := m.Called(ctx, fromDiscordID, toDiscordID, amount, fromType, toType, metadata)
	return args.Error(0)
}

func (m *MockLedger) GrantExperience(ctx context.Context, discordID int64, amount int64) (entities.LevelChange, error) {
	args := m.Called(ctx, discordID, amount)
	return args.Get(0).(entities.LevelChange), args.Error(1)
}

// MockDuelInteractor is a mock implementation of DuelInteractor
type MockDuelInteractor struct {
	mock.Mock
}

func (m *MockDuelInteractor) PromptAccept(ctx context.Context, session *entities.DuelSession) (interfaces.AcceptResponse, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(interfaces.AcceptResponse), args.Error(1)
}

func (m *MockDuelInteractor) PromptMove(ctx context.Context, session *entities.DuelSession, player entities.Participant) (entities.Move, bool, error) {
	args := m.Called(ctx, session, player)
	return args.Get(0).(entities.Move), args.Bool(1), args.Error(2)
}

// MockEventEmitter is a mock implementation of EventEmitter
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
