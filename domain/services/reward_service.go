package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"duelbot/domain/entities"
	"duelbot/domain/interfaces"
)

// RewardConfig tunes the passive per-message reward
type RewardConfig struct {
	// MinReward and MaxReward bound the uniform vbucks draw: [min, max)
	MinReward int64
	MaxReward int64

	// ExpPerMessage is the flat experience grant per qualifying message
	ExpPerMessage int64
}

type rewardService struct {
	ledger interfaces.Ledger
	cfg    RewardConfig
}

// NewRewardService creates the passive reward pipeline on top of a ledger
func NewRewardService(ledger interfaces.Ledger, cfg RewardConfig) interfaces.RewardService {
	return &rewardService{
		ledger: ledger,
		cfg:    cfg,
	}
}

// HandleMessage rewards one qualifying chat message: a random vbucks credit
// plus a flat experience grant. The credit and the grant fail independently;
// both are always attempted and their errors come back joined so the caller
// can report each.
func (s *rewardService) HandleMessage(ctx context.Context, discordID int64, username string) (*interfaces.RewardResult, error) {
	if _, err := s.ledger.GetOrCreate(ctx, discordID, username); err != nil {
		return nil, fmt.Errorf("failed to get or create account: %w", err)
	}

	result := &interfaces.RewardResult{}

	reward := s.cfg.MinReward + rand.Int63n(s.cfg.MaxReward-s.cfg.MinReward)
	_, creditErr := s.ledger.Credit(ctx, discordID, reward, entities.TransactionTypeMessageReward, map[string]any{
		"reward": reward,
	})
	if creditErr != nil {
		creditErr = fmt.Errorf("failed to credit message reward: %w", creditErr)
	} else {
		result.Credited = reward
	}

	change, expErr := s.ledger.GrantExperience(ctx, discordID, s.cfg.ExpPerMessage)
	if expErr != nil {
		expErr = fmt.Errorf("failed to grant message experience: %w", expErr)
	} else {
		result.LevelChange = change
	}

	return result, errors.Join(creditErr, expErr)
}
