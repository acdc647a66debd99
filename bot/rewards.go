package bot

import (
	"context"

	"duelbot/bot/common"
	"duelbot/domain/services"
	"duelbot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleMessageCreate rewards every qualifying guild message with vbucks and
// experience. Bot messages and DMs never qualify.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		return
	}

	ctx := context.Background()

	discordID, err := common.ParseUserID(m.Author.ID)
	if err != nil {
		log.Errorf("Error parsing author ID %s: %v", m.Author.ID, err)
		return
	}
	guildID, err := common.ParseUserID(m.GuildID)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", m.GuildID, err)
		return
	}

	ledger := services.NewLedger(guildID, b.uowFactory, b.eventBus)
	rewardService := services.NewRewardService(ledger, b.config.RewardConfig)

	result, err := rewardService.HandleMessage(ctx, discordID, m.Author.Username)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id":  discordID,
			"guild_id": guildID,
			"error":    err,
		}).Error("Failed to reward message")
	}
	if result == nil {
		return
	}

	if result.LevelChange.LeveledUp() {
		b.eventBus.Emit(ctx, events.LevelUpEvent{
			DiscordID: discordID,
			GuildID:   guildID,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			OldLevel:  result.LevelChange.Old,
			NewLevel:  result.LevelChange.New,
		})
	}
}
