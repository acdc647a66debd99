package bot

import (
	"context"

	"duelbot/bot/common"
	"duelbot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// subscribeEvents wires the bot's announcements onto the event bus
func (b *Bot) subscribeEvents() {
	b.eventBus.Subscribe(events.EventTypeLevelUp, b.onLevelUp)
	b.eventBus.Subscribe(events.EventTypeDuelResolved, b.onDuelResolved)
}

// onLevelUp congratulates the user as a reply to the message that pushed them
// over the boundary
func (b *Bot) onLevelUp(ctx context.Context, event events.Event) {
	levelUp, ok := event.(events.LevelUpEvent)
	if !ok {
		return
	}

	message := common.FormatLevelUp(levelUp.DiscordID, levelUp.NewLevel)
	_, err := b.session.ChannelMessageSendReply(levelUp.ChannelID, message, &discordgo.MessageReference{
		MessageID: levelUp.MessageID,
		ChannelID: levelUp.ChannelID,
	})
	if err != nil {
		log.Errorf("Failed to send level-up message for user %d: %v", levelUp.DiscordID, err)
	}
}

func (b *Bot) onDuelResolved(ctx context.Context, event events.Event) {
	resolved, ok := event.(events.DuelResolvedEvent)
	if !ok {
		return
	}

	log.WithFields(log.Fields{
		"guild_id": resolved.GuildID,
		"winner":   resolved.WinnerID,
		"loser":    resolved.LoserID,
		"stake":    resolved.Stake,
	}).Info("Duel resolved")
}
