package bot

import (
	"fmt"
	"time"

	"duelbot/bot/features/balance"
	"duelbot/bot/features/duel"
	"duelbot/domain/interfaces"
	"duelbot/domain/services"
	"duelbot/events"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string
	RewardConfig    services.RewardConfig
	ResponseTimeout time.Duration
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	eventBus   *events.Bus

	// Feature modules
	balance *balance.Feature
	duel    *duel.Feature
}

// New creates a new bot instance with all features and opens the connection
func New(config Config, uowFactory interfaces.UnitOfWorkFactory, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}

	bot.balance = balance.New(uowFactory, eventBus)
	bot.duel = duel.NewFeature(dg, uowFactory, eventBus, config.ResponseTimeout)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleMessageCreate)

	bot.subscribeEvents()

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balance.HandleCommand(s, i)
	case "rps":
		b.duel.HandleCommand(s, i)
	}
}
