package cmd

import (
	"context"
	"fmt"
	"time"

	"duelbot/bot"
	"duelbot/config"
	"duelbot/database"
	"duelbot/domain/services"
	"duelbot/events"
	"duelbot/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting duelbot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	databaseURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db)

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
		RewardConfig: services.RewardConfig{
			MinReward:     cfg.MinMessageReward,
			MaxReward:     cfg.MaxMessageReward,
			ExpPerMessage: cfg.ExperiencePerMessage,
		},
		ResponseTimeout: cfg.ResponseTimeout,
	}
	discordBot, err := bot.New(botConfig, uowFactory, eventBus)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give in-flight event handlers a moment before dropping the pool
	time.Sleep(1 * time.Second)

	log.Info("Closing database connection...")
	db.Close()

	return nil
}
