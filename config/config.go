package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Message reward configuration. The reward draw is uniform on
	// [MinMessageReward, MaxMessageReward).
	MinMessageReward     int64
	MaxMessageReward     int64
	ExperiencePerMessage int64

	// ResponseTimeout bounds every interactive duel prompt
	ResponseTimeout time.Duration

	// Environment is "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	mu       sync.Mutex
)

// Get returns the global configuration instance, loading it on first use
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		loaded, err := load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
		instance = loaded
	}
	return instance
}

// SetTestConfig replaces the global configuration for tests
func SetTestConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// ResetConfig clears the global configuration so the next Get reloads it
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

// NewTestConfig returns a configuration suitable for tests
func NewTestConfig() *Config {
	return &Config{
		MinMessageReward:     5,
		MaxMessageReward:     20,
		ExperiencePerMessage: 100,
		ResponseTimeout:      60 * time.Second,
		Environment:          "test",
	}
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Reward defaults
		MinMessageReward:     5,
		MaxMessageReward:     20,
		ExperiencePerMessage: 100,

		ResponseTimeout: 60 * time.Second,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if min := os.Getenv("MIN_MESSAGE_REWARD"); min != "" {
		if parsed, err := strconv.ParseInt(min, 10, 64); err == nil {
			config.MinMessageReward = parsed
		}
	}
	if max := os.Getenv("MAX_MESSAGE_REWARD"); max != "" {
		if parsed, err := strconv.ParseInt(max, 10, 64); err == nil {
			config.MaxMessageReward = parsed
		}
	}
	if exp := os.Getenv("EXPERIENCE_PER_MESSAGE"); exp != "" {
		if parsed, err := strconv.ParseInt(exp, 10, 64); err == nil {
			config.ExperiencePerMessage = parsed
		}
	}
	if timeout := os.Getenv("RESPONSE_TIMEOUT_SECONDS"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil && parsed > 0 {
			config.ResponseTimeout = time.Duration(parsed) * time.Second
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	if config.MinMessageReward >= config.MaxMessageReward {
		return nil, fmt.Errorf("MIN_MESSAGE_REWARD (%d) must be below MAX_MESSAGE_REWARD (%d)",
			config.MinMessageReward, config.MaxMessageReward)
	}

	return config, nil
}
