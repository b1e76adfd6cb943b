package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	BotToken       string `env:"BOT_TOKEN,required"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	LocalStorePath string `env:"LOCAL_STORE_PATH" envDefault:"astrocalc_local.db"`

	// n8n webhooks
	ChatWebhookURL       string `env:"N8N_CHAT_WEBHOOK_URL,required"`
	BirthChartWebhookURL string `env:"N8N_BIRTH_CHART_WEBHOOK_URL,required"`
	WebhookToken         string `env:"N8N_WEBHOOK_TOKEN"`
	WebhookSource        string `env:"WEBHOOK_SOURCE" envDefault:"astrocalc-bot"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Server
	Port        int  `env:"PORT" envDefault:"3000"`
	HTTPEnabled bool `env:"HTTP_ENABLED" envDefault:"true"`

	// Bot behavior
	DropPendingUpdates bool   `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"12"`
	CleanupSchedule    string `env:"CLEANUP_SCHEDULE" envDefault:"@every 6h"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram logging
	LogTelegramChatID    int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError        int   `env:"LOG_TOPIC_ERROR"`
	LogTopicRegistration int   `env:"LOG_TOPIC_REGISTRATION"`
	LogTopicBirthChart   int   `env:"LOG_TOPIC_BIRTH_CHART"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) AdminIDsString() string {
	parts := make([]string, len(c.AdminIDs))
	for i, id := range c.AdminIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
