package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Classification backend (hosts /api/predict and /api/ai/interpret)
	PredictAPIURL string `env:"PREDICT_API_URL,required"`

	// Chat completions
	OpenRouterKey   string `env:"OPENROUTER_API_KEY,required"`
	OpenRouterURL   string `env:"OPENROUTER_API_URL" envDefault:"https://openrouter.ai/api/v1"`
	ChatModel       string `env:"CHAT_MODEL" envDefault:"google/gemini-2.0-flash-001"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Telegram logging (admin event channel; 0 disables)
	LogTelegramChatID int64 `env:"LOG_TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
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
