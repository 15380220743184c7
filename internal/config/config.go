// Package config loads and validates process configuration from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every tunable the process reads at startup.
type Config struct {
	BotToken string `env:"BOT_TOKEN"`
	OwnerID  int64  `env:"OWNER_ID"`

	// Destination chats for the relay flow.
	TargetChannelID int64 `env:"TARGET_CHANNEL_ID" envDefault:"-1001234567890"`
	PublicGroupID   int64 `env:"GROUP_PUBLIK" envDefault:"-1001234567891"`
	LogChannelID    int64 `env:"CHANNEL_LOG_ID" envDefault:"-1001234567892"`

	MaxFileMB int `env:"MAX_FILE_MB" envDefault:"50"`

	// Outbound safety tuning.
	APIConcurrency int           `env:"API_CONCURRENCY" envDefault:"5"`
	SafeSleep      time.Duration `env:"SAFE_SLEEP" envDefault:"250ms"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"20s"`

	// Inbound flood guard (updates per second per user, with burst).
	FloodRate  float64 `env:"FLOOD_RATE" envDefault:"1"`
	FloodBurst int     `env:"FLOOD_BURST" envDefault:"5"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"database.db"`
	YtDlpPath    string `env:"YTDLP_PATH" envDefault:"yt-dlp"`

	HTTPPort  string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment and validates required settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.OwnerID == 0 {
		return nil, fmt.Errorf("OWNER_ID is required")
	}
	if cfg.APIConcurrency < 1 {
		return nil, fmt.Errorf("API_CONCURRENCY must be at least 1, got %d", cfg.APIConcurrency)
	}
	if cfg.SafeSleep < 0 {
		return nil, fmt.Errorf("SAFE_SLEEP must not be negative")
	}
	if cfg.MaxFileMB < 1 {
		return nil, fmt.Errorf("MAX_FILE_MB must be at least 1, got %d", cfg.MaxFileMB)
	}

	return cfg, nil
}
