// Package config loads service settings from KIRA_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const envPrefix = "KIRA"

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBPath       string `envconfig:"DB_PATH" default:"data/kira.db"`
	SecretKey    string `envconfig:"SECRET_KEY" default:"change_me_in_production"`
	TZ           string `envconfig:"TZ" default:"UTC"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`

	DemoDir          string        `envconfig:"DEMO_DIR" default:"data/monthly"`
	DemoURL          string        `envconfig:"DEMO_URL" default:""`
	DemoFetchTimeout time.Duration `envconfig:"DEMO_FETCH_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
	TelegramChatID    int64  `envconfig:"TELEGRAM_CHAT_ID" default:"0"`
	TelegramUserEmail string `envconfig:"TELEGRAM_USER_EMAIL" default:""`
	DigestSchedule    string `envconfig:"DIGEST_SCHEDULE" default:"0 9 * * 1"`
}

// New reads the environment and validates the result.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return nil, fmt.Errorf("%s_PORT must not be empty", envPrefix)
	}
	if cfg.DemoFetchTimeout <= 0 {
		return nil, fmt.Errorf("%s_DEMO_FETCH_TIMEOUT must be positive", envPrefix)
	}
	return &cfg, nil
}

// Location resolves TZ, falling back to UTC for unknown zones.
func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		log.Warn().Str("tz", cfg.TZ).Msg("invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}

// TelegramEnabled reports whether the digest notifier has everything it needs.
func (cfg *Config) TelegramEnabled() bool {
	return cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 && cfg.TelegramUserEmail != ""
}

// SetupLogging configures the global zerolog logger.
func (cfg *Config) SetupLogging() {
	log.Logger = NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

func NewLogger(out io.Writer, level string, format string) zerolog.Logger {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.InfoLevel
	}

	writer := out
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(writer).Level(parsedLevel).With().Timestamp().Logger()
}
