package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/kira.db", cfg.DBPath)
	assert.Equal(t, "data/monthly", cfg.DemoDir)
	assert.Equal(t, 10*time.Second, cfg.DemoFetchTimeout)
	assert.Equal(t, "0 9 * * 1", cfg.DigestSchedule)
	assert.Equal(t, "change_me_in_production", cfg.SecretKey)
	assert.False(t, cfg.TelegramEnabled())
}

func TestNewReadsPrefixedEnvironment(t *testing.T) {
	t.Setenv("KIRA_PORT", "9090")
	t.Setenv("KIRA_COOKIE_SECURE", "true")
	t.Setenv("KIRA_DEMO_FETCH_TIMEOUT", "3s")
	t.Setenv("KIRA_TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("KIRA_TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("KIRA_TELEGRAM_USER_EMAIL", "kira@example.com")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 3*time.Second, cfg.DemoFetchTimeout)
	assert.Equal(t, int64(-1001), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramEnabled())
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Setenv("KIRA_DEMO_FETCH_TIMEOUT", "soon")
	_, err := New()
	assert.Error(t, err)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{TZ: "Mars/Olympus"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.TZ = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(&buffer, "warn", "json")

	logger.Info().Msg("hidden")
	logger.Warn().Str("month", "2026-01").Msg("shown")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), `"month":"2026-01"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	assert.Equal(t, zerolog.InfoLevel, NewLogger(&buffer, "loud", "console").GetLevel())
}
