package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/kira/internal/api"
	"github.com/terraincognita07/kira/internal/config"
	"github.com/terraincognita07/kira/internal/db"
	"github.com/terraincognita07/kira/internal/demo"
	"github.com/terraincognita07/kira/internal/notify"
	"github.com/terraincognita07/kira/internal/services"
	"gorm.io/gorm"
)

const (
	minSecretKeyLength = 32
	shutdownTimeout    = 10 * time.Second
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			cfg.SetupLogging()
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	if err := validateSecretKey(cfg.SecretKey); err != nil {
		return err
	}

	location := cfg.Location()
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}

	demoLoader := demo.NewLoader(newDemoFeed(cfg), cfg.DemoFetchTimeout, log.With().Str("component", "demo").Logger())

	handler, err := api.NewHandler(database, cfg.SecretKey, location, cfg.CookieSecure, demoLoader)
	if err != nil {
		return err
	}
	app := api.NewApp(handler, true)

	if cfg.TelegramEnabled() {
		digest, err := newDigest(cfg, database, location)
		if err != nil {
			log.Warn().Err(err).Msg("telegram digest disabled")
		} else {
			defer digest.Stop()
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Str("tz", location.String()).
		Msg("kira listening")
	return app.Listen(":" + cfg.Port)
}

func newDigest(cfg *config.Config, database *gorm.DB, location *time.Location) (*notify.Digest, error) {
	sender, err := notify.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		return nil, err
	}

	repositories := db.NewRepositories(database)
	digest := notify.NewDigest(
		sender,
		services.NewDayService(repositories.DailyRecords),
		services.NewAuthService(repositories.Users),
		cfg.TelegramUserEmail,
		location,
		log.With().Str("component", "digest").Logger(),
	)
	if err := digest.Start(cfg.DigestSchedule); err != nil {
		return nil, err
	}
	return digest, nil
}

// newDemoFeed prefers a remote feed when a URL is configured.
func newDemoFeed(cfg *config.Config) demo.Feed {
	if url := strings.TrimSpace(cfg.DemoURL); url != "" {
		return demo.NewHTTPFeed(url, cfg.DemoFetchTimeout)
	}
	return demo.NewDirFeed(cfg.DemoDir)
}

func validateSecretKey(secret string) error {
	value := strings.TrimSpace(secret)
	if value == "" {
		return errors.New("KIRA_SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[value]; insecure {
		return errors.New("KIRA_SECRET_KEY uses a placeholder value")
	}
	if len(value) < minSecretKeyLength {
		return errors.New("KIRA_SECRET_KEY must be at least 32 characters")
	}
	return nil
}
