package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Black1ssl/menfess-bot/internal/bot"
	"github.com/Black1ssl/menfess-bot/internal/config"
	"github.com/Black1ssl/menfess-bot/internal/database"
	"github.com/Black1ssl/menfess-bot/internal/domain"
	"github.com/Black1ssl/menfess-bot/internal/download"
	"github.com/Black1ssl/menfess-bot/internal/gateway"
	"github.com/Black1ssl/menfess-bot/internal/greet"
	"github.com/Black1ssl/menfess-bot/internal/httpserver"
	"github.com/Black1ssl/menfess-bot/internal/logging"
	"github.com/Black1ssl/menfess-bot/internal/moderation"
	"github.com/Black1ssl/menfess-bot/internal/ranking"
	"github.com/Black1ssl/menfess-bot/internal/relay"
	"github.com/Black1ssl/menfess-bot/internal/telegram"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *database.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	return db
}

func setupTelegram(cfg *config.Config) *telegram.Client {
	client, err := telegram.NewClient(cfg.BotToken, cfg.APITimeout)
	if err != nil {
		slog.Error("Failed to create Telegram client", "error", err)
		os.Exit(1)
	}
	return client
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Bot starting", "http_port", cfg.HTTPPort)

	db := setupDB(cfg)
	defer func() { _ = db.Close() }()

	client := setupTelegram(cfg)

	gw := gateway.New(client, cfg.APIConcurrency, cfg.SafeSleep, clock)

	quotaRepo := database.NewQuotaRepo(db, clock)
	activityRepo := database.NewActivityRepo(db, clock)
	seenRepo := database.NewSeenRepo(db)

	modEngine := moderation.NewEngine(gw, activityRepo, domain.UserID(cfg.OwnerID), clock)
	relaySvc := relay.NewService(gw, quotaRepo, relay.Targets{
		Channel:     domain.ChatID(cfg.TargetChannelID),
		PublicGroup: domain.ChatID(cfg.PublicGroupID),
		LogChannel:  domain.ChatID(cfg.LogChannelID),
	})
	downloadSvc := download.NewService(gw, quotaRepo, download.NewYtDlp(cfg.YtDlpPath), cfg.MaxFileMB)
	reporter := ranking.NewReporter(gw, activityRepo)
	greeter := greet.NewGreeter(gw, seenRepo)

	flood := bot.NewFloodGuard(cfg.FloodRate, cfg.FloodBurst)
	router := bot.NewRouter(bot.Handlers{
		Download:       downloadSvc.HandleDownloadCommand,
		Ban:            modEngine.HandleBanCommand,
		Kick:           modEngine.HandleKickCommand,
		TopChat:        reporter.HandleTopChatCommand,
		PrivateMessage: relaySvc.HandlePrivateMessage,
		GroupText:      modEngine.HandleGroupText,
		Join:           greeter.HandleJoin,
	}, flood)

	srv := httpserver.New(cfg.HTTPPort, db)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")
		client.StopUpdates()
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}()

	slog.Info("Polling for updates")
	router.Run(ctx, client.Updates())

	slog.Info("Bot stopped")
}
