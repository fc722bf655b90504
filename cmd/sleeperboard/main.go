package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/sleeperboard/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperboard/internal/api/sleeper"
	"github.com/omarshaarawi/sleeperboard/internal/bot"
	"github.com/omarshaarawi/sleeperboard/internal/config"
	"github.com/omarshaarawi/sleeperboard/internal/repository/memory"
	"github.com/omarshaarawi/sleeperboard/internal/scheduler"
	"github.com/omarshaarawi/sleeperboard/internal/service"
	"github.com/omarshaarawi/sleeperboard/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sleeperClient := sleeper.NewClient(cfg.Sleeper)
	sleeperAPI := sleeper.NewAPI(sleeperClient)
	fantasyAPI := fantasy.NewAPI(sleeperAPI, cfg.Sleeper)

	repo := memory.NewRepository()
	fantasyService := service.NewFantasyService(fantasyAPI, repo)

	var sendMessage func(string) error
	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService)
		if err != nil {
			return err
		}
		if cfg.TelegramBot.ChatID != 0 {
			sendMessage = telegramBot.SendMessage
		}

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	sched, err := scheduler.NewScheduler(ctx, cfg.Schedule, fantasyService, sendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	handler, err := web.New(web.Config{
		Dashboard:      fantasyService,
		Relay:          sleeperAPI,
		AllowedOrigins: cfg.HTTP.Origins(),
		BaseContext:    ctx,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "addr", cfg.HTTP.Addr, "league_id", cfg.Sleeper.LeagueID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
