package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fbarbosa/granavoz/internal/ai"
	"github.com/fbarbosa/granavoz/internal/bot"
	"github.com/fbarbosa/granavoz/internal/bot/handlers"
	"github.com/fbarbosa/granavoz/internal/config"
	"github.com/fbarbosa/granavoz/internal/database"
	"github.com/fbarbosa/granavoz/internal/fetch"
	"github.com/fbarbosa/granavoz/internal/logger"
	"github.com/fbarbosa/granavoz/internal/repository"
	"github.com/fbarbosa/granavoz/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.LogLevel)
	logg.Info().Str("environment", cfg.Environment).Msg("starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DB.URI())
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	logg.Info().Msg("connected to database")

	if err := db.Migrate(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to run migrations")
	}
	logg.Info().Msg("database migrations completed")

	aiClient := ai.New(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.TranscriptionModel, cfg.AI.ExtractionModel)
	fetcher := fetch.NewHTTPFetcher(nil)

	transactionRepo := repository.NewTransactionRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	transcriptionRepo := repository.NewTranscriptionRepository(db)
	extractionLogRepo := repository.NewExtractionLogRepository(db)

	usecases := &handlers.UseCases{
		Transcribe: usecase.NewTranscribeAudio(fetcher, aiClient, transcriptionRepo, logg),
		Extract:    usecase.NewExtractFinancialData(aiClient, extractionLogRepo, logg),
		Save:       usecase.NewSaveFinancialData(transactionRepo, accountRepo, goalRepo, cfg.ExtractionMinConfidence, logg),
		Summary:    usecase.NewFinancialSummary(transactionRepo, accountRepo, goalRepo, logg),
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to create Telegram API client")
	}

	b := bot.New(api, handlers.New(api, usecases, logg), logg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logg.Info().Msg("shutting down")
		cancel()
	}()

	logg.Info().Msg("starting bot")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		logg.Fatal().Err(err).Msg("bot error")
	}
}
