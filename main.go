// Package main is the entry point for the expense processing service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/yelinaung/expense-service/internal/api"
	"gitlab.com/yelinaung/expense-service/internal/config"
	"gitlab.com/yelinaung/expense-service/internal/database"
	"gitlab.com/yelinaung/expense-service/internal/gemini"
	"gitlab.com/yelinaung/expense-service/internal/logger"
	"gitlab.com/yelinaung/expense-service/internal/pipeline"
	"gitlab.com/yelinaung/expense-service/internal/repository"
	"gitlab.com/yelinaung/expense-service/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("expense-service %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	logger.InitHashSalt()

	shutdownTracing, err := telemetry.Init(ctx, api.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	extractor := gemini.NewExtractor(geminiClient, cfg.GeminiModel, cfg.ExtractTimeout)
	store := pipeline.NewStore(
		repository.NewUserRepository(pool),
		repository.NewExpenseRepository(pool),
	)
	processor := pipeline.NewProcessor(extractor, store)
	server := api.NewServer(processor, store)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		if err := server.Shutdown(); err != nil {
			logger.Log.Error().Err(err).Msg("Server shutdown failed")
		}
		cancel()
	}()

	if err := server.Listen(cfg.ListenAddr); err != nil {
		logger.Log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
