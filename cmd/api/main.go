package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"charity/internal/adapter/repo"
	"charity/internal/events"
	"charity/internal/http/handlers"
	httpapi "charity/internal/http/httpapi"
	"charity/internal/infra"
	"charity/internal/infra/geoip"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.AutoMigrate {
		if err := infra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect message broker")
		}
		publisher = amqpPub
	}
	defer publisher.Close()

	app := &handlers.App{
		Activities:     repo.NewActivityRepository(runner),
		Donations:      repo.NewDonationRepository(runner),
		Expenses:       repo.NewExpenseRepository(runner),
		PaymentMethods: repo.NewPaymentMethodRepository(runner),
		Users:          repo.NewUserRepository(runner),
		Team:           repo.NewTeamRepository(runner),
		Content:        repo.NewContentRepository(runner),
		Settings:       repo.NewSettingsRepository(runner),
		Events:         publisher,
		DB:             runner,
		Logger:         logger,
		Location:       cfg.Location(),
		Now:            time.Now,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
