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
	"charity/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	var publisher events.Publisher = events.LogPublisher{Logger: logger}
	delivered := cfg.AMQPURL != ""
	if delivered {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("worker: broker connection failed")
		}
		publisher = amqpPub
	} else {
		logger.Warn().Msg("worker: AMQP_URL not set, reminders are only logged and stay pending")
	}
	defer publisher.Close()

	w := &reminderWorker{
		donations: repo.NewDonationRepository(runner),
		publisher: publisher,
		logger:    logger,
		age:       cfg.OverdueReminderAge,
		batch:     cfg.SweepBatchSize,
		now:       time.Now,
		stamp:     delivered,
	}

	logger.Info().Dur("interval", cfg.SweepInterval).Msg("worker started")
	w.run(ctx, cfg.SweepInterval)
	logger.Info().Msg("worker stopped")
}
