package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"charity/internal/domain"
	"charity/internal/events"
)

const minSweepInterval = 10 * time.Second

// reminderWorker announces donations that have waited too long for
// confirmation. Each donation is announced once; reminded_at is stamped only
// after the event was accepted by the broker. Without a broker stamp is false
// and the same donations are logged again on every sweep.
type reminderWorker struct {
	donations domain.DonationRepository
	publisher events.Publisher
	logger    zerolog.Logger
	age       time.Duration
	batch     int
	now       func() time.Time
	stamp     bool
}

func (w *reminderWorker) run(ctx context.Context, interval time.Duration) {
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := w.sweep(ctx); err != nil {
			w.logger.Error().Err(err).Msg("sweep failed")
		} else if n > 0 {
			w.logger.Info().Int("reminded", n).Msg("sweep done")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sweep processes one batch and reports how many donations were reminded.
func (w *reminderWorker) sweep(ctx context.Context) (int, error) {
	now := w.now().UTC()
	overdue, err := w.donations.ListOverdueUnreminded(ctx, now.Add(-w.age), w.batch)
	if err != nil {
		return 0, fmt.Errorf("list overdue donations: %w", err)
	}

	reminded := 0
	for _, d := range overdue {
		if ctx.Err() != nil {
			return reminded, ctx.Err()
		}
		if err := w.publisher.Publish(ctx, events.ForDonation(events.DonationOverdue, d, now)); err != nil {
			w.logger.Warn().Err(err).Str("donation_id", d.ID).Msg("publish overdue reminder failed")
			continue
		}
		if !w.stamp {
			reminded++
			continue
		}
		if err := w.donations.MarkReminded(ctx, d.ID, now); err != nil {
			w.logger.Error().Err(err).Str("donation_id", d.ID).Msg("mark reminded failed")
			continue
		}
		reminded++
	}
	return reminded, nil
}
