package report

import (
	"time"

	"charity/internal/domain"
)

// IsOverdue reports whether d is unconfirmed and at least OverdueAfter old at
// now. It is evaluated on every read and never persisted.
func IsOverdue(d domain.Donation, now time.Time) bool {
	return !d.IsConfirmed && now.Sub(d.CreatedAt) >= OverdueAfter
}

// StatusOf derives the display status of a donation at now.
func StatusOf(d domain.Donation, now time.Time) domain.DonationStatus {
	switch {
	case d.IsConfirmed:
		return domain.DonationConfirmed
	case IsOverdue(d, now):
		return domain.DonationOverdue
	default:
		return domain.DonationPending
	}
}

// CountOverdue counts overdue donations at now.
func CountOverdue(donations []domain.Donation, now time.Time) int {
	n := 0
	for _, d := range donations {
		if IsOverdue(d, now) {
			n++
		}
	}
	return n
}
