// Package events publishes donation lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"charity/internal/domain"
)

type Type string

const (
	DonationCreated   Type = "donation.created"
	DonationConfirmed Type = "donation.confirmed"
	DonationOverdue   Type = "donation.overdue"
)

// Event is the JSON body delivered to subscribers.
type Event struct {
	Type       Type      `json:"type"`
	DonationID string    `json:"donationId"`
	ActivityID *string   `json:"activityId,omitempty"`
	Amount     int64     `json:"amount"`
	DonorName  string    `json:"donorName"`
	CreatedAt  time.Time `json:"createdAt"`
	OccurredAt time.Time `json:"occurredAt"`
}

func ForDonation(t Type, d domain.Donation, at time.Time) Event {
	return Event{
		Type:       t,
		DonationID: d.ID,
		ActivityID: d.ActivityID,
		Amount:     d.Amount,
		DonorName:  d.DisplayName(),
		CreatedAt:  d.CreatedAt,
		OccurredAt: at,
	}
}

func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events to the notification channel.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when AMQP_URL is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

// LogPublisher writes events to the log instead of a broker. Nothing is
// delivered to subscribers.
type LogPublisher struct {
	Logger zerolog.Logger
}

func (p LogPublisher) Publish(_ context.Context, e Event) error {
	p.Logger.Info().
		Str("event", string(e.Type)).
		Str("donation_id", e.DonationID).
		Int64("amount", e.Amount).
		Time("created_at", e.CreatedAt).
		Msg("event not delivered, no broker configured")
	return nil
}

func (LogPublisher) Close() error { return nil }
