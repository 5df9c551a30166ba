package events

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"charity/internal/domain"
)

func TestForDonationMasksAnonymousDonor(t *testing.T) {
	name := "Nguyễn Văn A"
	activity := "act-1"
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	d := domain.Donation{ID: "d-1", ActivityID: &activity, Name: &name, Amount: 200000, IsAnonymous: true, CreatedAt: created}

	at := created.Add(25 * time.Hour)
	e := ForDonation(DonationOverdue, d, at)
	if e.DonorName == name {
		t.Fatalf("anonymous donor name leaked into event")
	}
	if e.Type != DonationOverdue || e.DonationID != "d-1" || e.Amount != 200000 || *e.ActivityID != activity {
		t.Fatalf("unexpected event %#v", e)
	}

	body, err := e.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	back, err := FromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if back.Type != e.Type || !back.OccurredAt.Equal(at) {
		t.Fatalf("decoded event = %#v", back)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Event{Type: DonationCreated}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestLogPublisherWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Logger: zerolog.New(&buf)}
	if err := p.Publish(context.Background(), Event{Type: DonationOverdue, DonationID: "d-1", Amount: 5000}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"event":"donation.overdue"`) || !strings.Contains(out, `"donation_id":"d-1"`) {
		t.Fatalf("log line = %s", out)
	}
}
