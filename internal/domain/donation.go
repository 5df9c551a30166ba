package domain

import (
	"strings"
	"time"
)

// Donation represents a supporter contribution. Amounts are whole VND.
type Donation struct {
	ID              string
	ActivityID      *string
	PaymentMethodID *string
	Name            *string
	Amount          int64
	Message         string
	IsPublic        bool
	IsAnonymous     bool
	IsConfirmed     bool
	ConfirmedAt     *time.Time
	RemindedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName returns the donor name, or "" for anonymous or unnamed donations.
func (d Donation) DisplayName() string {
	if d.IsAnonymous || d.Name == nil {
		return ""
	}
	return strings.TrimSpace(*d.Name)
}

// IsGeneral reports whether the donation is not attributed to an activity.
func (d Donation) IsGeneral() bool {
	return d.ActivityID == nil || *d.ActivityID == ""
}

// Validate enforces the write-time rules for a new donation.
func (d Donation) Validate() error {
	if d.Amount <= 0 {
		return Invalid("amount", "must be positive")
	}
	if !d.IsAnonymous && (d.Name == nil || strings.TrimSpace(*d.Name) == "") {
		return Invalid("name", "required unless anonymous")
	}
	if d.Name != nil && len(*d.Name) > 120 {
		return Invalid("name", "too long")
	}
	if len(d.Message) > 1000 {
		return Invalid("message", "too long")
	}
	return nil
}

// DonationStatus is derived at read time and never stored.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationOverdue   DonationStatus = "overdue"
)

// DonationFilter narrows donation listings.
type DonationFilter struct {
	ActivityID *string
	General    bool
	Confirmed  *bool
	// CreatedBefore restricts to donations created at or before the instant.
	CreatedBefore *time.Time
	OnlyPublic    bool
	Search        string
	Since         *time.Time
	Until         *time.Time
	Limit         int
	Offset        int
}
