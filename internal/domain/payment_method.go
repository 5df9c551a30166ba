package domain

import (
	"strings"
	"time"
)

// PaymentMethodType enumerates the ways a supporter can pay.
type PaymentMethodType string

const (
	PaymentBank    PaymentMethodType = "bank"
	PaymentEWallet PaymentMethodType = "ewallet"
	PaymentCash    PaymentMethodType = "cash"
)

// PaymentMethod is display metadata shown on the donate page.
type PaymentMethod struct {
	ID            string
	Type          PaymentMethodType
	Name          string
	AccountName   string
	AccountNumber string
	Branch        string
	QRImageURL    string
	Instructions  string
	IsActive      bool
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p PaymentMethod) Validate() error {
	switch p.Type {
	case PaymentBank, PaymentEWallet, PaymentCash:
	default:
		return Invalid("type", "must be bank, ewallet or cash")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Invalid("name", "required")
	}
	if p.Type != PaymentCash && strings.TrimSpace(p.AccountNumber) == "" {
		return Invalid("accountNumber", "required")
	}
	return nil
}
