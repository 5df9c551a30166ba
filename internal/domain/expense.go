package domain

import (
	"strings"
	"time"
)

// Expense is money spent, optionally attributed to an activity.
type Expense struct {
	ID          string
	ActivityID  *string
	Title       string
	Amount      int64
	Category    *string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return Invalid("title", "required")
	}
	if len(e.Title) > 200 {
		return Invalid("title", "too long")
	}
	if e.Amount <= 0 {
		return Invalid("amount", "must be positive")
	}
	return nil
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	ActivityID *string
	// General keeps only expenses not attributed to an activity.
	General  bool
	Category string
	// Uncategorized also matches expenses with no category, which reports
	// bucket under the same label as Category.
	Uncategorized bool
	Since         *time.Time
	Until         *time.Time
	Limit         int
	Offset        int
}
