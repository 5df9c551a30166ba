package domain

import (
	"context"
	"time"
)

// ActivityRepository persists activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	GetBySlug(ctx context.Context, slug string) (*Activity, error)
	List(ctx context.Context, filter ActivityFilter) ([]Activity, error)
}

// DonationRepository persists donations.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	List(ctx context.Context, filter DonationFilter) ([]Donation, error)
	// Confirm flips is_confirmed to true. Confirming an already confirmed
	// donation keeps its original confirmation time.
	Confirm(ctx context.Context, id string, at time.Time) (*Donation, error)
	Delete(ctx context.Context, id string) error
	ListOverdueUnreminded(ctx context.Context, createdBefore time.Time, limit int) ([]Donation, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
}

// PaymentMethodRepository persists payment methods.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *PaymentMethod) error
	Update(ctx context.Context, method *PaymentMethod) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]PaymentMethod, error)
}

// UserRepository persists back-office accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// TeamRepository persists team member bios.
type TeamRepository interface {
	Create(ctx context.Context, member *TeamMember) error
	Update(ctx context.Context, member *TeamMember) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]TeamMember, error)
}

// ContentRepository persists page content blocks.
type ContentRepository interface {
	Get(ctx context.Context, key string) (*ContentBlock, error)
	List(ctx context.Context) ([]ContentBlock, error)
	Upsert(ctx context.Context, block *ContentBlock) error
}

// SettingsRepository persists site settings.
type SettingsRepository interface {
	List(ctx context.Context) ([]Setting, error)
	UpsertAll(ctx context.Context, settings []Setting) error
}
