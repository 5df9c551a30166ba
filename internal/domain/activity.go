package domain

import (
	"strings"
	"time"
)

// Activity is a charitable campaign that donations and expenses can be
// attributed to.
type Activity struct {
	ID          string
	Title       string
	Slug        string
	Location    string
	TripDate    *time.Time
	Category    string
	Description string
	Content     string
	Images      []string
	IsPublished bool
	IsUpcoming  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields an admin must supply.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return Invalid("title", "required")
	}
	if len(a.Title) > 200 {
		return Invalid("title", "too long")
	}
	if strings.TrimSpace(a.Slug) == "" {
		return Invalid("slug", "required")
	}
	return nil
}

// ActivityFilter narrows activity listings. Nil pointers mean "any".
type ActivityFilter struct {
	Published *bool
	Upcoming  *bool
	Category  string
}
