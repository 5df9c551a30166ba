package domain

import (
	"net/mail"
	"strings"
	"time"
)

// UserRole enumerates back-office roles.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleEditor
}

// User is a back-office account.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may manage other users.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

func (u User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil || strings.TrimSpace(u.Email) == "" {
		return Invalid("email", "invalid address")
	}
	if !u.Role.Valid() {
		return Invalid("role", "must be admin or editor")
	}
	return nil
}

// TeamMember is a public-facing team bio.
type TeamMember struct {
	ID        string
	Name      string
	Position  string
	Bio       string
	AvatarURL string
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return Invalid("name", "required")
	}
	return nil
}
