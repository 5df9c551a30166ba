package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// Create stores the user with its email lower-cased. A duplicate email
// yields domain.ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.UpdatedAt = u.CreatedAt
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUser,
		u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash, u.IsActive, u.CreatedAt)
	return mapErr("insert user", err)
}

// Update keeps the stored password hash when u.PasswordHash is empty.
func (r *UserRepositoryPG) Update(ctx context.Context, u *domain.User) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateUser,
		u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash, u.IsActive, u.UpdatedAt)
	return mapErr("update user", row.Scan(&u.CreatedAt))
}

func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteUser, id)
	return expectOne("delete user", tag, err)
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.sql.QueryRow(ctx, sqlinline.QGetUserByID, id))
	if err != nil {
		return nil, mapErr("get user", err)
	}
	return u, nil
}

// GetByEmail matches case-insensitively.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.sql.QueryRow(ctx, sqlinline.QGetUserByEmail, strings.TrimSpace(email)))
	if err != nil {
		return nil, mapErr("get user by email", err)
	}
	return u, nil
}

func (r *UserRepositoryPG) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers)
	if err != nil {
		return nil, mapErr("list users", err)
	}
	items, err := collect(rows, scanUser)
	return items, mapErr("list users", err)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
